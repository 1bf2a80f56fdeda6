// Package telemetry provides optional, non-hot-path run instrumentation:
// wall-clock timestamps for run tokens and a MySQL summary store.
package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/beevik/ntp"
)

// defaultNTPServer mirrors the teacher's single-server pool choice
// (getCurrentTimeFromNTP); a public pool address, not tied to any
// particular deployment.
const defaultNTPServer = "pool.ntp.org"

// Now returns the current wall-clock time from an NTP server, falling back
// to the local clock if the server is unreachable. This is never called
// from the training hot path; it is used only to timestamp run summaries.
func Now() time.Time {
	t, err := ntp.Time(defaultNTPServer)
	if err != nil {
		return time.Now()
	}
	return t
}

// RunToken derives a stable identifier for one training run from its
// configuration and start time, in the manner of the teacher's
// generateToken (sha256 over a descriptive string), so a run's telemetry
// row and its output file can be correlated without a database identity
// column.
func RunToken(startTime time.Time, n, dx, dy int, seed int64) string {
	idStamp := fmt.Sprintf("%d-%d-%d-%d-%s", n, dx, dy, seed, startTime)
	h := sha256.New()
	h.Write([]byte(idStamp))
	return hex.EncodeToString(h.Sum(nil))
}
