package telemetry

import (
	"database/sql"
	"fmt"
	"os"
	"runtime"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Store records run summaries to MySQL, grounded on the teacher's
// DatabaseController. A nil *Store is valid and every method on it is a
// no-op, so telemetry stays strictly optional: a training run with no
// configured DSN never touches the network.
type Store struct {
	db        *sql.DB
	tableName string
}

// NewStore opens a MySQL connection from discrete DSN pieces (read from the
// environment by the caller via config.LoadEnv, mirroring
// NewDatabaseController's os.Getenv("DB_USER") etc. pattern). tableName is
// the run-summary table to insert into.
func NewStore(user, password, host, port, dbName, tableName string) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, password, host, port, dbName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	return &Store{db: db, tableName: tableName}, nil
}

// Close releases the underlying connection pool. Safe to call on a nil
// Store.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// RunSummary is one completed (or failed) training run's telemetry row.
type RunSummary struct {
	Token         string
	N, Dx, Dy     int
	Seed          int64
	Rotations     int
	Functor       string
	StartTime     time.Time
	EndTime       time.Time
	StepsTrained  int
	FinalBMUDist  float32
	Status        string // "FINISHED" | "FAILED"
}

// Insert records one run summary. Safe to call on a nil Store, in which
// case it does nothing and returns nil, so callers need not branch on
// whether telemetry is configured.
func (s *Store) Insert(rs RunSummary) error {
	if s == nil {
		return nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = os.Getenv("HOSTNAME")
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (token, host, program_version, n, dx, dy, seed, rotations, functor, start_time, end_time, steps_trained, final_bmu_distance, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.tableName,
	)
	_, err = s.db.Exec(query,
		rs.Token, hostname, runtime.Version(),
		rs.N, rs.Dx, rs.Dy, rs.Seed, rs.Rotations, rs.Functor,
		rs.StartTime.Format("2006-01-02 15:04:05"),
		rs.EndTime.Format("2006-01-02 15:04:05"),
		rs.StepsTrained, rs.FinalBMUDist, rs.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run summary into MySQL: %w", err)
	}
	return nil
}
