package som

import (
	"fmt"

	"pinksom/internal/neighborhood"
)

// Config is the full configuration surface consumed from an external
// CLI/config collaborator (§6).
type Config struct {
	N          int // neuron dimension
	Dx, Dy     int // map dimensions
	Init       InitMode
	Seed       int64
	Rotations  int // R
	Flip       bool
	Functor    string // "GAUSSIAN" | "MEXICAN_HAT"
	Sigma0     float64
	Eta0       float64
	Schedule   ScheduleKind
	LinearEnd  int     // used when Schedule == ScheduleLinear
	ExpRate    float64 // used when Schedule == ScheduleExponential
	InputCount int     // 0 means "until stream exhausted"

	// CheckNumeric enables the optional NaN diagnostic scan over the SOM
	// buffer and the distance matrix before every update (§7: "optional diagnostic mode; off by
	// default because the kernel does not normally produce NaN from
	// well-formed inputs"). Off by default.
	CheckNumeric bool
}

// ScheduleKind enumerates the configuration surface's schedule selector.
type ScheduleKind int

const (
	ScheduleConstant ScheduleKind = iota
	ScheduleLinear
	ScheduleExponential
)

// Validate checks the configuration against §7's ConfigurationError
// conditions, given the first input image's dimensions (N must not exceed
// either). It returns a *ConfigurationError on the first violation found.
func (c Config) Validate(imgW, imgH int) error {
	if c.N <= 0 {
		return &ConfigurationError{Field: "N", Reason: "must be a positive integer"}
	}
	if c.N > imgW || c.N > imgH {
		return &ConfigurationError{Field: "N", Reason: fmt.Sprintf("neuron dimension %d exceeds image dimensions %dx%d", c.N, imgW, imgH)}
	}
	if c.Dx <= 0 || c.Dy <= 0 {
		return &ConfigurationError{Field: "Dx/Dy", Reason: "map dimensions must be positive"}
	}
	if c.Rotations < 1 {
		return &ConfigurationError{Field: "Rotations", Reason: "must be >= 1"}
	}
	if c.Sigma0 <= 0 {
		return &ConfigurationError{Field: "Sigma0", Reason: "must be > 0"}
	}
	if c.Eta0 <= 0 {
		return &ConfigurationError{Field: "Eta0", Reason: "must be > 0"}
	}
	if _, ok := neighborhood.ByName(c.Functor); !ok {
		return &ConfigurationError{Field: "Functor", Reason: fmt.Sprintf("unknown neighborhood functor %q", c.Functor)}
	}
	return nil
}

// schedule resolves the configured ScheduleKind to a Schedule value.
func (c Config) schedule() Schedule {
	switch c.Schedule {
	case ScheduleLinear:
		return LinearSchedule{End: c.LinearEnd}
	case ScheduleExponential:
		return ExponentialSchedule{Rate: c.ExpRate}
	default:
		return ConstantSchedule{}
	}
}
