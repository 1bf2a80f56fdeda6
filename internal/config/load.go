// Package config loads the training configuration surface (§6) from a JSON
// file plus process environment, following the teacher's
// LoadSimulationSettings / godotenv pattern.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"pinksom/internal/som"
)

// File is the on-disk JSON shape of a training configuration.
type File struct {
	N          int     `json:"n"`
	Dx         int     `json:"dx"`
	Dy         int     `json:"dy"`
	Init       string  `json:"init"` // "ZERO" | "RANDOM"
	Seed       int64   `json:"seed"`
	Rotations  int     `json:"rotations"`
	Flip       bool    `json:"flip"`
	Functor    string  `json:"functor"`
	Sigma0     float64 `json:"sigma0"`
	Eta0       float64 `json:"eta0"`
	Schedule   string  `json:"schedule"` // "CONSTANT" | "LINEAR" | "EXPONENTIAL"
	LinearEnd  int     `json:"linear_end"`
	ExpRate    float64 `json:"exp_rate"`
	InputCount int     `json:"input_count"`
	InputPath  string  `json:"input_path"`
	OutputPath string  `json:"output_path"`
	MaxWorkers int     `json:"max_workers"`
}

// Load reads and deserializes a training configuration from filename.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config JSON: %w", err)
	}
	return &f, nil
}

// LoadEnv loads process environment overrides (telemetry DSN pieces,
// credentials) from a .env file, mirroring controlserver_endpoints' use of
// godotenv. A missing .env file is not an error, since telemetry is
// optional.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ToSOMConfig translates the JSON shape into the som package's runtime
// Config, resolving the string enumerators. An unknown Init is treated as
// ZERO; Validate is left to the caller once the first image's dimensions
// are known.
func (f File) ToSOMConfig() som.Config {
	cfg := som.Config{
		N:          f.N,
		Dx:         f.Dx,
		Dy:         f.Dy,
		Seed:       f.Seed,
		Rotations:  f.Rotations,
		Flip:       f.Flip,
		Functor:    f.Functor,
		Sigma0:     f.Sigma0,
		Eta0:       f.Eta0,
		LinearEnd:  f.LinearEnd,
		ExpRate:    f.ExpRate,
		InputCount: f.InputCount,
	}
	if f.Init == "RANDOM" {
		cfg.Init = som.InitRandom
	}
	switch f.Schedule {
	case "LINEAR":
		cfg.Schedule = som.ScheduleLinear
	case "EXPONENTIAL":
		cfg.Schedule = som.ScheduleExponential
	default:
		cfg.Schedule = som.ScheduleConstant
	}
	return cfg
}
