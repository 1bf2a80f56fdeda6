package config

import (
	"os"
	"path/filepath"
	"testing"

	"pinksom/internal/som"
)

func TestLoadParsesJSONConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pinksom.json")
	contents := `{
		"n": 8, "dx": 4, "dy": 4,
		"init": "RANDOM", "seed": 42,
		"rotations": 8, "flip": true,
		"functor": "MEXICAN_HAT",
		"sigma0": 1.5, "eta0": 0.3,
		"schedule": "LINEAR", "linear_end": 1000,
		"input_path": "in.bin", "output_path": "out.bin",
		"max_workers": 4
	}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.N != 8 || f.Dx != 4 || f.Dy != 4 {
		t.Errorf("dims = %d/%d/%d, want 8/4/4", f.N, f.Dx, f.Dy)
	}
	if f.Seed != 42 || !f.Flip {
		t.Errorf("seed/flip = %d/%v, want 42/true", f.Seed, f.Flip)
	}
	if f.MaxWorkers != 4 {
		t.Errorf("MaxWorkers = %d, want 4", f.MaxWorkers)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/pinksom.json"); err == nil {
		t.Fatal("expected error loading nonexistent config file")
	}
}

func TestToSOMConfigResolvesEnumerators(t *testing.T) {
	f := File{
		N: 4, Dx: 2, Dy: 2,
		Init:     "RANDOM",
		Schedule: "EXPONENTIAL",
		ExpRate:  0.2,
		Sigma0:   1, Eta0: 1,
		Rotations: 4,
		Functor:   "GAUSSIAN",
	}
	cfg := f.ToSOMConfig()
	if cfg.Init != som.InitRandom {
		t.Errorf("Init = %v, want InitRandom", cfg.Init)
	}
	if cfg.Schedule != som.ScheduleExponential {
		t.Errorf("Schedule = %v, want ScheduleExponential", cfg.Schedule)
	}
}

func TestToSOMConfigDefaultsToConstantSchedule(t *testing.T) {
	f := File{Schedule: "", Functor: "GAUSSIAN"}
	cfg := f.ToSOMConfig()
	if cfg.Schedule != som.ScheduleConstant {
		t.Errorf("Schedule = %v, want ScheduleConstant default", cfg.Schedule)
	}
}

func TestLoadEnvToleratesMissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadEnv should tolerate a missing .env file, got %v", err)
	}
}
