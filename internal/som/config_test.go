package som

import "testing"

func validConfig() Config {
	return Config{
		N: 2, Dx: 2, Dy: 2,
		Rotations: 1,
		Functor:   "GAUSSIAN",
		Sigma0:    1, Eta0: 1,
	}
}

func TestConfigValidateAccepts(t *testing.T) {
	c := validConfig()
	if err := c.Validate(8, 8); err != nil {
		t.Fatalf("expected valid config to pass, got %v", err)
	}
}

func TestConfigValidateRejectsNTooLarge(t *testing.T) {
	c := validConfig()
	c.N = 100
	err := c.Validate(8, 8)
	if _, ok := err.(*ConfigurationError); !ok {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
}

func TestConfigValidateRejectsNonPositiveSigma(t *testing.T) {
	c := validConfig()
	c.Sigma0 = 0
	if _, ok := c.Validate(8, 8).(*ConfigurationError); !ok {
		t.Fatalf("expected *ConfigurationError for Sigma0 <= 0")
	}
}

func TestConfigValidateRejectsUnknownFunctor(t *testing.T) {
	c := validConfig()
	c.Functor = "NOT_A_FUNCTOR"
	if _, ok := c.Validate(8, 8).(*ConfigurationError); !ok {
		t.Fatalf("expected *ConfigurationError for unknown functor")
	}
}

func TestConfigValidateRejectsRotationsBelowOne(t *testing.T) {
	c := validConfig()
	c.Rotations = 0
	if _, ok := c.Validate(8, 8).(*ConfigurationError); !ok {
		t.Fatalf("expected *ConfigurationError for Rotations < 1")
	}
}
