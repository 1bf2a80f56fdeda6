package neighborhood

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGaussianAtZeroAndSigma(t *testing.T) {
	g := Gaussian{}
	sigma := 1.0
	want0 := 1 / (sigma * math.Sqrt(2*math.Pi))
	if got := g.Weight(0, sigma); !almostEqual(got, want0, 1e-9) {
		t.Fatalf("Gaussian(0,1) = %v, want %v", got, want0)
	}

	wantSigma := 1 / (sigma * math.Sqrt(2*math.Pi*math.E))
	if got := g.Weight(sigma, sigma); !almostEqual(got, wantSigma, 1e-9) {
		t.Fatalf("Gaussian(sigma,sigma) = %v, want %v", got, wantSigma)
	}
	if got := g.Weight(-sigma, sigma); !almostEqual(got, wantSigma, 1e-9) {
		t.Fatalf("Gaussian(-sigma,sigma) = %v, want %v", got, wantSigma)
	}
}

func TestMexicanHatAtZeroAndSigma(t *testing.T) {
	m := MexicanHat{}
	sigma := 1.0
	want0 := 2 / math.Sqrt(3*sigma*math.Sqrt(math.Pi))
	if got := m.Weight(0, sigma); !almostEqual(got, want0, 1e-9) {
		t.Fatalf("MexicanHat(0,1) = %v, want %v", got, want0)
	}
	if got := m.Weight(sigma, sigma); !almostEqual(got, 0, 1e-9) {
		t.Fatalf("MexicanHat(sigma,sigma) = %v, want 0", got)
	}
	if got := m.Weight(-sigma, sigma); !almostEqual(got, 0, 1e-9) {
		t.Fatalf("MexicanHat(-sigma,sigma) = %v, want 0", got)
	}
}

func TestByNameUnknownReturnsFalse(t *testing.T) {
	if _, ok := ByName("NOT_A_FUNCTOR"); ok {
		t.Fatal("expected unknown neighborhood functor to be rejected")
	}
	if _, ok := ByName("GAUSSIAN"); !ok {
		t.Fatal("expected GAUSSIAN to resolve")
	}
}
