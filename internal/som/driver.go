package som

import (
	"math"

	"pinksom/internal/geometry"
	"pinksom/internal/layout"
	"pinksom/internal/neighborhood"
	"pinksom/internal/rotbank"
	"pinksom/internal/workerpool"
)

// State is the training driver's state machine position (§4.8).
type State int

const (
	StateInit State = iota
	StateReady
	StateTraining
	StateDone
	StateFailed
)

// InputSource is the external collaborator that streams training images
// (§6). Next returns ok=false once the stream is exhausted; an error is
// always fatal.
type InputSource interface {
	Next() (img geometry.Image, ok bool, err error)
}

// StepObserver is notified after every completed PER-INPUT step, letting a
// caller log progress or record telemetry without the driver depending on
// either concern directly.
type StepObserver func(step int, bmu int, bmuDistance float32, sigma, eta float64)

// Driver orchestrates training: it owns the SOM, the scratch distance/
// rotation matrices and the per-input rotation bank, and iterates inputs
// per §4.8's five-stage pipeline.
type Driver struct {
	Config  Config
	SOM     SOM
	functor neighborhood.Functor
	sched   Schedule
	pool    *workerpool.Pool

	dist        DistanceMatrix
	rot         RotationMatrix
	bank        rotbank.Bank
	flipScratch geometry.Image
	scratchW    int
	scratchH    int

	State State
	Step  int
}

// NewDriver validates cfg against the first image's dimensions and builds
// a Driver whose scratch buffers are sized and ready (INIT -> READY).
// maxGoroutines == 0 runs every fan-out stage sequentially in the calling
// goroutine (useful for deterministic single-threaded reference runs,
// Testable Property 7); a negative value uses an unbounded worker pool.
func NewDriver(cfg Config, firstImgW, firstImgH int, maxGoroutines int) (*Driver, error) {
	if err := cfg.Validate(firstImgW, firstImgH); err != nil {
		return nil, err
	}

	functor, _ := neighborhood.ByName(cfg.Functor)
	l := layout.NewCartesian2D(cfg.Dx, cfg.Dy)
	s := New(l, cfg.N, cfg.Init, cfg.Seed)

	var pool *workerpool.Pool
	if maxGoroutines != 0 {
		pool = workerpool.New(maxGoroutines)
	}

	d := &Driver{
		Config:      cfg,
		SOM:         s,
		functor:     functor,
		sched:       cfg.schedule(),
		pool:        pool,
		dist:        make(DistanceMatrix, l.Size()),
		rot:         make(RotationMatrix, l.Size()),
		bank:        rotbank.NewBank(cfg.N, cfg.Rotations, cfg.Flip),
		flipScratch: geometry.NewImage(firstImgW, firstImgH),
		scratchW:    firstImgW,
		scratchH:    firstImgH,
		State:       StateReady,
	}
	return d, nil
}

// Train drives the INIT -> READY -> TRAINING <-> PER-INPUT -> DONE state
// machine (§4.8): it consumes images from src until the stream is
// exhausted, the configured InputCount is reached, or cancel is closed
// (checked only between PER-INPUT iterations, never mid-step, per §5's
// cooperative cancellation model). observer, if non-nil, is called after
// every completed step. A failure in any stage transitions to FAILED and
// halts, leaving the SOM consistent as of the last completed step.
func (d *Driver) Train(src InputSource, cancel <-chan struct{}, observer StepObserver) error {
	d.State = StateTraining

	for d.Config.InputCount <= 0 || d.Step < d.Config.InputCount {
		select {
		case <-cancel:
			d.State = StateDone
			return nil
		default:
		}

		img, ok, err := src.Next()
		if err != nil {
			d.State = StateFailed
			return err
		}
		if !ok {
			break
		}

		if err := d.step(img, observer); err != nil {
			d.State = StateFailed
			return err
		}
	}

	d.State = StateDone
	return nil
}

// step runs one PER-INPUT pipeline: build bank, search, find BMU, update,
// advance schedules.
func (d *Driver) step(img geometry.Image, observer StepObserver) error {
	if img.W != d.scratchW || img.H != d.scratchH {
		d.flipScratch = geometry.NewImage(img.W, img.H)
		d.scratchW, d.scratchH = img.W, img.H
	}
	rotbank.BuildInto(d.bank, d.flipScratch, img, d.Config.Rotations, d.Config.Flip, d.pool)

	Search(d.SOM, d.bank, d.dist, d.rot, d.pool)

	bmu := BMU(d.dist)

	sigma := d.sched.Value(d.Config.Sigma0, d.Step)
	eta := d.sched.Value(d.Config.Eta0, d.Step)
	if sigma <= 0 {
		return &NumericError{Where: "sigma schedule produced a non-positive value"}
	}

	if d.Config.CheckNumeric {
		for _, v := range d.SOM.Pix {
			if math.IsNaN(float64(v)) {
				return &NumericError{Where: "NaN detected in SOM before update"}
			}
		}
		for _, v := range d.dist {
			if math.IsNaN(float64(v)) {
				return &NumericError{Where: "NaN detected in distance matrix"}
			}
		}
	}

	Update(d.SOM, d.bank, d.rot, bmu, d.functor, sigma, eta, d.pool)

	if observer != nil {
		observer(d.Step, bmu, d.dist[bmu], sigma, eta)
	}
	d.Step++
	return nil
}
