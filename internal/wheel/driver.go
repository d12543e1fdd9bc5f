package wheel

import (
	"context"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/clock"
	"github.com/KirkDiggler/lunchwheel/internal/models"
)

// FrameFunc is invoked with the new angle after every tick that moved the wheel
type FrameFunc func(tick int, angle float64)

// DriverConfig holds the dependencies of a driver
type DriverConfig struct {
	Engine *Engine
	Clock  clock.Clock

	// FrameInterval is the wall-clock pacing of ticks; defaults to FrameInterval
	FrameInterval time.Duration

	// OnFrame is optional
	OnFrame FrameFunc
}

// Driver calls Engine.Tick once per host frame until the running job finishes.
// Elapsed time is counted in logical ticks, so frame jitter does not change
// how many ticks a spin takes.
type Driver struct {
	engine   *Engine
	clock    clock.Clock
	interval time.Duration
	onFrame  FrameFunc
}

// RunOutput describes a finished spin
type RunOutput struct {
	Result     *models.ResultRecord
	Ticks      int
	FinalAngle float64
}

// NewDriver creates a driver for an engine
func NewDriver(cfg *DriverConfig) (*Driver, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Engine == nil {
		return nil, ErrNilEngine
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	interval := cfg.FrameInterval
	if interval <= 0 {
		interval = FrameInterval
	}

	return &Driver{
		engine:   cfg.Engine,
		clock:    cfg.Clock,
		interval: interval,
		onFrame:  cfg.OnFrame,
	}, nil
}

// Run ticks the engine until its job completes. If ctx ends first the rest of
// the job is played out without frames, so the engine is always left idle with
// a resolved result; ctx.Err() is returned alongside that result.
func (d *Driver) Run(ctx context.Context) (*RunOutput, error) {
	if !d.engine.Spinning() {
		return nil, ErrNotSpinning
	}

	ticker := d.clock.NewTicker(d.interval)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			out, err := d.playOut(ticks, nil)
			if err != nil {
				return nil, err
			}
			return out, ctx.Err()
		case <-ticker.Chan():
			angle, result, err := d.engine.Tick()
			if err != nil {
				return nil, err
			}
			ticks++

			if result != nil {
				return &RunOutput{
					Result:     result,
					Ticks:      ticks,
					FinalAngle: angle,
				}, nil
			}

			if d.onFrame != nil {
				d.onFrame(ticks, angle)
			}
		}
	}
}

// Replay plays the whole job without waiting for the clock, still reporting
// every frame. Used when the frames are recorded and shown afterwards.
func (d *Driver) Replay() (*RunOutput, error) {
	if !d.engine.Spinning() {
		return nil, ErrNotSpinning
	}

	return d.playOut(0, d.onFrame)
}

func (d *Driver) playOut(ticks int, onFrame FrameFunc) (*RunOutput, error) {
	for {
		angle, result, err := d.engine.Tick()
		if err != nil {
			return nil, err
		}
		ticks++
		if result != nil {
			return &RunOutput{
				Result:     result,
				Ticks:      ticks,
				FinalAngle: angle,
			}, nil
		}

		if onFrame != nil {
			onFrame(ticks, angle)
		}
	}
}
