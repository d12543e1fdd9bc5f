package wheel

import (
	"sync"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/random"
)

// EngineConfig holds the dependencies of a spin engine
type EngineConfig struct {
	Sampler random.Sampler

	// InitialAngle seeds the rotation, e.g. when restoring a wheel
	InitialAngle float64
}

// Engine is the Idle/Spinning state machine of one wheel.
// At most one job runs at a time; a second Start is refused, not queued.
type Engine struct {
	mu      sync.Mutex
	sampler random.Sampler
	state   State
}

// NewEngine creates an idle engine
func NewEngine(cfg *EngineConfig) (*Engine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Sampler == nil {
		return nil, ErrNilSampler
	}

	return &Engine{
		sampler: cfg.Sampler,
		state: State{
			Rotation: models.RotationState{
				AngleRadians: cfg.InitialAngle,
				Status:       models.SpinStatusIdle,
			},
		},
	}, nil
}

// Start samples a new job and moves the engine to Spinning.
// The option list is copied so edits made mid-spin do not affect the result.
func (e *Engine) Start(mode models.Mode, options models.OptionList) (*models.SpinJob, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Spinning() {
		return nil, ErrSpinInProgress
	}
	if len(options) < MinOptions {
		return nil, ErrInsufficientOptions
	}

	job := &models.SpinJob{
		TotalDurationMs:      e.sampler.Uniform(MinDurationMs, MaxDurationMs),
		InitialSpeedDegPerMs: e.sampler.Uniform(MinSpeedDegPerMs, MaxSpeedDegPerMs),
		ElapsedMs:            0,
		StartAngleRadians:    e.state.Rotation.AngleRadians,
		Mode:                 mode,
		Options:              options.Clone(),
	}

	e.state.Job = job
	e.state.Rotation.Status = models.SpinStatusSpinning

	out := *job
	return &out, nil
}

// Tick advances one logical step. When the step completes the job, the
// winner is resolved against the list snapshotted at Start and returned.
func (e *Engine) Tick() (float64, *models.ResultRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Spinning() {
		return e.state.Rotation.AngleRadians, nil, ErrNotSpinning
	}

	next, done := Step(e.state, TickMs)
	if !done {
		e.state = next
		return next.Rotation.AngleRadians, nil, nil
	}

	job := next.Job
	e.state = State{Rotation: next.Rotation}

	result, err := ResolveOption(next.Rotation.AngleRadians, job.Mode, job.Options)
	if err != nil {
		return next.Rotation.AngleRadians, nil, err
	}
	return next.Rotation.AngleRadians, result, nil
}

// Rotation returns a copy of the current rotation state
func (e *Engine) Rotation() models.RotationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Rotation
}

// Job returns a copy of the running job, or nil when idle
func (e *Engine) Job() *models.SpinJob {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Job == nil {
		return nil
	}
	job := *e.state.Job
	job.Options = job.Options.Clone()
	return &job
}

// Spinning reports whether a job is in flight
func (e *Engine) Spinning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Spinning()
}
