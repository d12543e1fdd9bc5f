package spin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/clock"
	"github.com/KirkDiggler/lunchwheel/internal/common/uuid"
	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/random"
	"github.com/KirkDiggler/lunchwheel/internal/repositories/history"
	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	"github.com/KirkDiggler/lunchwheel/internal/wheel"
	"github.com/KirkDiggler/lunchwheel/internal/wheel/render"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

// service owns one spin engine per wheel ID. Rotation persists across spins
// and modes for the lifetime of the process.
type service struct {
	optionsService options.Service
	sampler        random.Sampler
	clock          clock.Clock
	renderer       *render.Renderer
	historyRepo    history.Repository
	uuid           uuid.UUID

	frameInterval time.Duration
	frameEvery    int
	animationSize int
	resultHold    time.Duration

	mu      sync.Mutex
	engines map[string]*wheel.Engine
	// playback holds when a recorded spin stops turning for its viewers
	playback map[string]time.Time
}

// New creates a new spin service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.OptionsService == nil {
		return nil, ErrNilOptionsService
	}

	if cfg.Sampler == nil {
		return nil, ErrNilSampler
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.Renderer == nil {
		return nil, ErrNilRenderer
	}

	s := &service{
		optionsService: cfg.OptionsService,
		sampler:        cfg.Sampler,
		clock:          cfg.Clock,
		renderer:       cfg.Renderer,
		historyRepo:    cfg.HistoryRepo,
		uuid:           cfg.UUIDGenerator,
		frameInterval:  cfg.FrameInterval,
		frameEvery:     cfg.FrameEvery,
		animationSize:  cfg.AnimationSize,
		resultHold:     cfg.ResultHold,
		engines:        make(map[string]*wheel.Engine),
		playback:       make(map[string]time.Time),
	}

	if s.frameInterval <= 0 {
		s.frameInterval = wheel.FrameInterval
	}
	if s.frameEvery <= 0 {
		s.frameEvery = DefaultFrameEvery
	}
	if s.animationSize <= 0 {
		s.animationSize = DefaultAnimationSize
	}
	if s.resultHold <= 0 {
		s.resultHold = DefaultResultHold
	}
	if s.uuid == nil {
		s.uuid = uuid.New()
	}

	return s, nil
}

// engine returns the engine of a wheel, creating an idle one on first use
func (s *service) engine(wheelID string) (*wheel.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if engine, ok := s.engines[wheelID]; ok {
		return engine, nil
	}

	engine, err := wheel.NewEngine(&wheel.EngineConfig{
		Sampler: s.sampler,
	})
	if err != nil {
		return nil, err
	}
	s.engines[wheelID] = engine

	return engine, nil
}

// busy reports whether the wheel is turning, live or in a recorded playback
func (s *service) busy(wheelID string, engine *wheel.Engine) bool {
	if engine.Spinning() {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.playback[wheelID]
	if !ok {
		return false
	}
	if !s.clock.Now().Before(until) {
		delete(s.playback, wheelID)
		return false
	}
	return true
}

// Spin snapshots the mode's options, drives the engine to completion and resolves the winner
func (s *service) Spin(ctx context.Context, input *SpinInput) (*SpinOutput, error) {
	if input == nil || input.WheelID == "" {
		return nil, ErrMissingWheelID
	}
	if !input.Mode.IsValid() {
		return nil, ErrUnknownMode
	}

	engine, err := s.engine(input.WheelID)
	if err != nil {
		return nil, err
	}

	if s.busy(input.WheelID, engine) {
		return nil, ErrSpinInProgress
	}

	current, err := s.optionsService.GetOptions(ctx, &options.GetOptionsInput{
		Mode: input.Mode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	job, err := engine.Start(input.Mode, current.Options)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("wheel_id", input.WheelID).
		Str("mode", string(input.Mode)).
		Int("options", len(job.Options)).
		Float64("duration_ms", job.TotalDurationMs).
		Float64("speed_deg", job.InitialSpeedDegPerMs).
		Msg("spin started")

	var animation *render.Animation
	var onFrame wheel.FrameFunc
	if input.Record {
		// the animation is the playback; the wheel counts as spinning until it ends
		playback := time.Duration(wheel.MaxTicks(job.TotalDurationMs)) * time.Duration(wheel.TickMs) * time.Millisecond
		s.mu.Lock()
		s.playback[input.WheelID] = s.clock.Now().Add(playback)
		s.mu.Unlock()

		animation = render.NewAnimation(s.animationSize)
		frameDelay := time.Duration(float64(s.frameEvery)*wheel.TickMs) * time.Millisecond

		animation.AddFrame(s.renderer.Render(job.Options, job.StartAngleRadians), frameDelay)
		onFrame = func(tick int, angle float64) {
			if tick%s.frameEvery == 0 {
				animation.AddFrame(s.renderer.Render(job.Options, angle), frameDelay)
			}
		}
	}

	driver, err := wheel.NewDriver(&wheel.DriverConfig{
		Engine:        engine,
		Clock:         s.clock,
		FrameInterval: s.frameInterval,
		OnFrame:       onFrame,
	})
	if err != nil {
		return nil, err
	}

	var run *wheel.RunOutput
	if input.Record {
		run, err = driver.Replay()
	} else {
		run, err = driver.Run(ctx)
	}
	if run == nil {
		return nil, fmt.Errorf("failed to run spin: %w", err)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("failed to run spin: %w", err)
		}
		log.Warn().Err(err).
			Str("wheel_id", input.WheelID).
			Msg("spin interrupted, finished without frames")
	}

	final := s.renderer.Render(job.Options, run.FinalAngle)

	output := &SpinOutput{
		Result:     run.Result,
		FinalAngle: run.FinalAngle,
		Ticks:      run.Ticks,
		Options:    job.Options,
	}

	output.Still, err = render.EncodePNG(final)
	if err != nil {
		return nil, err
	}

	if animation != nil {
		animation.AddFrame(final, s.resultHold)
		output.Animation, err = animation.Encode()
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("wheel_id", input.WheelID).
		Str("mode", string(input.Mode)).
		Str("winner", run.Result.WinningOption).
		Int("ticks", run.Ticks).
		Str("animation_size", humanize.Bytes(uint64(len(output.Animation)))).
		Str("still_size", humanize.Bytes(uint64(len(output.Still)))).
		Msg("spin finished")

	s.record(context.WithoutCancel(ctx), input, run.Result)

	return output, nil
}

// record adds a finished spin to the history; failures are logged only
func (s *service) record(ctx context.Context, input *SpinInput, result *models.ResultRecord) {
	if s.historyRepo == nil {
		return
	}

	err := s.historyRepo.AddEntry(ctx, &history.AddEntryInput{
		Entry: &models.HistoryEntry{
			ID:            s.uuid.NewUUID(),
			WheelID:       input.WheelID,
			Mode:          result.Mode,
			WinningOption: result.WinningOption,
			WinningIndex:  result.WinningIndex,
			SpunBy:        input.SpunBy,
			Timestamp:     s.clock.Now(),
		},
	})
	if err != nil {
		log.Warn().Err(err).
			Str("wheel_id", input.WheelID).
			Msg("failed to record spin")
	}
}

// History returns the latest spins of a wheel and the win counts of a mode
func (s *service) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	if input == nil || input.WheelID == "" {
		return nil, ErrMissingWheelID
	}
	if !input.Mode.IsValid() {
		return nil, ErrUnknownMode
	}
	if s.historyRepo == nil {
		return nil, ErrHistoryDisabled
	}

	entries, err := s.historyRepo.ListEntries(ctx, &history.ListEntriesInput{
		WheelID: input.WheelID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list spins: %w", err)
	}

	counts, err := s.historyRepo.GetWinCounts(ctx, &history.GetWinCountsInput{
		WheelID: input.WheelID,
		Mode:    input.Mode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get win counts: %w", err)
	}

	return &HistoryOutput{
		Entries:   entries.Entries,
		WinCounts: counts.Counts,
	}, nil
}

// Rotation returns the current rotation of a wheel
func (s *service) Rotation(ctx context.Context, input *RotationInput) (*RotationOutput, error) {
	if input == nil || input.WheelID == "" {
		return nil, ErrMissingWheelID
	}

	engine, err := s.engine(input.WheelID)
	if err != nil {
		return nil, err
	}

	rotation := engine.Rotation()
	if rotation.Status == models.SpinStatusIdle && s.busy(input.WheelID, engine) {
		rotation.Status = models.SpinStatusSpinning
	}

	return &RotationOutput{
		Rotation: rotation,
	}, nil
}

// Preview renders the mode's current list at the wheel's current angle
func (s *service) Preview(ctx context.Context, input *PreviewInput) (*PreviewOutput, error) {
	if input == nil || input.WheelID == "" {
		return nil, ErrMissingWheelID
	}
	if !input.Mode.IsValid() {
		return nil, ErrUnknownMode
	}

	rotation, err := s.Rotation(ctx, &RotationInput{WheelID: input.WheelID})
	if err != nil {
		return nil, err
	}

	current, err := s.optionsService.GetOptions(ctx, &options.GetOptionsInput{
		Mode: input.Mode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	angle := rotation.Rotation.AngleRadians
	png, err := render.EncodePNG(s.renderer.Render(current.Options, angle))
	if err != nil {
		return nil, err
	}

	return &PreviewOutput{
		Options: current.Options,
		Angle:   angle,
		PNG:     png,
	}, nil
}
