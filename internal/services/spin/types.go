package spin

import (
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/clock"
	"github.com/KirkDiggler/lunchwheel/internal/common/uuid"
	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/random"
	"github.com/KirkDiggler/lunchwheel/internal/repositories/history"
	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	"github.com/KirkDiggler/lunchwheel/internal/wheel/render"
)

const (
	// DefaultFrameEvery records one animation frame every 5 ticks
	DefaultFrameEvery = 5

	// DefaultAnimationSize is the width and height of animation frames
	DefaultAnimationSize = 300

	// DefaultResultHold is how long the final frame stays on screen
	DefaultResultHold = 3 * time.Second
)

// Config holds configuration for the spin service
type Config struct {
	OptionsService options.Service
	Sampler        random.Sampler
	Clock          clock.Clock
	Renderer       *render.Renderer

	// HistoryRepo is optional; without it spins are not recorded
	HistoryRepo   history.Repository
	UUIDGenerator uuid.UUID

	// FrameInterval paces ticks in wall-clock time; defaults to wheel.FrameInterval
	FrameInterval time.Duration

	// FrameEvery records every Nth tick when recording an animation
	FrameEvery int

	// AnimationSize scales recorded frames down from the 600x600 surface
	AnimationSize int

	// ResultHold is the delay of the last animation frame
	ResultHold time.Duration
}

// SpinInput contains parameters for spinning a wheel
type SpinInput struct {
	WheelID string
	Mode    models.Mode

	// Record renders an animation of the spin. A recorded spin is computed
	// without waiting on the frame clock and the wheel reports spinning until
	// the animation would have finished playing.
	Record bool

	// SpunBy names whoever started the spin in the history
	SpunBy string
}

// SpinOutput contains the outcome of a spin
type SpinOutput struct {
	Result     *models.ResultRecord
	FinalAngle float64
	Ticks      int

	// Options is the list the spin was decided on
	Options models.OptionList

	// Animation is a GIF of the spin, nil unless recorded
	Animation []byte

	// Still is a PNG of the wheel at rest on the winner
	Still []byte
}

// RotationInput contains parameters for reading a wheel's rotation
type RotationInput struct {
	WheelID string
}

// RotationOutput contains the rotation of a wheel
type RotationOutput struct {
	Rotation models.RotationState
}

// PreviewInput contains parameters for rendering a wheel at rest
type PreviewInput struct {
	WheelID string
	Mode    models.Mode
}

// PreviewOutput contains a rendered wheel
type PreviewOutput struct {
	Options models.OptionList
	Angle   float64
	PNG     []byte
}

// HistoryInput contains parameters for reading past spins of a wheel
type HistoryInput struct {
	WheelID string
	Mode    models.Mode

	// Limit defaults to 10
	Limit int64
}

// HistoryOutput contains past spins, newest first, and the mode's win counts
type HistoryOutput struct {
	Entries   []*models.HistoryEntry
	WinCounts map[string]int64
}
