package spin

import "github.com/KirkDiggler/lunchwheel/internal/wheel"

// SpinError is a custom error type for spin service errors
type SpinError string

// Error implements the error interface
func (e SpinError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrMissingWheelID    SpinError = "wheel ID cannot be empty"
	ErrUnknownMode       SpinError = "unknown mode"
	ErrNilConfig         SpinError = "config cannot be nil"
	ErrNilOptionsService SpinError = "options service cannot be nil"
	ErrNilSampler        SpinError = "sampler cannot be nil"
	ErrNilClock          SpinError = "clock cannot be nil"
	ErrNilRenderer       SpinError = "renderer cannot be nil"
	ErrHistoryDisabled   SpinError = "spin history is not enabled"
)

// Errors surfaced from the wheel itself
const (
	ErrInsufficientOptions = wheel.ErrInsufficientOptions
	ErrSpinInProgress      = wheel.ErrSpinInProgress
)
