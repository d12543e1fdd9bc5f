package wheel

// WheelError is a custom error type for wheel-related errors
type WheelError string

// Error implements the error interface
func (e WheelError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInsufficientOptions WheelError = "at least two options are needed to spin"
	ErrSpinInProgress      WheelError = "the wheel is already spinning"
	ErrNotSpinning         WheelError = "the wheel is not spinning"
	ErrNoOptions           WheelError = "option list is empty"
	ErrNilConfig           WheelError = "config cannot be nil"
	ErrNilSampler          WheelError = "sampler cannot be nil"
	ErrNilClock            WheelError = "clock cannot be nil"
	ErrNilEngine           WheelError = "engine cannot be nil"
)
