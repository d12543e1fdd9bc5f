package messaging

// MessagingError is a custom error type for messaging errors
type MessagingError string

// Error implements the error interface
func (e MessagingError) Error() string {
	return string(e)
}

const (
	ErrNilInput    MessagingError = "input cannot be nil"
	ErrNilConfig   MessagingError = "config cannot be nil"
	ErrNilSampler  MessagingError = "sampler cannot be nil"
	ErrMissingName MessagingError = "option cannot be empty"
)
