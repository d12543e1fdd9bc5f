package options

// OptionsError is a custom error type for option store errors
type OptionsError string

// Error implements the error interface
func (e OptionsError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrEmptyInput       OptionsError = "option text cannot be empty"
	ErrIndexOutOfRange  OptionsError = "option index out of range"
	ErrUnknownMode      OptionsError = "unknown mode"
	ErrAlreadyStarted   OptionsError = "option store already started"
	ErrStoreClosed      OptionsError = "option store is closed"
	ErrNilConfig        OptionsError = "config cannot be nil"
	ErrNilDocumentRepo  OptionsError = "document repository cannot be nil"
	ErrNilUUIDGenerator OptionsError = "UUID generator cannot be nil"
)
