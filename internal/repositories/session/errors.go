package session

// SessionError is a custom error type for session errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

const (
	ErrSessionNotFound SessionError = "session not found"
	ErrNilConfig       SessionError = "config cannot be nil"
	ErrNilRedisClient  SessionError = "redis client cannot be nil"
	ErrMissingID       SessionError = "session ID is required"
)
