package history

// HistoryError is a custom error type for history errors
type HistoryError string

// Error implements the error interface
func (e HistoryError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      HistoryError = "config cannot be nil"
	ErrNilRedisClient HistoryError = "redis client cannot be nil"
	ErrNilEntry       HistoryError = "history entry cannot be nil"
	ErrMissingID      HistoryError = "history entry ID cannot be empty"
	ErrMissingWheelID HistoryError = "wheel ID cannot be empty"
)
