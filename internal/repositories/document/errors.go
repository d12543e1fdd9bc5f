package document

// DocumentError is a custom error type for document channel errors
type DocumentError string

// Error implements the error interface
func (e DocumentError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrWriteFailed        DocumentError = "remote write failed"
	ErrSubscriptionFailed DocumentError = "remote subscription failed"
	ErrNilConfig          DocumentError = "config cannot be nil"
	ErrNilRedisClient     DocumentError = "redis client cannot be nil"
	ErrMissingDocumentID  DocumentError = "document ID cannot be empty"
	ErrMissingCallback    DocumentError = "callback cannot be nil"
	ErrNoFields           DocumentError = "write must carry at least one field"
)
