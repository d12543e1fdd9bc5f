package options

import (
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/uuid"
	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/repositories/document"
)

const (
	// DefaultDocumentID is the document shared by every client
	DefaultDocumentID = "public_list"

	// DefaultWriteTimeout bounds a single background write
	DefaultWriteTimeout = 10 * time.Second
)

// Config holds configuration for the option store
type Config struct {
	// Remote document channel
	DocumentRepo document.Repository

	// DocumentID defaults to DefaultDocumentID
	DocumentID string

	// UUIDGenerator creates write tokens
	UUIDGenerator uuid.UUID

	// WriteTimeout defaults to DefaultWriteTimeout
	WriteTimeout time.Duration

	// Origin identifies this client in change notices; a random one is used when empty
	Origin string
}

// ChangeFunc receives a deep copy of the document after every remote change
type ChangeFunc func(doc models.SharedDocument)

// GetOptionsInput contains parameters for reading a list
type GetOptionsInput struct {
	Mode models.Mode
}

// GetOptionsOutput contains the list for the requested mode
type GetOptionsOutput struct {
	Options models.OptionList
}

// AddOptionInput contains parameters for adding an option
type AddOptionInput struct {
	Mode models.Mode
	Text string
}

// AddOptionOutput contains the result of adding an option
type AddOptionOutput struct {
	// Options is the list after the local apply
	Options models.OptionList

	// Added is the trimmed text that was appended
	Added string

	// WriteID is the token carried by the background write
	WriteID string
}

// RemoveOptionInput contains parameters for removing an option
type RemoveOptionInput struct {
	Mode  models.Mode
	Index int
}

// RemoveOptionOutput contains the result of removing an option
type RemoveOptionOutput struct {
	// Options is the list after the local apply
	Options models.OptionList

	// Removed is the option that was at Index
	Removed string

	// WriteID is the token carried by the background write
	WriteID string
}
