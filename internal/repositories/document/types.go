package document

import (
	"github.com/KirkDiggler/lunchwheel/internal/models"
)

// Snapshot is the full value of the document at one point in time
type Snapshot struct {
	// Exists is false when nothing has been written yet
	Exists bool

	// Document holds every mode found remotely
	Document models.SharedDocument

	// WriteID is the token of the write that triggered this delivery, empty for the initial one
	WriteID string

	// Origin identifies the client that made that write
	Origin string
}

// SnapshotFunc receives snapshots from a subscription
type SnapshotFunc func(snapshot *Snapshot)

// SubscribeInput contains parameters for subscribing to a document
type SubscribeInput struct {
	DocumentID string
	Callback   SnapshotFunc
}

// SubscribeOutput contains the handle of a live subscription
type SubscribeOutput struct {
	// Unsubscribe stops delivery and waits for the delivery goroutine to exit
	Unsubscribe func() error
}

// WriteInput contains parameters for writing a document
type WriteInput struct {
	DocumentID string

	// Fields are the mode lists to store
	Fields models.SharedDocument

	// Merge keeps fields not present in Fields; otherwise the document is replaced
	Merge bool

	// WriteID is an opaque token echoed back to subscribers
	WriteID string

	// Origin identifies the writer
	Origin string
}

// GetDocumentInput contains parameters for reading a document
type GetDocumentInput struct {
	DocumentID string
}

// changeNotice is published after every write
type changeNotice struct {
	WriteID string `json:"write_id"`
	Origin  string `json:"origin"`
}
