package document

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lunchwheel/internal/repositories/document Repository

import (
	"context"
)

// Repository is the remote channel holding the shared document
type Repository interface {
	// Subscribe delivers the current snapshot right away and again after every change,
	// including changes made by this client
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)

	// Write stores the given fields; with Merge set, other fields are left untouched
	Write(ctx context.Context, input *WriteInput) error

	// GetDocument reads the document once
	GetDocument(ctx context.Context, input *GetDocumentInput) (*Snapshot, error)
}
