package options

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lunchwheel/internal/services/options Service

import (
	"context"

	"github.com/KirkDiggler/lunchwheel/internal/models"
)

// Service keeps the local option lists in step with the shared document
type Service interface {
	// Start opens the live subscription to the shared document
	Start(ctx context.Context) error

	// GetOptions returns a copy of the current list for a mode
	GetOptions(ctx context.Context, input *GetOptionsInput) (*GetOptionsOutput, error)

	// AddOption appends an option locally and persists the mode's list in the background
	AddOption(ctx context.Context, input *AddOptionInput) (*AddOptionOutput, error)

	// RemoveOption removes the option at an index locally and persists the mode's list in the background
	RemoveOption(ctx context.Context, input *RemoveOptionInput) (*RemoveOptionOutput, error)

	// Document returns a deep copy of every list
	Document() models.SharedDocument

	// Subscribe registers a callback for every change delivered by the shared document
	Subscribe(callback ChangeFunc) (unsubscribe func())

	// Close stops the subscription and waits for pending writes
	Close() error
}
