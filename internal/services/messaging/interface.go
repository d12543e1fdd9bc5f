package messaging

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lunchwheel/internal/services/messaging Service

// Service picks the flavor text shown around a spin
type Service interface {
	// GetSpinningMessage returns the caption of the spin animation
	GetSpinningMessage(ctx context.Context, input *GetSpinningMessageInput) (*GetSpinningMessageOutput, error)

	// GetResultMessage returns the announcement of a winning option
	GetResultMessage(ctx context.Context, input *GetResultMessageInput) (*GetResultMessageOutput, error)

	// GetOptionChangeMessage returns the note posted when someone edits a list
	GetOptionChangeMessage(ctx context.Context, input *GetOptionChangeMessageInput) (*GetOptionChangeMessageOutput, error)
}
