package spin

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lunchwheel/internal/services/spin Service

import "context"

// Service spins the wheels of independent hosts (one wheel per Discord channel)
type Service interface {
	// Spin runs a full spin on a wheel and returns the winner with its rendered frames
	Spin(ctx context.Context, input *SpinInput) (*SpinOutput, error)

	// Rotation returns the current rotation of a wheel
	Rotation(ctx context.Context, input *RotationInput) (*RotationOutput, error)

	// Preview renders the current list of a mode at the wheel's resting angle
	Preview(ctx context.Context, input *PreviewInput) (*PreviewOutput, error)

	// History returns the latest spins of a wheel and how often each option of a mode has won
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)
}
