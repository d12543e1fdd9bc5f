package history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lunchwheel/internal/repositories/history Repository

import (
	"context"
)

// Repository keeps the results of past spins per wheel
type Repository interface {
	// AddEntry records a finished spin and counts the win
	AddEntry(ctx context.Context, input *AddEntryInput) error

	// ListEntries returns the latest spins of a wheel, newest first
	ListEntries(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error)

	// GetWinCounts returns how often each option of a mode has won on a wheel
	GetWinCounts(ctx context.Context, input *GetWinCountsInput) (*GetWinCountsOutput, error)
}
