package history

import (
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// MaxEntries caps the entries kept per wheel; defaults to 100
	MaxEntries int64

	// Retention is how long an entry lives; defaults to 30 days
	Retention time.Duration
}

// AddEntryInput contains parameters for recording a spin
type AddEntryInput struct {
	Entry *models.HistoryEntry
}

// ListEntriesInput contains parameters for listing spins
type ListEntriesInput struct {
	WheelID string

	// Limit defaults to 10
	Limit int64
}

// ListEntriesOutput contains the latest spins, newest first
type ListEntriesOutput struct {
	Entries []*models.HistoryEntry
}

// GetWinCountsInput contains parameters for reading win counts
type GetWinCountsInput struct {
	WheelID string
	Mode    models.Mode
}

// GetWinCountsOutput maps option text to number of wins
type GetWinCountsOutput struct {
	Counts map[string]int64
}
