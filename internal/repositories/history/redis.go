package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// Key prefixes for Redis
	spinKeyPrefix       = "spin:"
	wheelSpinsKeyPrefix = "wheel_spins:"
	wheelWinsKeyPrefix  = "wheel_wins:"

	defaultMaxEntries = 100
	defaultRetention  = 30 * 24 * time.Hour
	defaultLimit      = 10
)

// storedEntry is the JSON form kept in Redis
type storedEntry struct {
	ID            string      `json:"id"`
	WheelID       string      `json:"wheel_id"`
	Mode          models.Mode `json:"mode"`
	WinningOption string      `json:"winning_option"`
	WinningIndex  int         `json:"winning_index"`
	SpunBy        string      `json:"spun_by,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client     *redis.Client
	maxEntries int64
	retention  time.Duration
}

// NewRedis creates a new Redis-backed history repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	retention := cfg.Retention
	if retention <= 0 {
		retention = defaultRetention
	}

	return &redisRepository{
		client:     cfg.RedisClient,
		maxEntries: maxEntries,
		retention:  retention,
	}, nil
}

func spinsKey(wheelID string) string {
	return wheelSpinsKeyPrefix + wheelID
}

func winsKey(wheelID string, mode models.Mode) string {
	return fmt.Sprintf("%s%s:%s", wheelWinsKeyPrefix, wheelID, mode)
}

// AddEntry stores the entry, indexes it by time and counts the win in one transaction
func (r *redisRepository) AddEntry(ctx context.Context, input *AddEntryInput) error {
	if input == nil || input.Entry == nil {
		return ErrNilEntry
	}

	entry := input.Entry
	if entry.ID == "" {
		return ErrMissingID
	}
	if entry.WheelID == "" {
		return ErrMissingWheelID
	}

	entryJSON, err := json.Marshal(storedEntry(*entry))
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	pipe := r.client.TxPipeline()

	pipe.Set(ctx, spinKeyPrefix+entry.ID, entryJSON, r.retention)

	pipe.ZAdd(ctx, spinsKey(entry.WheelID), redis.Z{
		Score:  float64(entry.Timestamp.UnixMilli()),
		Member: entry.ID,
	})
	// keep only the newest maxEntries
	pipe.ZRemRangeByRank(ctx, spinsKey(entry.WheelID), 0, -(r.maxEntries + 1))

	pipe.HIncrBy(ctx, winsKey(entry.WheelID, entry.Mode), entry.WinningOption, 1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}

	return nil
}

// ListEntries returns the latest entries of a wheel; expired entries are skipped
func (r *redisRepository) ListEntries(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	if input == nil || input.WheelID == "" {
		return nil, ErrMissingWheelID
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	ids, err := r.client.ZRevRange(ctx, spinsKey(input.WheelID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	output := &ListEntriesOutput{
		Entries: make([]*models.HistoryEntry, 0, len(ids)),
	}
	if len(ids) == 0 {
		return output, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = spinKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get history entries: %w", err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var stored storedEntry
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Warn().Err(err).Str("entry_id", ids[i]).Msg("skipping malformed history entry")
			continue
		}

		entry := models.HistoryEntry(stored)
		output.Entries = append(output.Entries, &entry)
	}

	return output, nil
}

// GetWinCounts returns the win counter of every option that has won on the wheel in the mode
func (r *redisRepository) GetWinCounts(ctx context.Context, input *GetWinCountsInput) (*GetWinCountsOutput, error) {
	if input == nil || input.WheelID == "" {
		return nil, ErrMissingWheelID
	}

	raw, err := r.client.HGetAll(ctx, winsKey(input.WheelID, input.Mode)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get win counts: %w", err)
	}

	counts := make(map[string]int64, len(raw))
	for option, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		counts[option] = n
	}

	return &GetWinCountsOutput{
		Counts: counts,
	}, nil
}
