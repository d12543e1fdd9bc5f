package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/clock"
	"github.com/KirkDiggler/lunchwheel/internal/common/uuid"
	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"

	defaultTTL = 24 * time.Hour
)

// storedSession is the JSON form kept in Redis
type storedSession struct {
	ID        string    `json:"id"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
	clock  clock.Clock
	uuid   uuid.UUID
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.New()
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    ttl,
		clock:  clk,
		uuid:   gen,
	}, nil
}

// SignInAnonymously stores a fresh session that expires after the TTL
func (r *redisRepository) SignInAnonymously(ctx context.Context, input *SignInAnonymouslyInput) (*models.Session, error) {
	if input == nil {
		input = &SignInAnonymouslyInput{}
	}

	now := r.clock.Now()
	stored := storedSession{
		ID:        r.uuid.NewUUID(),
		Label:     input.Label,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	sessionJSON, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+stored.ID, sessionJSON, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return stored.toModel(), nil
}

// GetSession retrieves a session by ID
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingID
	}

	sessionJSON, err := r.client.Get(ctx, sessionKeyPrefix+input.SessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal([]byte(sessionJSON), &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return stored.toModel(), nil
}

func (s storedSession) toModel() *models.Session {
	return &models.Session{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}
