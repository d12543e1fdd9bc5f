package session

import (
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/clock"
	"github.com/KirkDiggler/lunchwheel/internal/common/uuid"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL is how long a session lives; defaults to 24 hours
	TTL time.Duration

	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// SignInAnonymouslyInput contains parameters for creating a session
type SignInAnonymouslyInput struct {
	// Label is an optional free-form hint stored with the session, e.g. the host name
	Label string
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}
