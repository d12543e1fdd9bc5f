package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lunchwheel/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/lunchwheel/internal/models"
)

// Repository acquires anonymous identities
type Repository interface {
	// SignInAnonymously creates a new anonymous session
	SignInAnonymously(ctx context.Context, input *SignInAnonymouslyInput) (*models.Session, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)
}
