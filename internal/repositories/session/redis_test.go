package session

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/uuid"
	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)

	repo, err := NewRedis(&Config{
		RedisClient:   s.client,
		TTL:           time.Hour,
		Clock:         clockwork.NewFakeClockAt(s.testNow),
		UUIDGenerator: &uuid.Sequence{Prefix: "session"},
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSignInAnonymously() {
	session, err := s.repo.SignInAnonymously(context.Background(), &SignInAnonymouslyInput{Label: "bot-1"})
	s.Require().NoError(err)

	s.Equal("session-1", session.ID)
	s.Equal(s.testNow, session.CreatedAt)
	s.Equal(s.testNow.Add(time.Hour), session.ExpiresAt)

	stored, err := s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(session.ID, stored.ID)
	s.Equal(s.testNow.Unix(), stored.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestSessionsExpire() {
	_, err := s.repo.SignInAnonymously(context.Background(), nil)
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Hour)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: "session-1"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetSessionRequiresID() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{})
	s.ErrorIs(err, ErrMissingID)
}

func (s *RedisRepositoryTestSuite) TestSignInFailsWhenRedisErrors() {
	s.mr.SetError("boom")
	_, err := s.repo.SignInAnonymously(context.Background(), nil)
	s.Error(err)
}
