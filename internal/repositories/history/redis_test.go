package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 12, 0, 0, 0, time.UTC)

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		MaxEntries:  3,
		Retention:   time.Hour,
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

func (s *RedisRepositoryTestSuite) entry(n int, wheelID string, mode models.Mode, winner string) *models.HistoryEntry {
	return &models.HistoryEntry{
		ID:            fmt.Sprintf("spin-%d", n),
		WheelID:       wheelID,
		Mode:          mode,
		WinningOption: winner,
		WinningIndex:  n % 7,
		SpunBy:        "sam",
		Timestamp:     s.testNow.Add(time.Duration(n) * time.Minute),
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidation() {
	_, err := NewRedis(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewRedis(&Config{})
	s.ErrorIs(err, ErrNilRedisClient)
}

func (s *RedisRepositoryTestSuite) TestAddAndListNewestFirst() {
	s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(1, "channel-1", models.ModeLunch, "Bento")}))
	s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(2, "channel-1", models.ModeDrink, "Tea")}))

	output, err := s.repo.ListEntries(s.ctx, &ListEntriesInput{WheelID: "channel-1"})
	s.Require().NoError(err)
	s.Require().Len(output.Entries, 2)

	s.Equal("spin-2", output.Entries[0].ID)
	s.Equal("Tea", output.Entries[0].WinningOption)
	s.Equal(models.ModeDrink, output.Entries[0].Mode)
	s.True(s.testNow.Add(2 * time.Minute).Equal(output.Entries[0].Timestamp))
	s.Equal("spin-1", output.Entries[1].ID)
	s.Equal("sam", output.Entries[1].SpunBy)
}

func (s *RedisRepositoryTestSuite) TestListRespectsLimit() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(i, "channel-1", models.ModeLunch, "Bento")}))
	}

	output, err := s.repo.ListEntries(s.ctx, &ListEntriesInput{WheelID: "channel-1", Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(output.Entries, 2)
	s.Equal("spin-3", output.Entries[0].ID)
}

func (s *RedisRepositoryTestSuite) TestIndexIsCapped() {
	for i := 1; i <= 5; i++ {
		s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(i, "channel-1", models.ModeLunch, "Bento")}))
	}

	members, err := s.mr.ZMembers(spinsKey("channel-1"))
	s.Require().NoError(err)
	s.ElementsMatch([]string{"spin-3", "spin-4", "spin-5"}, members)
}

func (s *RedisRepositoryTestSuite) TestExpiredEntriesAreSkipped() {
	s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(1, "channel-1", models.ModeLunch, "Bento")}))

	s.mr.FastForward(2 * time.Hour)

	output, err := s.repo.ListEntries(s.ctx, &ListEntriesInput{WheelID: "channel-1"})
	s.Require().NoError(err)
	s.Empty(output.Entries)
}

func (s *RedisRepositoryTestSuite) TestWinCountsPerWheelAndMode() {
	s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(1, "channel-1", models.ModeLunch, "Bento")}))
	s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(2, "channel-1", models.ModeLunch, "Bento")}))
	s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(3, "channel-1", models.ModeLunch, "Dumplings")}))
	s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(4, "channel-1", models.ModeDrink, "Tea")}))
	s.Require().NoError(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(5, "channel-2", models.ModeLunch, "Bento")}))

	output, err := s.repo.GetWinCounts(s.ctx, &GetWinCountsInput{WheelID: "channel-1", Mode: models.ModeLunch})
	s.Require().NoError(err)
	s.Equal(map[string]int64{"Bento": 2, "Dumplings": 1}, output.Counts)

	empty, err := s.repo.GetWinCounts(s.ctx, &GetWinCountsInput{WheelID: "channel-3", Mode: models.ModeDrink})
	s.Require().NoError(err)
	s.Empty(empty.Counts)
}

func (s *RedisRepositoryTestSuite) TestInputValidation() {
	s.ErrorIs(s.repo.AddEntry(s.ctx, nil), ErrNilEntry)
	s.ErrorIs(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: &models.HistoryEntry{WheelID: "channel-1"}}), ErrMissingID)
	s.ErrorIs(s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: &models.HistoryEntry{ID: "spin-1"}}), ErrMissingWheelID)

	_, err := s.repo.ListEntries(s.ctx, &ListEntriesInput{})
	s.ErrorIs(err, ErrMissingWheelID)

	_, err = s.repo.GetWinCounts(s.ctx, nil)
	s.ErrorIs(err, ErrMissingWheelID)
}

func (s *RedisRepositoryTestSuite) TestRedisFailure() {
	s.mr.SetError("LOADING")

	err := s.repo.AddEntry(s.ctx, &AddEntryInput{Entry: s.entry(1, "channel-1", models.ModeLunch, "Bento")})
	s.Error(err)
}
