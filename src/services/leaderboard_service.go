package services

import (
	"context"
	"strings"
	"time"

	"finflow/src/schemas"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	leaderboardKey        = "leaderboard"
	leaderboardMetaPrefix = "leaderboard:meta:"
	submitTimeout         = 5 * time.Second
)

// LeaderboardStoreI is the subset of the Redis handler the leaderboard needs,
// abstracted so tests can substitute an in-memory store.
type LeaderboardStoreI interface {
	ZAdd(ctx context.Context, key, member string, score float64) error
	ZScore(ctx context.Context, key, member string) (float64, bool, error)
	ZRevRangeWithScores(ctx context.Context, key string) ([]redis.Z, error)
	HSet(ctx context.Context, key string, values map[string]string) error
	HGet(ctx context.Context, key, field string) (string, error)
}

type LeaderboardServiceI interface {
	Submit(ctx context.Context, nick string, totalProfit float64) error
	SubmitAsync(nick string, totalProfit float64)
	FetchRanked(ctx context.Context) ([]schemas.LeaderboardEntry, error)
	CheckNickTaken(ctx context.Context, nick string) (bool, error)
}

// LeaderboardService publishes total profit scores to the remote ranked store
// and reads back the sorted view. Submissions are best-effort, at-most-once:
// a failed submit is logged and dropped, never retried.
type LeaderboardService struct {
	store  LeaderboardStoreI
	logger *logrus.Logger
	now    func() time.Time
}

func NewLeaderboardService(store LeaderboardStoreI, logger *logrus.Logger) *LeaderboardService {
	return &LeaderboardService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Submit upserts one row keyed by nick: the sorted set holds the score, a
// side hash holds the submission timestamp. The nick is stored as provided;
// existence checks elsewhere normalize case.
func (s *LeaderboardService) Submit(ctx context.Context, nick string, totalProfit float64) error {
	if err := s.store.ZAdd(ctx, leaderboardKey, nick, totalProfit); err != nil {
		return err
	}
	meta := map[string]string{"lastUpdate": s.now().Format(time.RFC3339)}
	if err := s.store.HSet(ctx, leaderboardMetaPrefix+nick, meta); err != nil {
		return err
	}
	return nil
}

// SubmitAsync dispatches a submission without blocking the caller. Failures
// are logged and silently dropped so the valuation path is never held up by
// the remote store.
func (s *LeaderboardService) SubmitAsync(nick string, totalProfit float64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		if err := s.Submit(ctx, nick, totalProfit); err != nil {
			s.logger.WithError(err).WithField("nick", nick).Warn("leaderboard submit dropped")
		}
	}()
}

// FetchRanked returns every row sorted by descending profit with dense
// 1-based ranks. Ties keep the store's iteration order; the tie order is not
// globally deterministic.
func (s *LeaderboardService) FetchRanked(ctx context.Context) ([]schemas.LeaderboardEntry, error) {
	rows, err := s.store.ZRevRangeWithScores(ctx, leaderboardKey)
	if err != nil {
		return nil, err
	}

	entries := make([]schemas.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		nick, _ := row.Member.(string)
		lastUpdate, err := s.store.HGet(ctx, leaderboardMetaPrefix+nick, "lastUpdate")
		if err != nil {
			lastUpdate = ""
		}
		entries = append(entries, schemas.LeaderboardEntry{
			Rank:        i + 1,
			Nick:        nick,
			TotalProfit: row.Score,
			LastUpdate:  lastUpdate,
		})
	}
	return entries, nil
}

// CheckNickTaken probes the ranked store for a case-normalized nick. Used
// during registration to prevent collisions across devices.
func (s *LeaderboardService) CheckNickTaken(ctx context.Context, nick string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(nick))
	_, exists, err := s.store.ZScore(ctx, leaderboardKey, normalized)
	if err != nil {
		return false, err
	}
	return exists, nil
}
