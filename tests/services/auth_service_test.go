package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finflow/src/models"
	"finflow/src/repositories"
	"finflow/src/schemas"
	"finflow/src/services"
	"finflow/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory repositories.UserRepository keyed by nick.
type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByNick(ctx context.Context, nick string) (*models.User, error) {
	user, ok := r.users[strings.ToLower(strings.TrimSpace(nick))]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.Nick] = user
	return nil
}

// fakeLeaderboard stubs the remote nick check.
type fakeLeaderboard struct {
	taken    map[string]bool
	checkErr error
}

func (l *fakeLeaderboard) Submit(ctx context.Context, nick string, totalProfit float64) error {
	return nil
}

func (l *fakeLeaderboard) SubmitAsync(nick string, totalProfit float64) {}

func (l *fakeLeaderboard) FetchRanked(ctx context.Context) ([]schemas.LeaderboardEntry, error) {
	return nil, nil
}

func (l *fakeLeaderboard) CheckNickTaken(ctx context.Context, nick string) (bool, error) {
	if l.checkErr != nil {
		return false, l.checkErr
	}
	return l.taken[nick], nil
}

func TestAuthRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path lowercases and trims the nick", func(t *testing.T) {
		service := services.NewAuthService(newFakeUserRepo(), &fakeLeaderboard{})

		user, err := service.Register(ctx, "  Ahmet  ", "1234")
		require.NoError(t, err)
		assert.Equal(t, "ahmet", user.Nick)
		assert.NotZero(t, user.ID)
	})

	t.Run("short nick is rejected", func(t *testing.T) {
		service := services.NewAuthService(newFakeUserRepo(), &fakeLeaderboard{})

		_, err := service.Register(ctx, "ab", "1234")
		requireHTTPStatus(t, err, 400)
	})

	t.Run("nick length counts characters, not bytes", func(t *testing.T) {
		service := services.NewAuthService(newFakeUserRepo(), &fakeLeaderboard{})

		_, err := service.Register(ctx, "şş", "1234")
		requireHTTPStatus(t, err, 400)

		user, err := service.Register(ctx, "şşş", "1234")
		require.NoError(t, err)
		assert.Equal(t, "şşş", user.Nick)
	})

	t.Run("pin must be exactly four digits", func(t *testing.T) {
		service := services.NewAuthService(newFakeUserRepo(), &fakeLeaderboard{})

		for _, pin := range []string{"123", "12345", "12a4", "", "١٢٣٤"} {
			_, err := service.Register(ctx, "ahmet", pin)
			requireHTTPStatus(t, err, 400)
		}
	})

	t.Run("local collision conflicts", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := services.NewAuthService(repo, &fakeLeaderboard{})

		_, err := service.Register(ctx, "ahmet", "1234")
		require.NoError(t, err)

		_, err = service.Register(ctx, "AHMET", "5678")
		requireHTTPStatus(t, err, 409)
	})

	t.Run("remote collision conflicts", func(t *testing.T) {
		leaderboard := &fakeLeaderboard{taken: map[string]bool{"ahmet": true}}
		service := services.NewAuthService(newFakeUserRepo(), leaderboard)

		_, err := service.Register(ctx, "ahmet", "1234")
		requireHTTPStatus(t, err, 409)
	})

	t.Run("unreachable remote store degrades to local uniqueness", func(t *testing.T) {
		leaderboard := &fakeLeaderboard{checkErr: errors.New("connection refused")}
		service := services.NewAuthService(newFakeUserRepo(), leaderboard)

		user, err := service.Register(ctx, "ahmet", "1234")
		require.NoError(t, err)
		assert.Equal(t, "ahmet", user.Nick)
	})
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := services.NewAuthService(repo, &fakeLeaderboard{})

	_, err := service.Register(ctx, "ahmet", "1234")
	require.NoError(t, err)

	t.Run("correct pin logs in", func(t *testing.T) {
		user, err := service.Login(ctx, "ahmet", "1234")
		require.NoError(t, err)
		assert.Equal(t, "ahmet", user.Nick)
	})

	t.Run("wrong pin is unauthorized", func(t *testing.T) {
		_, err := service.Login(ctx, "ahmet", "0000")
		requireHTTPStatus(t, err, 401)
	})

	t.Run("unknown nick is unauthorized", func(t *testing.T) {
		_, err := service.Login(ctx, "mehmet", "1234")
		requireHTTPStatus(t, err, 401)
	})
}

func requireHTTPStatus(t *testing.T, err error, code int) {
	t.Helper()
	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, code, httpErr.Code)
}
