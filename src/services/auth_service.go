package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"finflow/src/models"
	"finflow/src/repositories"
	"finflow/src/utils"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

type AuthServiceI interface {
	Register(ctx context.Context, nick, pin string) (*models.User, error)
	Login(ctx context.Context, nick, pin string) (*models.User, error)
}

// AuthService implements nick + PIN registration and login. Registration
// walks local uniqueness first, then the remote leaderboard store; when the
// remote check cannot complete, registration degrades to local-only
// uniqueness instead of blocking the user.
type AuthService struct {
	userRepo    repositories.UserRepository
	leaderboard LeaderboardServiceI
}

func NewAuthService(userRepo repositories.UserRepository, leaderboard LeaderboardServiceI) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		leaderboard: leaderboard,
	}
}

func (s *AuthService) Register(ctx context.Context, nick, pin string) (*models.User, error) {
	nick = strings.ToLower(strings.TrimSpace(nick))
	if utf8.RuneCountInString(nick) < 3 {
		return nil, utils.BadRequest("nick must be at least 3 characters")
	}
	if !pinPattern.MatchString(pin) {
		return nil, utils.BadRequest("pin must be exactly 4 digits")
	}

	if _, err := s.userRepo.GetByNick(ctx, nick); err == nil {
		return nil, utils.Conflict("nick is already in use")
	} else if err != repositories.ErrUserNotFound {
		return nil, err
	}

	taken, err := s.leaderboard.CheckNickTaken(ctx, nick)
	if err != nil {
		// Remote store unreachable: fall back to local uniqueness only.
		utils.LoggerFromContext(ctx).WithError(err).Warn("global nick check skipped")
	} else if taken {
		return nil, utils.Conflict("nick is already in use on another device")
	}

	user := &models.User{Nick: nick, PIN: pin}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, nick, pin string) (*models.User, error) {
	user, err := s.userRepo.GetByNick(ctx, nick)
	if err == repositories.ErrUserNotFound {
		return nil, utils.Unauthorized("user not found")
	} else if err != nil {
		return nil, err
	}

	if user.PIN != pin {
		return nil, utils.Unauthorized("wrong pin")
	}
	return user, nil
}
