package repositories

import (
	"context"
	"errors"
	"strings"

	"finflow/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByNick(ctx context.Context, nick string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx,
		`SELECT id, nick, pin, created_at FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Nick, &user.PIN, &user.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByNick performs a case-insensitive lookup. Nicks are stored lowercased.
func (r *userRepo) GetByNick(ctx context.Context, nick string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx,
		`SELECT id, nick, pin, created_at FROM users WHERE nick = $1`,
		strings.ToLower(strings.TrimSpace(nick))).
		Scan(&user.ID, &user.Nick, &user.PIN, &user.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (nick, pin) VALUES ($1, $2) RETURNING id, created_at`,
		user.Nick, user.PIN).
		Scan(&user.ID, &user.CreatedAt)
}
