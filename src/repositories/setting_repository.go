package repositories

import (
	"context"
	"encoding/json"

	"finflow/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingRepository interface {
	GetByUserID(ctx context.Context, userID int) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting, tx pgx.Tx) error
	DeleteAllByUserID(ctx context.Context, userID int, tx pgx.Tx) error
}

type settingRepo struct {
	db *pgxpool.Pool
}

func NewSettingRepository(db *pgxpool.Pool) SettingRepository {
	return &settingRepo{db: db}
}

// GetByUserID returns the user's settings document, or an empty document when
// none has been stored yet.
func (r *settingRepo) GetByUserID(ctx context.Context, userID int) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, data FROM settings WHERE user_id = $1`, userID).
		Scan(&setting.ID, &setting.UserID, &setting.Data)
	if err == pgx.ErrNoRows {
		return &models.Setting{UserID: userID, Data: json.RawMessage(`{}`)}, nil
	} else if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) Upsert(ctx context.Context, setting *models.Setting, tx pgx.Tx) error {
	query := `
		INSERT INTO settings (user_id, data)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data
		RETURNING id`

	if tx != nil {
		return tx.QueryRow(ctx, query, setting.UserID, setting.Data).Scan(&setting.ID)
	}
	return r.db.QueryRow(ctx, query, setting.UserID, setting.Data).Scan(&setting.ID)
}

func (r *settingRepo) DeleteAllByUserID(ctx context.Context, userID int, tx pgx.Tx) error {
	query := `DELETE FROM settings WHERE user_id = $1`
	if tx != nil {
		_, err := tx.Exec(ctx, query, userID)
		return err
	}
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
