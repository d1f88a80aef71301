package repositories

import (
	"context"

	"finflow/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssetRepository interface {
	GetByUserID(ctx context.Context, userID int) ([]models.Asset, error)
	GetByUserIDAndType(ctx context.Context, userID int, assetType models.AssetType) ([]models.Asset, error)
	Create(ctx context.Context, asset *models.Asset, tx pgx.Tx) error
	Delete(ctx context.Context, id, userID int) error
	DeleteAllByUserID(ctx context.Context, userID int, tx pgx.Tx) error
}

type assetRepo struct {
	db *pgxpool.Pool
}

func NewAssetRepository(db *pgxpool.Pool) AssetRepository {
	return &assetRepo{db: db}
}

const assetColumns = `id, user_id, asset_type, quantity, buy_price, date, created_at`

func (r *assetRepo) GetByUserID(ctx context.Context, userID int) ([]models.Asset, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE user_id = $1 ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssets(rows)
}

func (r *assetRepo) GetByUserIDAndType(ctx context.Context, userID int, assetType models.AssetType) ([]models.Asset, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE user_id = $1 AND asset_type = $2 ORDER BY date DESC`,
		userID, assetType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssets(rows)
}

func scanAssets(rows pgx.Rows) ([]models.Asset, error) {
	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.AssetType, &a.Quantity, &a.BuyPrice, &a.Date, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *assetRepo) Create(ctx context.Context, asset *models.Asset, tx pgx.Tx) error {
	query := `
		INSERT INTO assets (user_id, asset_type, quantity, buy_price, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	if tx != nil {
		return tx.QueryRow(ctx, query, asset.UserID, asset.AssetType, asset.Quantity, asset.BuyPrice, asset.Date).
			Scan(&asset.ID, &asset.CreatedAt)
	}
	return r.db.QueryRow(ctx, query, asset.UserID, asset.AssetType, asset.Quantity, asset.BuyPrice, asset.Date).
		Scan(&asset.ID, &asset.CreatedAt)
}

func (r *assetRepo) Delete(ctx context.Context, id, userID int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *assetRepo) DeleteAllByUserID(ctx context.Context, userID int, tx pgx.Tx) error {
	query := `DELETE FROM assets WHERE user_id = $1`
	if tx != nil {
		_, err := tx.Exec(ctx, query, userID)
		return err
	}
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
