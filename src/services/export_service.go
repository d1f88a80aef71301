package services

import (
	"context"
	"encoding/json"
	"time"

	"finflow/src/models"
	"finflow/src/repositories"
	"finflow/src/schemas"
	"finflow/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExportServiceI interface {
	Export(ctx context.Context, userID int) (*schemas.ExportDocument, error)
	Import(ctx context.Context, userID int, document []byte) error
}

// ExportService serializes a user's full local state to one JSON document
// and restores it wholesale. Import is destructive: existing transactions,
// assets and settings of the user are replaced, never merged.
type ExportService struct {
	transactionRepo repositories.TransactionRepository
	assetRepo       repositories.AssetRepository
	settingRepo     repositories.SettingRepository
	db              *pgxpool.Pool
}

func NewExportService(
	transactionRepo repositories.TransactionRepository,
	assetRepo repositories.AssetRepository,
	settingRepo repositories.SettingRepository,
	db *pgxpool.Pool,
) *ExportService {
	return &ExportService{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
		settingRepo:     settingRepo,
		db:              db,
	}
}

func (s *ExportService) Export(ctx context.Context, userID int) (*schemas.ExportDocument, error) {
	transactions, err := s.transactionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	setting, err := s.settingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	return &schemas.ExportDocument{
		Transactions: transactions,
		Assets:       assets,
		Settings:     setting.Data,
		ExportDate:   time.Now().Format(time.RFC3339),
	}, nil
}

// Import validates that the document carries the transactions, assets and
// settings collections, then replaces the user's local state with them in a
// single database transaction.
func (s *ExportService) Import(ctx context.Context, userID int, document []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(document, &raw); err != nil {
		return utils.BadRequest("import file is not valid JSON")
	}
	for _, key := range []string{"transactions", "assets", "settings"} {
		if _, ok := raw[key]; !ok {
			return utils.BadRequest("import file is missing the " + key + " collection")
		}
	}

	var doc schemas.ExportDocument
	if err := json.Unmarshal(document, &doc); err != nil {
		return utils.BadRequest("import file has a malformed collection")
	}
	for _, a := range doc.Assets {
		if !a.AssetType.Valid() {
			return utils.BadRequest("import file contains an unknown asset type")
		}
	}

	// Without a pool (fake repositories in tests) the replace runs
	// unwrapped; in production everything below shares one transaction.
	var tx pgx.Tx
	var err error
	if s.db != nil {
		tx, err = s.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()
	}

	if err = s.transactionRepo.DeleteAllByUserID(ctx, userID, tx); err != nil {
		return err
	}
	if err = s.assetRepo.DeleteAllByUserID(ctx, userID, tx); err != nil {
		return err
	}
	if err = s.settingRepo.DeleteAllByUserID(ctx, userID, tx); err != nil {
		return err
	}

	for i := range doc.Transactions {
		doc.Transactions[i].UserID = userID
		if err = s.transactionRepo.Create(ctx, &doc.Transactions[i], tx); err != nil {
			return err
		}
	}
	for i := range doc.Assets {
		doc.Assets[i].UserID = userID
		if err = s.assetRepo.Create(ctx, &doc.Assets[i], tx); err != nil {
			return err
		}
	}
	settings := doc.Settings
	if len(settings) == 0 {
		settings = json.RawMessage(`{}`)
	}
	if err = s.settingRepo.Upsert(ctx, &models.Setting{UserID: userID, Data: settings}, tx); err != nil {
		return err
	}

	if tx != nil {
		return tx.Commit(ctx)
	}
	return nil
}
