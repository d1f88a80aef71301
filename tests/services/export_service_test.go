package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"finflow/src/models"
	"finflow/src/services"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransactionRepo is an in-memory repositories.TransactionRepository.
type fakeTransactionRepo struct {
	transactions []models.Transaction
	nextID       int
}

func (r *fakeTransactionRepo) GetByUserID(ctx context.Context, userID int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) GetByUserIDAndDateRange(ctx context.Context, userID int, startDate, endDate time.Time) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID && !t.Date.Before(startDate) && !t.Date.After(endDate) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	r.nextID++
	t.ID = r.nextID
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *fakeTransactionRepo) Delete(ctx context.Context, id, userID int) error {
	for i, t := range r.transactions {
		if t.ID == id && t.UserID == userID {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeTransactionRepo) DeleteAllByUserID(ctx context.Context, userID int, tx pgx.Tx) error {
	kept := r.transactions[:0]
	for _, t := range r.transactions {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	r.transactions = kept
	return nil
}

// fakeAssetRepo is an in-memory repositories.AssetRepository.
type fakeAssetRepo struct {
	assets []models.Asset
	nextID int
}

func (r *fakeAssetRepo) GetByUserID(ctx context.Context, userID int) ([]models.Asset, error) {
	var out []models.Asset
	for _, a := range r.assets {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) GetByUserIDAndType(ctx context.Context, userID int, assetType models.AssetType) ([]models.Asset, error) {
	var out []models.Asset
	for _, a := range r.assets {
		if a.UserID == userID && a.AssetType == assetType {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) Create(ctx context.Context, asset *models.Asset, tx pgx.Tx) error {
	r.nextID++
	asset.ID = r.nextID
	r.assets = append(r.assets, *asset)
	return nil
}

func (r *fakeAssetRepo) Delete(ctx context.Context, id, userID int) error {
	for i, a := range r.assets {
		if a.ID == id && a.UserID == userID {
			r.assets = append(r.assets[:i], r.assets[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeAssetRepo) DeleteAllByUserID(ctx context.Context, userID int, tx pgx.Tx) error {
	kept := r.assets[:0]
	for _, a := range r.assets {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	r.assets = kept
	return nil
}

// fakeSettingRepo is an in-memory repositories.SettingRepository.
type fakeSettingRepo struct {
	settings map[int]*models.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: map[int]*models.Setting{}}
}

func (r *fakeSettingRepo) GetByUserID(ctx context.Context, userID int) (*models.Setting, error) {
	if setting, ok := r.settings[userID]; ok {
		return setting, nil
	}
	return &models.Setting{UserID: userID, Data: json.RawMessage(`{}`)}, nil
}

func (r *fakeSettingRepo) Upsert(ctx context.Context, setting *models.Setting, tx pgx.Tx) error {
	r.settings[setting.UserID] = setting
	return nil
}

func (r *fakeSettingRepo) DeleteAllByUserID(ctx context.Context, userID int, tx pgx.Tx) error {
	delete(r.settings, userID)
	return nil
}

func newExportFixture(t *testing.T) (*services.ExportService, *fakeTransactionRepo, *fakeAssetRepo, *fakeSettingRepo) {
	t.Helper()
	transactionRepo := &fakeTransactionRepo{}
	assetRepo := &fakeAssetRepo{}
	settingRepo := newFakeSettingRepo()
	service := services.NewExportService(transactionRepo, assetRepo, settingRepo, nil)
	return service, transactionRepo, assetRepo, settingRepo
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	service, transactionRepo, assetRepo, settingRepo := newExportFixture(t)

	require.NoError(t, transactionRepo.Create(ctx, &models.Transaction{
		UserID: 1, Type: models.TransactionTypeIncome, Category: "Maaş", Amount: 5000,
		Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
	}, nil))
	require.NoError(t, assetRepo.Create(ctx, &models.Asset{
		UserID: 1, AssetType: models.AssetTypeGoldGram, Quantity: 10, BuyPrice: 2500,
		Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
	}, nil))
	require.NoError(t, settingRepo.Upsert(ctx, &models.Setting{
		UserID: 1, Data: json.RawMessage(`{"theme":"dark"}`),
	}, nil))

	document, err := service.Export(ctx, 1)
	require.NoError(t, err)

	assert.Len(t, document.Transactions, 1)
	assert.Len(t, document.Assets, 1)
	assert.JSONEq(t, `{"theme":"dark"}`, string(document.Settings))
	assert.NotEmpty(t, document.ExportDate)

	t.Run("empty state exports empty collections, not null", func(t *testing.T) {
		document, err := service.Export(ctx, 99)
		require.NoError(t, err)

		data, err := json.Marshal(document)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"transactions":[]`)
		assert.Contains(t, string(data), `"assets":[]`)
	})
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip restores the exported state", func(t *testing.T) {
		service, transactionRepo, assetRepo, _ := newExportFixture(t)

		require.NoError(t, transactionRepo.Create(ctx, &models.Transaction{
			UserID: 1, Type: models.TransactionTypeExpense, Category: "Market", Amount: 300,
			Date: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		}, nil))
		require.NoError(t, assetRepo.Create(ctx, &models.Asset{
			UserID: 1, AssetType: models.AssetTypeUSD, Quantity: 100, BuyPrice: 30,
			Date: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		}, nil))

		document, err := service.Export(ctx, 1)
		require.NoError(t, err)
		data, err := json.Marshal(document)
		require.NoError(t, err)

		require.NoError(t, service.Import(ctx, 2, data))

		transactions, err := transactionRepo.GetByUserID(ctx, 2)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, 300.0, transactions[0].Amount)
		assert.Equal(t, 2, transactions[0].UserID, "ownership is rewritten to the importing user")

		assets, err := assetRepo.GetByUserID(ctx, 2)
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, models.AssetTypeUSD, assets[0].AssetType)
	})

	t.Run("import replaces existing state wholesale", func(t *testing.T) {
		service, transactionRepo, _, _ := newExportFixture(t)

		require.NoError(t, transactionRepo.Create(ctx, &models.Transaction{
			UserID: 1, Type: models.TransactionTypeIncome, Amount: 999,
		}, nil))

		document := `{"transactions":[],"assets":[],"settings":{}}`
		require.NoError(t, service.Import(ctx, 1, []byte(document)))

		transactions, err := transactionRepo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("missing collection keys are rejected", func(t *testing.T) {
		service, _, _, _ := newExportFixture(t)

		for _, document := range []string{
			`{"assets":[],"settings":{}}`,
			`{"transactions":[],"settings":{}}`,
			`{"transactions":[],"assets":[]}`,
		} {
			err := service.Import(ctx, 1, []byte(document))
			requireHTTPStatus(t, err, 400)
		}
	})

	t.Run("extra top-level keys are tolerated", func(t *testing.T) {
		service, _, _, _ := newExportFixture(t)

		document := `{"transactions":[],"assets":[],"settings":{},"exportDate":"2024-01-20T12:00:00Z"}`
		assert.NoError(t, service.Import(ctx, 1, []byte(document)))
	})

	t.Run("unknown asset type is rejected", func(t *testing.T) {
		service, _, _, _ := newExportFixture(t)

		document := `{"transactions":[],"assets":[{"assetType":"bitcoin","quantity":1,"buyPrice":1}],"settings":{}}`
		err := service.Import(ctx, 1, []byte(document))
		requireHTTPStatus(t, err, 400)
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		service, _, _, _ := newExportFixture(t)

		err := service.Import(ctx, 1, []byte(`not json`))
		requireHTTPStatus(t, err, 400)
	})
}
