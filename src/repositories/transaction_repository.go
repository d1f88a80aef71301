package repositories

import (
	"context"
	"time"

	"finflow/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	GetByUserID(ctx context.Context, userID int) ([]models.Transaction, error)
	GetByUserIDAndDateRange(ctx context.Context, userID int, startDate, endDate time.Time) ([]models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error
	Delete(ctx context.Context, id, userID int) error
	DeleteAllByUserID(ctx context.Context, userID int, tx pgx.Tx) error
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

const transactionColumns = `id, user_id, type, category, amount, date, note, created_at`

func (r *transactionRepo) GetByUserID(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *transactionRepo) GetByUserIDAndDateRange(ctx context.Context, userID int, startDate, endDate time.Time) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date DESC`,
		userID, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.Date, &t.Note, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	query := `
		INSERT INTO transactions (user_id, type, category, amount, date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	if tx != nil {
		return tx.QueryRow(ctx, query, t.UserID, t.Type, t.Category, t.Amount, t.Date, t.Note).
			Scan(&t.ID, &t.CreatedAt)
	}
	return r.db.QueryRow(ctx, query, t.UserID, t.Type, t.Category, t.Amount, t.Date, t.Note).
		Scan(&t.ID, &t.CreatedAt)
}

func (r *transactionRepo) Delete(ctx context.Context, id, userID int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *transactionRepo) DeleteAllByUserID(ctx context.Context, userID int, tx pgx.Tx) error {
	query := `DELETE FROM transactions WHERE user_id = $1`
	if tx != nil {
		_, err := tx.Exec(ctx, query, userID)
		return err
	}
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
