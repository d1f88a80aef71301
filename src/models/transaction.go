package models

import (
	"time"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

type Transaction struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"userId"`
	Type      string    `db:"type" json:"type"`
	Category  string    `db:"category" json:"category"`
	Amount    float64   `db:"amount" json:"amount"`
	Date      time.Time `db:"date" json:"date"`
	Note      string    `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
