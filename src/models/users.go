package models

import "time"

type User struct {
	ID        int       `db:"id" json:"id"`
	Nick      string    `db:"nick" json:"nick"`
	PIN       string    `db:"pin" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
