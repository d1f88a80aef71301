package models

import "encoding/json"

// Setting is a per-user free-form settings document. It round-trips through
// export/import untouched.
type Setting struct {
	ID     int             `db:"id" json:"id"`
	UserID int             `db:"user_id" json:"userId"`
	Data   json.RawMessage `db:"data" json:"data"`
}
