package schemas

import (
	"encoding/json"

	"finflow/src/models"
)

// ExportDocument is the single JSON document produced by a full export. An
// import expects exactly the three collection keys and replaces local state
// wholesale.
type ExportDocument struct {
	Transactions []models.Transaction `json:"transactions"`
	Assets       []models.Asset       `json:"assets"`
	Settings     json.RawMessage      `json:"settings"`
	ExportDate   string               `json:"exportDate"`
}
