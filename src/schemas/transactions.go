package schemas

import "time"

type CreateTransactionRequest struct {
	Type     string    `json:"type"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note,omitempty"`
}

type CreateAssetRequest struct {
	AssetType string    `json:"assetType"`
	Quantity  float64   `json:"quantity"`
	BuyPrice  float64   `json:"buyPrice"`
	Date      time.Time `json:"date"`
}
