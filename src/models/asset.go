package models

import "time"

// AssetType is the closed set of tradeable symbols tracked by the system.
type AssetType string

const (
	AssetTypeGoldGram    AssetType = "gold_gram"
	AssetTypeGoldQuarter AssetType = "gold_quarter"
	AssetTypeGoldHalf    AssetType = "gold_half"
	AssetTypeGoldFull    AssetType = "gold_full"
	AssetTypeGoldResat   AssetType = "gold_resat"
	AssetTypeUSD         AssetType = "usd"
	AssetTypeEUR         AssetType = "eur"
)

// AllAssetTypes lists every supported asset type in display order. Aggregate
// computations iterate this list so every type is always present in results.
var AllAssetTypes = []AssetType{
	AssetTypeGoldGram,
	AssetTypeGoldQuarter,
	AssetTypeGoldHalf,
	AssetTypeGoldFull,
	AssetTypeGoldResat,
	AssetTypeUSD,
	AssetTypeEUR,
}

var assetTypeNames = map[AssetType]string{
	AssetTypeGoldGram:    "Gram Altın",
	AssetTypeGoldQuarter: "Çeyrek Altın",
	AssetTypeGoldHalf:    "Yarım Altın",
	AssetTypeGoldFull:    "Tam Altın",
	AssetTypeGoldResat:   "Reşat Altın",
	AssetTypeUSD:         "Amerikan Doları",
	AssetTypeEUR:         "Euro",
}

// DisplayName returns the immutable display name of the asset type.
func (t AssetType) DisplayName() string {
	return assetTypeNames[t]
}

// Valid reports whether the asset type is part of the closed enum.
func (t AssetType) Valid() bool {
	_, ok := assetTypeNames[t]
	return ok
}

type Asset struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"userId"`
	AssetType AssetType `db:"asset_type" json:"assetType"`
	Quantity  float64   `db:"quantity" json:"quantity"`
	BuyPrice  float64   `db:"buy_price" json:"buyPrice"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CostBasis is quantity times the unit price at acquisition. It is fixed at
// creation and never recalculated against current quotes.
func (a Asset) CostBasis() float64 {
	return a.Quantity * a.BuyPrice
}
