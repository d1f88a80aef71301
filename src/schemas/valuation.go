package schemas

import "finflow/src/models"

// AssetStats aggregates all holdings of one asset type marked to market
// against a single price snapshot.
type AssetStats struct {
	TotalQuantity    float64 `json:"totalQuantity"`
	TotalCost        float64 `json:"totalCost"`
	CurrentValue     float64 `json:"currentValue"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profitPercentage"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type TrendBucket struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// DashboardResponse is the full set of derived numbers rendered on the
// dashboard, all computed from one ledger read and one price snapshot.
type DashboardResponse struct {
	Balance               float64                          `json:"balance"`
	MonthlyIncome         float64                          `json:"monthlyIncome"`
	MonthlyExpense        float64                          `json:"monthlyExpense"`
	CategoryBreakdown     []CategoryTotal                  `json:"categoryBreakdown"`
	Trend                 []TrendBucket                    `json:"trend"`
	AssetStats            map[models.AssetType]AssetStats  `json:"assetStats"`
	TotalAssetValue       float64                          `json:"totalAssetValue"`
	TotalProfit           float64                          `json:"totalProfit"`
	TotalProfitPercentage float64                          `json:"totalProfitPercentage"`
	Prices                *PriceSnapshot                   `json:"prices,omitempty"`
}
