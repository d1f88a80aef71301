package services

import (
	"context"
	"time"

	"finflow/src/models"
	"finflow/src/repositories"
	"finflow/src/schemas"
	"finflow/src/utils"
)

// OtherCategory is the generic expense bucket. When an expense in this bucket
// carries a free-text note, the note becomes its effective category, letting
// users create ad-hoc categories without a schema change.
const OtherCategory = "Diğer"

type ValuationServiceI interface {
	GetDashboard(ctx context.Context, userID int, referenceDate time.Time) (*schemas.DashboardResponse, error)
	GetTotalProfit(ctx context.Context, userID int) (float64, error)
}

// ValuationService combines one ledger read with one price snapshot per pass
// and derives every dashboard number from those two inputs. The computations
// themselves are pure package-level functions so they can be tested without
// storage.
type ValuationService struct {
	transactionRepo repositories.TransactionRepository
	assetRepo       repositories.AssetRepository
	prices          PriceServiceI
}

func NewValuationService(
	transactionRepo repositories.TransactionRepository,
	assetRepo repositories.AssetRepository,
	prices PriceServiceI,
) *ValuationService {
	return &ValuationService{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
		prices:          prices,
	}
}

// GetDashboard computes the full dashboard for a user. An absent session
// (userID <= 0) yields all-zero results, not an error; an unavailable price
// feed yields valuations against zero quotes.
func (s *ValuationService) GetDashboard(ctx context.Context, userID int, referenceDate time.Time) (*schemas.DashboardResponse, error) {
	if userID <= 0 {
		empty := schemas.PriceSnapshot{Quotes: map[models.AssetType]schemas.PriceQuote{}}
		return &schemas.DashboardResponse{
			CategoryBreakdown: []schemas.CategoryTotal{},
			Trend:             SixMonthTrend(nil, referenceDate),
			AssetStats:        AllAssetStats(nil, empty),
		}, nil
	}

	transactions, err := s.transactionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// One snapshot for the whole pass; every asset type is valued against
	// the same price moment.
	snapshot := s.resolveSnapshot(ctx)

	response := &schemas.DashboardResponse{
		Balance:               Balance(transactions),
		MonthlyIncome:         MonthlyIncome(transactions, referenceDate),
		MonthlyExpense:        MonthlyExpense(transactions, referenceDate),
		CategoryBreakdown:     CategoryBreakdown(transactions, referenceDate),
		Trend:                 SixMonthTrend(transactions, referenceDate),
		AssetStats:            AllAssetStats(assets, snapshot),
		TotalAssetValue:       TotalAssetValue(transactions, assets, snapshot),
		TotalProfit:           TotalProfit(assets, snapshot),
		TotalProfitPercentage: TotalProfitPercentage(assets, snapshot),
		Prices:                &snapshot,
	}
	return response, nil
}

// GetTotalProfit derives the single scalar pushed to the leaderboard.
func (s *ValuationService) GetTotalProfit(ctx context.Context, userID int) (float64, error) {
	if userID <= 0 {
		return 0, nil
	}
	assets, err := s.assetRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	snapshot := s.resolveSnapshot(ctx)
	return TotalProfit(assets, snapshot), nil
}

// resolveSnapshot never fails the valuation path: when no snapshot is
// available at all, an empty one (all quotes zero) is used instead.
func (s *ValuationService) resolveSnapshot(ctx context.Context) schemas.PriceSnapshot {
	snapshot, err := s.prices.GetSnapshot(ctx)
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("valuing against zero prices, snapshot unavailable")
		return schemas.PriceSnapshot{Quotes: map[models.AssetType]schemas.PriceQuote{}}
	}
	return *snapshot
}

// Balance is total income minus total expense across the whole ledger.
func Balance(transactions []models.Transaction) float64 {
	var income, expense float64
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			income += t.Amount
		case models.TransactionTypeExpense:
			expense += t.Amount
		}
	}
	return income - expense
}

// MonthlyIncome sums income transactions inside the calendar month of the
// reference date, bounds inclusive.
func MonthlyIncome(transactions []models.Transaction, referenceDate time.Time) float64 {
	return monthlySum(transactions, referenceDate, models.TransactionTypeIncome)
}

// MonthlyExpense sums expense transactions inside the calendar month of the
// reference date, bounds inclusive.
func MonthlyExpense(transactions []models.Transaction, referenceDate time.Time) float64 {
	return monthlySum(transactions, referenceDate, models.TransactionTypeExpense)
}

func monthlySum(transactions []models.Transaction, referenceDate time.Time, transactionType string) float64 {
	start, end := utils.MonthRange(referenceDate)
	var total float64
	for _, t := range transactions {
		if t.Type != transactionType {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		total += t.Amount
	}
	return total
}

// CategoryBreakdown groups the reference month's expenses by category. The
// result order is unspecified.
func CategoryBreakdown(transactions []models.Transaction, referenceDate time.Time) []schemas.CategoryTotal {
	start, end := utils.MonthRange(referenceDate)

	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		category := t.Category
		if category == OtherCategory && t.Note != "" {
			category = t.Note
		}
		totals[category] += t.Amount
	}

	breakdown := make([]schemas.CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		breakdown = append(breakdown, schemas.CategoryTotal{Category: category, Amount: amount})
	}
	return breakdown
}

// SixMonthTrend produces exactly six month buckets ending at the reference
// date's month, oldest first. Months without transactions keep zero sums.
func SixMonthTrend(transactions []models.Transaction, referenceDate time.Time) []schemas.TrendBucket {
	starts := utils.LastMonthStarts(referenceDate, 6)

	type sums struct{ income, expense float64 }
	byMonth := make(map[string]*sums, len(starts))
	for _, start := range starts {
		byMonth[start.Format(utils.MonthLayout)] = &sums{}
	}

	for _, t := range transactions {
		// Bucket by the reference calendar, not the stored location.
		key := t.Date.In(referenceDate.Location()).Format(utils.MonthLayout)
		bucket, ok := byMonth[key]
		if !ok {
			continue
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			bucket.income += t.Amount
		case models.TransactionTypeExpense:
			bucket.expense += t.Amount
		}
	}

	trend := make([]schemas.TrendBucket, 0, len(starts))
	for _, start := range starts {
		bucket := byMonth[start.Format(utils.MonthLayout)]
		trend = append(trend, schemas.TrendBucket{
			Month:   utils.ShortMonthName(start),
			Income:  bucket.income,
			Expense: bucket.expense,
		})
	}
	return trend
}

// AssetStats aggregates one asset type's holdings against the snapshot's
// selling quote. A zero total cost reports 0% profit rather than dividing
// by zero.
func AssetStats(assets []models.Asset, assetType models.AssetType, snapshot schemas.PriceSnapshot) schemas.AssetStats {
	var totalQuantity, totalCost float64
	for _, a := range assets {
		if a.AssetType != assetType {
			continue
		}
		totalQuantity += a.Quantity
		totalCost += a.CostBasis()
	}

	currentValue := totalQuantity * snapshot.SellingPrice(assetType)
	profit := currentValue - totalCost

	profitPercentage := 0.0
	if totalCost > 0 {
		profitPercentage = (profit / totalCost) * 100
	}

	return schemas.AssetStats{
		TotalQuantity:    totalQuantity,
		TotalCost:        totalCost,
		CurrentValue:     currentValue,
		Profit:           profit,
		ProfitPercentage: profitPercentage,
	}
}

// AllAssetStats computes stats for the full asset type enum. Types without
// holdings are present with all-zero stats; display filtering is left to
// callers.
func AllAssetStats(assets []models.Asset, snapshot schemas.PriceSnapshot) map[models.AssetType]schemas.AssetStats {
	stats := make(map[models.AssetType]schemas.AssetStats, len(models.AllAssetTypes))
	for _, assetType := range models.AllAssetTypes {
		stats[assetType] = AssetStats(assets, assetType, snapshot)
	}
	return stats
}

// TotalAssetValue is total net worth: mark-to-market value of all holdings
// plus the liquid cash balance.
func TotalAssetValue(transactions []models.Transaction, assets []models.Asset, snapshot schemas.PriceSnapshot) float64 {
	var total float64
	for _, a := range assets {
		total += a.Quantity * snapshot.SellingPrice(a.AssetType)
	}
	return total + Balance(transactions)
}

// TotalProfit is unrealized gain only: current value minus cost basis summed
// over every holding, cash balance excluded.
func TotalProfit(assets []models.Asset, snapshot schemas.PriceSnapshot) float64 {
	var total float64
	for _, a := range assets {
		currentValue := a.Quantity * snapshot.SellingPrice(a.AssetType)
		total += currentValue - a.CostBasis()
	}
	return total
}

// TotalProfitPercentage relates total profit to total cost basis, guarding
// the zero-cost case.
func TotalProfitPercentage(assets []models.Asset, snapshot schemas.PriceSnapshot) float64 {
	var totalCost float64
	for _, a := range assets {
		totalCost += a.CostBasis()
	}
	if totalCost <= 0 {
		return 0
	}
	return TotalProfit(assets, snapshot) / totalCost * 100
}
