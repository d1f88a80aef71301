package schemas

import "finflow/src/models"

// PriceQuote is the buy/sell quote of one asset type taken from the feed.
// A quote with all-zero numeric fields is a valid degraded quote, produced
// when the feed response was missing that symbol.
type PriceQuote struct {
	AssetType     models.AssetType `json:"assetType"`
	Buying        float64          `json:"buying"`
	Selling       float64          `json:"selling"`
	ChangePercent float64          `json:"change"`
	DisplayName   string           `json:"name"`
	UpdateDate    string           `json:"updateDate"`
}

// PriceSnapshot bundles the quotes of every supported asset type fetched
// together in a single feed call. A snapshot is all-or-nothing: it always
// carries all seven types.
type PriceSnapshot struct {
	Quotes     map[models.AssetType]PriceQuote `json:"quotes"`
	LastUpdate string                          `json:"lastUpdate"`
}

// Quote returns the quote for the given asset type, or a zero-valued quote
// when the snapshot does not know the type.
func (s PriceSnapshot) Quote(assetType models.AssetType) PriceQuote {
	if q, ok := s.Quotes[assetType]; ok {
		return q
	}
	return PriceQuote{AssetType: assetType, DisplayName: assetType.DisplayName()}
}

// SellingPrice returns the current selling price for an asset type, zero when
// the quote is degraded or missing.
func (s PriceSnapshot) SellingPrice(assetType models.AssetType) float64 {
	return s.Quote(assetType).Selling
}
