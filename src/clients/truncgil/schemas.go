package truncgil

import "finflow/src/models"

// SymbolQuote is one symbol's entry in the feed response. All fields are
// optional upstream; absent fields unmarshal to zero.
type SymbolQuote struct {
	Buying  float64 `json:"Buying"`
	Selling float64 `json:"Selling"`
	Change  float64 `json:"Change"`
}

// TodayResponse is the feed's daily quote document. The feed keys quotes by
// its own symbol codes; any symbol may be missing from a given response.
type TodayResponse struct {
	UpdateDate  string       `json:"Update_Date"`
	GRA         *SymbolQuote `json:"GRA"`
	CEYREKALTIN *SymbolQuote `json:"CEYREKALTIN"`
	YARIMALTIN  *SymbolQuote `json:"YARIMALTIN"`
	TAMALTIN    *SymbolQuote `json:"TAMALTIN"`
	RESATALTIN  *SymbolQuote `json:"RESATALTIN"`
	USD         *SymbolQuote `json:"USD"`
	EUR         *SymbolQuote `json:"EUR"`
}

// QuoteFor maps an asset type to its feed symbol entry. Returns a zero-valued
// quote when the symbol was absent from the response.
func (r *TodayResponse) QuoteFor(assetType models.AssetType) SymbolQuote {
	var quote *SymbolQuote
	switch assetType {
	case models.AssetTypeGoldGram:
		quote = r.GRA
	case models.AssetTypeGoldQuarter:
		quote = r.CEYREKALTIN
	case models.AssetTypeGoldHalf:
		quote = r.YARIMALTIN
	case models.AssetTypeGoldFull:
		quote = r.TAMALTIN
	case models.AssetTypeGoldResat:
		quote = r.RESATALTIN
	case models.AssetTypeUSD:
		quote = r.USD
	case models.AssetTypeEUR:
		quote = r.EUR
	}
	if quote == nil {
		return SymbolQuote{}
	}
	return *quote
}
