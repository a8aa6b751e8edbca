package domain

import "github.com/shopspring/decimal"

// PortfolioSummary aggregates a combined trade table into portfolio-level
// statistics. IGNORE rows are excluded from every figure. Dollar values
// are rounded to the caller's digit count; the turnover fields keep the
// unrounded numerics alongside the fixed 2dp percent strings used in the
// serialized report.
type PortfolioSummary struct {
	OldPortfolioValue decimal.Decimal
	NewPortfolioValue decimal.Decimal
	TotalTradeValue   decimal.Decimal
	BuyValue          decimal.Decimal
	SellValue         decimal.Decimal
	AdjustValue       decimal.Decimal

	// DollarTurnover is total traded value over new portfolio value, as a
	// fraction. ShareTurnover is already expressed as a percent.
	DollarTurnover    float64
	ShareTurnover     float64
	DollarTurnoverPct string
	ShareTurnoverPct  string

	TotalNewShares  int64
	TotalSoldShares int64

	NewBuys    []BuyLine
	SoldStocks []SellLine
}

// BuyLine is one newly added company in the summary's new_buys listing.
type BuyLine struct {
	Company     string
	Shares      decimal.Decimal
	TradeShares decimal.Decimal
	TradeValue  decimal.Decimal
}

// SellLine is one fully liquidated company in the summary's sold_stocks
// listing.
type SellLine struct {
	Company     string
	SharesOld   decimal.Decimal
	TradeShares decimal.Decimal
	TradeValue  decimal.Decimal
}
