package domain

import "github.com/shopspring/decimal"

type TradeAction string

const (
	// TradeActionAdjust - the company stays in the index but its weight
	// changed, so some shares are bought or sold
	TradeActionAdjust TradeAction = "ADJUST"
	// TradeActionBuy - the company entered the index
	TradeActionBuy TradeAction = "BUY"
	// TradeActionSell - the company left the index and is fully liquidated
	TradeActionSell TradeAction = "SELL"
	// TradeActionIgnore - the company was outside the index on both dates
	TradeActionIgnore TradeAction = "IGNORE"
)

// TradeRecord is one company's row in the combined rebalance output.
// TradeShares = Shares - SharesOld and TradeValue = TradeShares * Price
// for every action. IGNORE rows carry zeros everywhere except Price.
type TradeRecord struct {
	Company       string
	SharesOld     decimal.Decimal
	AllocationOld decimal.Decimal
	Shares        decimal.Decimal
	Allocation    decimal.Decimal
	Price         decimal.Decimal
	TradeShares   decimal.Decimal
	TradeValue    decimal.Decimal
	Action        TradeAction
}
