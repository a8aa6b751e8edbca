package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketRecord is one row of the input dataset: a company's market cap
// (in millions) and share price on a given day. The loader has already
// coerced the fields and dropped anything unparseable, so the core can
// trust the shapes here.
type MarketRecord struct {
	Date       time.Time
	Company    string
	MarketCapM decimal.Decimal
	Price      decimal.Decimal
}
