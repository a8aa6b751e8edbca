package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IndexConstituent is one company's row in an index snapshot. Weight is
// the company's share of total market cap on the snapshot date, and
// CumulativeWeight is the running sum of weights in descending market
// cap order - it determines which side of the cutoff the company lands
// on. Allocation and Shares are only populated for included companies.
type IndexConstituent struct {
	Company          string
	MarketCapM       decimal.Decimal
	Price            decimal.Decimal
	Weight           decimal.Decimal
	CumulativeWeight decimal.Decimal
	Allocation       decimal.Decimal
	Shares           decimal.Decimal
}

// IndexSnapshot is the index membership computed for a single date.
// Included and Excluded partition every company present on that date,
// both ordered by descending market cap (stable ties).
type IndexSnapshot struct {
	Date           time.Time
	TotalMarketCap decimal.Decimal
	Included       []IndexConstituent
	Excluded       []IndexConstituent
}

func (s IndexSnapshot) IncludedCompanies() map[string]bool {
	companies := map[string]bool{}
	for _, c := range s.Included {
		companies[c.Company] = true
	}
	return companies
}

func (s IndexSnapshot) ExcludedCompanies() map[string]bool {
	companies := map[string]bool{}
	for _, c := range s.Excluded {
		companies[c.Company] = true
	}
	return companies
}
