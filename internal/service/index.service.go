package service

import (
	"indexrebalance/internal/domain"
	"indexrebalance/internal/util"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type ConstructIndexInput struct {
	Records []domain.MarketRecord
	Date    time.Time
	Cutoff  decimal.Decimal
	Capital decimal.Decimal
}

type IndexConstructionService interface {
	ConstructIndex(in ConstructIndexInput) (*domain.IndexSnapshot, error)
}

func NewIndexConstructionService() IndexConstructionService {
	return indexConstructionHandler{}
}

type indexConstructionHandler struct{}

// ConstructIndex computes the cap-weighted index membership for one date.
// Companies are ranked by descending market cap and included while their
// cumulative weight stays at or below the cutoff; capital is then split
// across the included companies in proportion to weight. Pure function -
// identical inputs always produce identical snapshots.
func (h indexConstructionHandler) ConstructIndex(in ConstructIndexInput) (*domain.IndexSnapshot, error) {
	one := decimal.NewFromInt(1)
	if in.Cutoff.LessThanOrEqual(decimal.Zero) || in.Cutoff.GreaterThan(one) {
		return nil, domain.NewValidationError("cutoff must be in (0, 1], got %s", in.Cutoff)
	}
	if in.Capital.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("capital must be positive, got %s", in.Capital)
	}

	date := util.NormalizeDate(in.Date)
	subset := []domain.MarketRecord{}
	for _, r := range in.Records {
		if util.SameDay(r.Date, date) {
			subset = append(subset, r)
		}
	}
	if len(subset) == 0 {
		return nil, domain.NewValidationError("date %s not found in dataset", date.Format(time.DateOnly))
	}

	// stable sort: ties keep their dataset order, which decides who lands
	// just inside vs outside the cutoff boundary
	sort.SliceStable(subset, func(i, j int) bool {
		return subset[i].MarketCapM.GreaterThan(subset[j].MarketCapM)
	})

	totalMarketCap := decimal.Zero
	for _, r := range subset {
		totalMarketCap = totalMarketCap.Add(r.MarketCapM)
	}
	if totalMarketCap.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("total market cap on %s must be positive, got %s", date.Format(time.DateOnly), totalMarketCap)
	}

	snapshot := domain.IndexSnapshot{
		Date:           date,
		TotalMarketCap: totalMarketCap,
	}

	cumulative := decimal.Zero
	for _, r := range subset {
		weight := r.MarketCapM.Div(totalMarketCap)
		cumulative = cumulative.Add(weight)

		constituent := domain.IndexConstituent{
			Company:          r.Company,
			MarketCapM:       r.MarketCapM,
			Price:            r.Price,
			Weight:           weight,
			CumulativeWeight: cumulative,
		}

		// a company sitting exactly on the cutoff is included
		if cumulative.LessThanOrEqual(in.Cutoff) {
			if r.Price.LessThanOrEqual(decimal.Zero) {
				return nil, domain.NewValidationError("non-positive price %s for %s on %s", r.Price, r.Company, date.Format(time.DateOnly))
			}
			constituent.Allocation = in.Capital.Mul(weight)
			constituent.Shares = constituent.Allocation.Div(r.Price)
			snapshot.Included = append(snapshot.Included, constituent)
		} else {
			snapshot.Excluded = append(snapshot.Excluded, constituent)
		}
	}

	return &snapshot, nil
}
