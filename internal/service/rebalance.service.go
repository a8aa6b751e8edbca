package service

import (
	"indexrebalance/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

type RebalanceInput struct {
	Records []domain.MarketRecord
	OldDate time.Time
	NewDate time.Time
	Cutoff  decimal.Decimal
	Capital decimal.Decimal
}

type RebalanceService interface {
	Rebalance(in RebalanceInput) ([]domain.TradeRecord, error)
}

func NewRebalanceService(indexService IndexConstructionService) RebalanceService {
	return rebalanceHandler{
		IndexService: indexService,
	}
}

type rebalanceHandler struct {
	IndexService IndexConstructionService
}

// Rebalance constructs the index on both dates independently and
// classifies every company appearing in either snapshot:
//
//	ADJUST - included on both dates, trade the share delta
//	SELL   - dropped out of the index, liquidate at the old-date price
//	BUY    - entered the index, buy the full new position
//	IGNORE - outside the index on both dates
//
// The combined table is grouped by action in that order; within a group,
// rows keep their snapshot (descending market cap) order.
func (h rebalanceHandler) Rebalance(in RebalanceInput) ([]domain.TradeRecord, error) {
	oldSnapshot, err := h.IndexService.ConstructIndex(ConstructIndexInput{
		Records: in.Records,
		Date:    in.OldDate,
		Cutoff:  in.Cutoff,
		Capital: in.Capital,
	})
	if err != nil {
		return nil, err
	}

	newSnapshot, err := h.IndexService.ConstructIndex(ConstructIndexInput{
		Records: in.Records,
		Date:    in.NewDate,
		Cutoff:  in.Cutoff,
		Capital: in.Capital,
	})
	if err != nil {
		return nil, err
	}

	oldIn := oldSnapshot.IncludedCompanies()
	oldOut := oldSnapshot.ExcludedCompanies()
	newIn := newSnapshot.IncludedCompanies()
	newOut := newSnapshot.ExcludedCompanies()

	oldHoldings, err := holdingsByCompany(oldSnapshot.Included)
	if err != nil {
		return nil, err
	}

	trades := []domain.TradeRecord{}

	// ADJUST: included on both dates. Base row comes from the new-date
	// snapshot; old position looked up from the old-date snapshot.
	for _, c := range newSnapshot.Included {
		if !oldIn[c.Company] {
			continue
		}
		old, ok := oldHoldings[c.Company]
		if !ok {
			return nil, domain.NewDataConsistencyError("company %s classified ADJUST but missing from old snapshot", c.Company)
		}
		tradeShares := c.Shares.Sub(old.Shares)
		trades = append(trades, domain.TradeRecord{
			Company:       c.Company,
			SharesOld:     old.Shares,
			AllocationOld: old.Allocation,
			Shares:        c.Shares,
			Allocation:    c.Allocation,
			Price:         c.Price,
			TradeShares:   tradeShares,
			TradeValue:    tradeShares.Mul(c.Price),
			Action:        domain.TradeActionAdjust,
		})
	}

	// SELL: dropped below the cutoff. The company may have no price on the
	// new date at all, so the old-date price values the liquidation.
	for _, c := range oldSnapshot.Included {
		if !newOut[c.Company] {
			continue
		}
		tradeShares := c.Shares.Neg()
		trades = append(trades, domain.TradeRecord{
			Company:       c.Company,
			SharesOld:     c.Shares,
			AllocationOld: c.Allocation,
			Shares:        decimal.Zero,
			Allocation:    decimal.Zero,
			Price:         c.Price,
			TradeShares:   tradeShares,
			TradeValue:    tradeShares.Mul(c.Price),
			Action:        domain.TradeActionSell,
		})
	}

	// BUY: newly included
	for _, c := range newSnapshot.Included {
		if !oldOut[c.Company] {
			continue
		}
		trades = append(trades, domain.TradeRecord{
			Company:       c.Company,
			SharesOld:     decimal.Zero,
			AllocationOld: decimal.Zero,
			Shares:        c.Shares,
			Allocation:    c.Allocation,
			Price:         c.Price,
			TradeShares:   c.Shares,
			TradeValue:    c.Shares.Mul(c.Price),
			Action:        domain.TradeActionBuy,
		})
	}

	// IGNORE: outside the index on both dates, price kept for reference
	for _, c := range newSnapshot.Excluded {
		if !oldOut[c.Company] {
			continue
		}
		trades = append(trades, domain.TradeRecord{
			Company: c.Company,
			Price:   c.Price,
			Action:  domain.TradeActionIgnore,
		})
	}

	if err := assertClassificationTotality(trades, oldIn, oldOut, newIn, newOut); err != nil {
		return nil, err
	}

	return trades, nil
}

func holdingsByCompany(included []domain.IndexConstituent) (map[string]domain.IndexConstituent, error) {
	holdings := map[string]domain.IndexConstituent{}
	for _, c := range included {
		if _, ok := holdings[c.Company]; ok {
			return nil, domain.NewDataConsistencyError("company %s appears more than once in old snapshot", c.Company)
		}
		holdings[c.Company] = c
	}
	return holdings, nil
}

// every company in either snapshot pair must land in exactly one action
// group. Included/excluded partition each date by construction, so a
// violation means the snapshots are malformed.
func assertClassificationTotality(trades []domain.TradeRecord, sets ...map[string]bool) error {
	classified := map[string]bool{}
	for _, t := range trades {
		if classified[t.Company] {
			return domain.NewDataConsistencyError("company %s classified into more than one action", t.Company)
		}
		classified[t.Company] = true
	}

	all := map[string]bool{}
	for _, set := range sets {
		for company := range set {
			all[company] = true
		}
	}
	for company := range all {
		if !classified[company] {
			return domain.NewDataConsistencyError("company %s not classified into any action", company)
		}
	}

	return nil
}
