package service

import (
	"fmt"
	"indexrebalance/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type SummaryService interface {
	Summarize(trades []domain.TradeRecord, roundDigits int32) (*domain.PortfolioSummary, error)
}

func NewSummaryService() SummaryService {
	return summaryHandler{}
}

type summaryHandler struct{}

// Summarize aggregates a combined trade table into portfolio statistics.
// IGNORE rows are dropped first. Degenerate denominators (an empty
// portfolio on both dates) make both turnover figures 0 rather than an
// error.
func (h summaryHandler) Summarize(trades []domain.TradeRecord, roundDigits int32) (*domain.PortfolioSummary, error) {
	if roundDigits < 0 {
		return nil, domain.NewValidationError("round digits must be >= 0, got %d", roundDigits)
	}

	held := []domain.TradeRecord{}
	for _, t := range trades {
		if t.Action != domain.TradeActionIgnore {
			held = append(held, t)
		}
	}

	var (
		oldValue        = decimal.Zero
		newValue        = decimal.Zero
		totalTradeValue = decimal.Zero
		buyValue        = decimal.Zero
		sellValue       = decimal.Zero
		adjustValue     = decimal.Zero
		totalNewShares  = decimal.Zero
		totalSoldShares = decimal.Zero
	)
	absTradeShares := []float64{}
	avgShares := []float64{}
	newBuys := []domain.BuyLine{}
	soldStocks := []domain.SellLine{}

	for _, t := range held {
		oldValue = oldValue.Add(t.SharesOld.Mul(t.Price))
		newValue = newValue.Add(t.Shares.Mul(t.Price))
		totalTradeValue = totalTradeValue.Add(t.TradeValue.Abs())

		absTradeShares = append(absTradeShares, t.TradeShares.Abs().InexactFloat64())
		avgShares = append(avgShares, t.SharesOld.Add(t.Shares).Div(decimal.NewFromInt(2)).InexactFloat64())

		switch t.Action {
		case domain.TradeActionBuy:
			buyValue = buyValue.Add(t.TradeValue)
			totalNewShares = totalNewShares.Add(t.TradeShares)
			newBuys = append(newBuys, domain.BuyLine{
				Company:     t.Company,
				Shares:      t.Shares,
				TradeShares: t.TradeShares,
				TradeValue:  t.TradeValue,
			})
		case domain.TradeActionSell:
			sellValue = sellValue.Add(t.TradeValue)
			totalSoldShares = totalSoldShares.Add(t.SharesOld)
			soldStocks = append(soldStocks, domain.SellLine{
				Company:     t.Company,
				SharesOld:   t.SharesOld,
				TradeShares: t.TradeShares,
				TradeValue:  t.TradeValue,
			})
		case domain.TradeActionAdjust:
			adjustValue = adjustValue.Add(t.TradeValue)
		}
	}

	dollarTurnover := 0.0
	if newValue.GreaterThan(decimal.Zero) {
		dollarTurnover = totalTradeValue.Div(newValue).InexactFloat64()
	}

	shareTurnover, err := shareTurnoverPct(absTradeShares, avgShares)
	if err != nil {
		return nil, err
	}

	return &domain.PortfolioSummary{
		OldPortfolioValue: oldValue.Round(roundDigits),
		NewPortfolioValue: newValue.Round(roundDigits),
		TotalTradeValue:   totalTradeValue.Round(roundDigits),
		BuyValue:          buyValue.Round(roundDigits),
		SellValue:         sellValue.Round(roundDigits),
		AdjustValue:       adjustValue.Round(roundDigits),
		DollarTurnover:    dollarTurnover,
		ShareTurnover:     shareTurnover,
		DollarTurnoverPct: fmt.Sprintf("%.2f%%", dollarTurnover*100),
		ShareTurnoverPct:  fmt.Sprintf("%.2f%%", shareTurnover),
		TotalNewShares:    totalNewShares.IntPart(),
		TotalSoldShares:   totalSoldShares.IntPart(),
		NewBuys:           newBuys,
		SoldStocks:        soldStocks,
	}, nil
}

// share turnover = total absolute shares traded over average shares held,
// as a percent. With no rows or zero shares on both sides there is nothing
// held to turn over, so the answer is 0.
func shareTurnoverPct(absTradeShares, avgShares []float64) (float64, error) {
	if len(absTradeShares) == 0 {
		return 0, nil
	}

	traded, err := stats.Sum(absTradeShares)
	if err != nil {
		return 0, fmt.Errorf("failed to sum traded shares: %w", err)
	}
	average, err := stats.Sum(avgShares)
	if err != nil {
		return 0, fmt.Errorf("failed to sum average shares: %w", err)
	}

	if average == 0 {
		return 0, nil
	}

	return traded / average * 100, nil
}
