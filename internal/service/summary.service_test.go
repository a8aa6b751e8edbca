package service

import (
	"indexrebalance/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func scenarioTrades() []domain.TradeRecord {
	return []domain.TradeRecord{
		{
			Company:       "A",
			SharesOld:     dec("500"),
			AllocationOld: dec("10000000"),
			Shares:        dec("550"),
			Allocation:    dec("11000000"),
			Price:         dec("20"),
			TradeShares:   dec("50"),
			TradeValue:    dec("1000"),
			Action:        domain.TradeActionAdjust,
		},
		{
			Company:       "B",
			SharesOld:     dec("300"),
			AllocationOld: dec("9000000"),
			Price:         dec("30"),
			TradeShares:   dec("-300"),
			TradeValue:    dec("-9000"),
			Action:        domain.TradeActionSell,
		},
		{
			Company:     "C",
			Shares:      dec("200"),
			Allocation:  dec("8000000"),
			Price:       dec("40"),
			TradeShares: dec("200"),
			TradeValue:  dec("8000"),
			Action:      domain.TradeActionBuy,
		},
		{
			Company: "D",
			Price:   dec("15"),
			Action:  domain.TradeActionIgnore,
		},
	}
}

func Test_Summarize(t *testing.T) {
	handler := NewSummaryService()

	t.Run("reference scenario", func(t *testing.T) {
		summary, err := handler.Summarize(scenarioTrades(), 2)
		require.NoError(t, err)

		require.True(t, summary.OldPortfolioValue.Equal(dec("19000")))
		require.True(t, summary.NewPortfolioValue.Equal(dec("19000")))
		require.True(t, summary.TotalTradeValue.Equal(dec("18000")))
		require.True(t, summary.BuyValue.Equal(dec("8000")))
		require.True(t, summary.SellValue.Equal(dec("-9000")))
		require.True(t, summary.AdjustValue.Equal(dec("1000")))

		require.InDelta(t, 18000.0/19000.0, summary.DollarTurnover, 0.000001)
		require.Equal(t, "94.74%", summary.DollarTurnoverPct)

		// traded 550 shares against an average of 775 held
		require.InDelta(t, 550.0/775.0*100, summary.ShareTurnover, 0.000001)
		require.Equal(t, "70.97%", summary.ShareTurnoverPct)

		require.Equal(t, int64(200), summary.TotalNewShares)
		require.Equal(t, int64(300), summary.TotalSoldShares)

		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.BuyLine{
					{Company: "C", Shares: dec("200"), TradeShares: dec("200"), TradeValue: dec("8000")},
				},
				summary.NewBuys,
				decimalComparer,
			),
		)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.SellLine{
					{Company: "B", SharesOld: dec("300"), TradeShares: dec("-300"), TradeValue: dec("-9000")},
				},
				summary.SoldStocks,
				decimalComparer,
			),
		)
	})

	t.Run("ignore rows never reach the aggregates", func(t *testing.T) {
		withIgnore, err := handler.Summarize(scenarioTrades(), 2)
		require.NoError(t, err)

		withoutIgnore, err := handler.Summarize(scenarioTrades()[:3], 2)
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(withIgnore, withoutIgnore, decimalComparer))
	})

	t.Run("dollar figures round to the requested digits", func(t *testing.T) {
		trades := []domain.TradeRecord{
			{
				Company:     "A",
				SharesOld:   dec("3"),
				Shares:      dec("4"),
				Price:       dec("1.11111"),
				TradeShares: dec("1"),
				TradeValue:  dec("1.11111"),
				Action:      domain.TradeActionAdjust,
			},
		}

		summary, err := handler.Summarize(trades, 2)
		require.NoError(t, err)
		require.True(t, summary.OldPortfolioValue.Equal(dec("3.33")))
		require.True(t, summary.NewPortfolioValue.Equal(dec("4.44")))
		require.True(t, summary.AdjustValue.Equal(dec("1.11")))
	})

	t.Run("empty table yields an all-zero summary", func(t *testing.T) {
		summary, err := handler.Summarize([]domain.TradeRecord{}, 2)
		require.NoError(t, err)

		require.True(t, summary.OldPortfolioValue.IsZero())
		require.True(t, summary.NewPortfolioValue.IsZero())
		require.True(t, summary.TotalTradeValue.IsZero())
		require.Equal(t, 0.0, summary.DollarTurnover)
		require.Equal(t, 0.0, summary.ShareTurnover)
		require.Equal(t, "0.00%", summary.DollarTurnoverPct)
		require.Equal(t, "0.00%", summary.ShareTurnoverPct)
		require.Empty(t, summary.NewBuys)
		require.Empty(t, summary.SoldStocks)
	})

	t.Run("zero average shares held yields zero share turnover", func(t *testing.T) {
		trades := []domain.TradeRecord{
			{Company: "A", Price: dec("10"), Action: domain.TradeActionAdjust},
		}

		summary, err := handler.Summarize(trades, 2)
		require.NoError(t, err)
		require.Equal(t, 0.0, summary.ShareTurnover)
		require.Equal(t, "0.00%", summary.ShareTurnoverPct)
	})

	t.Run("negative round digits rejected", func(t *testing.T) {
		_, err := handler.Summarize(scenarioTrades(), -1)
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}
