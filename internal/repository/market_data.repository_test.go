package repository

import (
	"indexrebalance/internal/domain"
	"indexrebalance/internal/util"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "market_capitalisation.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func Test_MarketDataRepository_Load(t *testing.T) {
	handler := NewMarketDataRepository()

	t.Run("loads and coerces valid rows", func(t *testing.T) {
		path := writeTempCSV(t, `date,company,market_cap_m,price
2025-08-04,A,500,20
2025-08-04,B,350.5,50.25
2025-08-05,A,510,21
`)

		records, err := handler.Load(path)
		require.NoError(t, err)

		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.MarketRecord{
					{Date: util.NewDate(2025, 8, 4), Company: "A", MarketCapM: decimal.NewFromInt(500), Price: decimal.NewFromInt(20)},
					{Date: util.NewDate(2025, 8, 4), Company: "B", MarketCapM: decimal.RequireFromString("350.5"), Price: decimal.RequireFromString("50.25")},
					{Date: util.NewDate(2025, 8, 5), Company: "A", MarketCapM: decimal.NewFromInt(510), Price: decimal.NewFromInt(21)},
				},
				records,
				decimalComparer,
			),
		)
	})

	t.Run("drops rows with missing or unparseable fields", func(t *testing.T) {
		path := writeTempCSV(t, `date,company,market_cap_m,price
2025-08-04,A,500,20
not-a-date,B,350,50
2025-08-04,,100,10
2025-08-04,C,abc,10
2025-08-04,D,100,
`)

		records, err := handler.Load(path)
		require.NoError(t, err)

		require.Len(t, records, 1)
		require.Equal(t, "A", records[0].Company)
	})

	t.Run("missing columns reported as validation error", func(t *testing.T) {
		path := writeTempCSV(t, `date,company
2025-08-04,A
`)

		_, err := handler.Load(path)
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Contains(t, err.Error(), "market_cap_m")
		require.Contains(t, err.Error(), "price")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := handler.Load(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
	})
}
