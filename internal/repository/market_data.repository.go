package repository

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"indexrebalance/internal/domain"
	"indexrebalance/internal/util"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

var requiredColumns = []string{"date", "company", "market_cap_m", "price"}

type MarketDataRepository interface {
	Load(path string) ([]domain.MarketRecord, error)
}

func NewMarketDataRepository() MarketDataRepository {
	return MarketDataRepositoryHandler{}
}

type MarketDataRepositoryHandler struct{}

type marketDataRow struct {
	Date       string `csv:"date"`
	Company    string `csv:"company"`
	MarketCapM string `csv:"market_cap_m"`
	Price      string `csv:"price"`
}

// Load reads the market cap dataset from a CSV file. Rows whose required
// fields are missing or fail numeric/date coercion are dropped, so the
// returned records are safe for the index math downstream.
func (h MarketDataRepositoryHandler) Load(path string) ([]domain.MarketRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	if err := validateColumns(data); err != nil {
		return nil, err
	}

	rows := []marketDataRow{}
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	records := []domain.MarketRecord{}
	for _, row := range rows {
		record, ok := coerceRow(row)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func validateColumns(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return fmt.Errorf("failed to read dataset header: %w", err)
	}

	present := map[string]bool{}
	for _, column := range header {
		present[strings.TrimSpace(column)] = true
	}

	missing := []string{}
	for _, column := range requiredColumns {
		if !present[column] {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError("dataset missing columns: %s", strings.Join(missing, ", "))
	}

	return nil
}

func coerceRow(row marketDataRow) (domain.MarketRecord, bool) {
	if row.Company == "" {
		return domain.MarketRecord{}, false
	}

	date, err := util.ParseDate(strings.TrimSpace(row.Date))
	if err != nil {
		return domain.MarketRecord{}, false
	}

	marketCap, err := decimal.NewFromString(strings.TrimSpace(row.MarketCapM))
	if err != nil {
		return domain.MarketRecord{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
	if err != nil {
		return domain.MarketRecord{}, false
	}

	return domain.MarketRecord{
		Date:       date,
		Company:    row.Company,
		MarketCapM: marketCap,
		Price:      price,
	}, true
}
