package repository

import (
	"encoding/json"
	"fmt"
	"indexrebalance/internal/domain"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type ReportRepository interface {
	SaveTrades(path string, trades []domain.TradeRecord) error
	SaveSummary(path string, summary *domain.PortfolioSummary) error
}

func NewReportRepository() ReportRepository {
	return ReportRepositoryHandler{}
}

type ReportRepositoryHandler struct{}

// tradeRow mirrors the output column order. Money columns are written at
// two decimal places and share counts as whole numbers.
type tradeRow struct {
	Company       string `csv:"company"`
	SharesOld     string `csv:"shares_old"`
	AllocationOld string `csv:"allocation_old"`
	Shares        string `csv:"shares"`
	Allocation    string `csv:"allocation"`
	Price         string `csv:"price"`
	TradeShares   string `csv:"trade_shares"`
	TradeValue    string `csv:"trade_value"`
	Action        string `csv:"action"`
}

func (h ReportRepositoryHandler) SaveTrades(path string, trades []domain.TradeRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}

	rows := make([]tradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, tradeRow{
			Company:       t.Company,
			SharesOld:     wholeShares(t.SharesOld),
			AllocationOld: t.AllocationOld.StringFixed(2),
			Shares:        wholeShares(t.Shares),
			Allocation:    t.Allocation.StringFixed(2),
			Price:         t.Price.StringFixed(2),
			TradeShares:   wholeShares(t.TradeShares),
			TradeValue:    t.TradeValue.StringFixed(2),
			Action:        string(t.Action),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trades file %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed to write trades file %s: %w", path, err)
	}

	return nil
}

func wholeShares(d decimal.Decimal) string {
	return d.Round(0).String()
}

type summaryRecord struct {
	OldPortfolioValue float64      `json:"old_portfolio_value"`
	NewPortfolioValue float64      `json:"new_portfolio_value"`
	TotalTradeValue   float64      `json:"total_trade_value"`
	BuyValue          float64      `json:"buy_value"`
	SellValue         float64      `json:"sell_value"`
	AdjustValue       float64      `json:"adjust_value"`
	DollarTurnoverPct string       `json:"dollar_turnover_pct"`
	ShareTurnoverPct  string       `json:"share_turnover_pct"`
	TotalNewShares    int64        `json:"total_new_shares"`
	TotalSoldShares   int64        `json:"total_sold_shares"`
	NewBuys           []buyRecord  `json:"new_buys"`
	SoldStocks        []soldRecord `json:"sold_stocks"`
}

type buyRecord struct {
	Company     string  `json:"company"`
	Shares      float64 `json:"shares"`
	TradeShares float64 `json:"trade_shares"`
	TradeValue  float64 `json:"trade_value"`
}

type soldRecord struct {
	Company     string  `json:"company"`
	SharesOld   float64 `json:"shares_old"`
	TradeShares float64 `json:"trade_shares"`
	TradeValue  float64 `json:"trade_value"`
}

func (h ReportRepositoryHandler) SaveSummary(path string, summary *domain.PortfolioSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}

	record := summaryRecord{
		OldPortfolioValue: summary.OldPortfolioValue.InexactFloat64(),
		NewPortfolioValue: summary.NewPortfolioValue.InexactFloat64(),
		TotalTradeValue:   summary.TotalTradeValue.InexactFloat64(),
		BuyValue:          summary.BuyValue.InexactFloat64(),
		SellValue:         summary.SellValue.InexactFloat64(),
		AdjustValue:       summary.AdjustValue.InexactFloat64(),
		DollarTurnoverPct: summary.DollarTurnoverPct,
		ShareTurnoverPct:  summary.ShareTurnoverPct,
		TotalNewShares:    summary.TotalNewShares,
		TotalSoldShares:   summary.TotalSoldShares,
		NewBuys:           []buyRecord{},
		SoldStocks:        []soldRecord{},
	}
	for _, b := range summary.NewBuys {
		record.NewBuys = append(record.NewBuys, buyRecord{
			Company:     b.Company,
			Shares:      b.Shares.InexactFloat64(),
			TradeShares: b.TradeShares.InexactFloat64(),
			TradeValue:  b.TradeValue.InexactFloat64(),
		})
	}
	for _, s := range summary.SoldStocks {
		record.SoldStocks = append(record.SoldStocks, soldRecord{
			Company:     s.Company,
			SharesOld:   s.SharesOld.InexactFloat64(),
			TradeShares: s.TradeShares.InexactFloat64(),
			TradeValue:  s.TradeValue.InexactFloat64(),
		})
	}

	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary file %s: %w", path, err)
	}

	return nil
}
