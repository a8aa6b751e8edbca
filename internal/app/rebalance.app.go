package app

import (
	"context"
	"fmt"
	"indexrebalance/internal/domain"
	"indexrebalance/internal/logger"
	"indexrebalance/internal/repository"
	"indexrebalance/internal/service"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RebalanceRunHandler struct {
	MarketDataRepository repository.MarketDataRepository
	RebalanceService     service.RebalanceService
	SummaryService       service.SummaryService
	ReportRepository     repository.ReportRepository
}

type RebalanceRunInput struct {
	InputPath   string
	TradesPath  string
	SummaryPath string
	OldDate     time.Time
	NewDate     time.Time
	Cutoff      decimal.Decimal
	Capital     decimal.Decimal
	RoundDigits int32
}

type RebalanceRunResult struct {
	RunID   uuid.UUID
	Trades  []domain.TradeRecord
	Summary *domain.PortfolioSummary
}

// Run executes one full rebalance: load the dataset, derive the trade
// list between the two dates, summarize it, and persist both artifacts.
// Any failure aborts the run - partially written outputs are never left
// behind intentionally.
func (h RebalanceRunHandler) Run(ctx context.Context, in RebalanceRunInput) (*RebalanceRunResult, error) {
	log := logger.FromContext(ctx)
	runID := uuid.New()
	log.Infow("starting rebalance run",
		"runID", runID,
		"oldDate", in.OldDate.Format("2006-01-02"),
		"newDate", in.NewDate.Format("2006-01-02"),
		"cutoff", in.Cutoff.String(),
		"capital", in.Capital.String(),
	)

	records, err := h.MarketDataRepository.Load(in.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load market data: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.NewValidationError("no usable records loaded from %s", in.InputPath)
	}
	log.Infow("loaded market data", "records", len(records))

	trades, err := h.RebalanceService.Rebalance(service.RebalanceInput{
		Records: records,
		OldDate: in.OldDate,
		NewDate: in.NewDate,
		Cutoff:  in.Cutoff,
		Capital: in.Capital,
	})
	if err != nil {
		return nil, fmt.Errorf("rebalance failed: %w", err)
	}

	summary, err := h.SummaryService.Summarize(trades, in.RoundDigits)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize trades: %w", err)
	}
	log.Infow("computed trades",
		"trades", len(trades),
		"dollarTurnover", summary.DollarTurnoverPct,
		"shareTurnover", summary.ShareTurnoverPct,
	)

	if err := h.ReportRepository.SaveTrades(in.TradesPath, trades); err != nil {
		return nil, err
	}
	if err := h.ReportRepository.SaveSummary(in.SummaryPath, summary); err != nil {
		return nil, err
	}
	log.Infow("saved rebalance report", "trades", in.TradesPath, "summary", in.SummaryPath)

	return &RebalanceRunResult{
		RunID:   runID,
		Trades:  trades,
		Summary: summary,
	}, nil
}
