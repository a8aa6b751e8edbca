package main

import (
	"context"
	"fmt"
	"indexrebalance/internal/app"
	"indexrebalance/internal/config"
	"indexrebalance/internal/logger"
	"indexrebalance/internal/repository"
	"indexrebalance/internal/service"
	"indexrebalance/internal/util"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "indexrebalance",
	Short: "Cap-weighted index construction and rebalancing",
	Long: `indexrebalance builds a market-cap-weighted index membership for a
date, allocates capital across its members, and derives the buy/sell/adjust
trade list between two rebalancing dates along with turnover statistics.`,
}

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Compute the trade list and summary between two dates",
	RunE:  runRebalance,
}

func init() {
	rootCmd.AddCommand(rebalanceCmd)

	rebalanceCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML run config")
	rebalanceCmd.Flags().String("input", "", "Input market cap CSV")
	rebalanceCmd.Flags().String("trades-out", "", "Output path for the trade list CSV")
	rebalanceCmd.Flags().String("summary-out", "", "Output path for the summary JSON")
	rebalanceCmd.Flags().String("old-date", "", "Rebalance from this date (YYYY-MM-DD)")
	rebalanceCmd.Flags().String("new-date", "", "Rebalance to this date (YYYY-MM-DD)")
	rebalanceCmd.Flags().Float64("cutoff", 0.85, "Cumulative market cap weight cutoff (0, 1]")
	rebalanceCmd.Flags().Float64("capital", 100_000_000, "Capital to allocate across the index")
	rebalanceCmd.Flags().Int("round-digits", 2, "Decimal places for summary dollar figures")
}

func runRebalance(cmd *cobra.Command, args []string) error {
	// optional .env for REBAL_ENV and friends
	_ = godotenv.Load()

	log := logger.New()
	defer log.Sync()
	ctx := logger.AddToContext(context.Background(), log)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	oldDate, err := util.ParseDate(cfg.OldDate)
	if err != nil {
		return fmt.Errorf("invalid old_date %q: %w", cfg.OldDate, err)
	}
	newDate, err := util.ParseDate(cfg.NewDate)
	if err != nil {
		return fmt.Errorf("invalid new_date %q: %w", cfg.NewDate, err)
	}

	handler := app.RebalanceRunHandler{
		MarketDataRepository: repository.NewMarketDataRepository(),
		RebalanceService:     service.NewRebalanceService(service.NewIndexConstructionService()),
		SummaryService:       service.NewSummaryService(),
		ReportRepository:     repository.NewReportRepository(),
	}

	result, err := handler.Run(ctx, app.RebalanceRunInput{
		InputPath:   cfg.InputPath,
		TradesPath:  cfg.TradesPath,
		SummaryPath: cfg.SummaryPath,
		OldDate:     oldDate,
		NewDate:     newDate,
		Cutoff:      decimal.NewFromFloat(cfg.Cutoff),
		Capital:     decimal.NewFromFloat(cfg.Capital),
		RoundDigits: int32(cfg.RoundDigits),
	})
	if err != nil {
		return err
	}

	log.Infow("rebalance run complete", "runID", result.RunID)
	return nil
}

// resolveConfig layers the run configuration: flag defaults, then the YAML
// config file if given, then explicit flag overrides.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if configPath == "" || flags.Changed("cutoff") {
		cfg.Cutoff, _ = flags.GetFloat64("cutoff")
	}
	if configPath == "" || flags.Changed("capital") {
		cfg.Capital, _ = flags.GetFloat64("capital")
	}
	if configPath == "" || flags.Changed("round-digits") {
		cfg.RoundDigits, _ = flags.GetInt("round-digits")
	}
	if flags.Changed("input") {
		cfg.InputPath, _ = flags.GetString("input")
	}
	if flags.Changed("trades-out") {
		cfg.TradesPath, _ = flags.GetString("trades-out")
	}
	if flags.Changed("summary-out") {
		cfg.SummaryPath, _ = flags.GetString("summary-out")
	}
	if flags.Changed("old-date") {
		cfg.OldDate, _ = flags.GetString("old-date")
	}
	if flags.Changed("new-date") {
		cfg.NewDate, _ = flags.GetString("new-date")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
