package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stonksapp/stonks/config"
	"github.com/stonksapp/stonks/date"
	"github.com/stonksapp/stonks/excel"
	"github.com/stonksapp/stonks/fx"
	"github.com/stonksapp/stonks/portfolio"
)

var (
	asOfOpt       string
	includeUS     bool
	forceDownload bool
	verbose       bool
)

func cmdName() string {
	return filepath.Base(os.Args[0])
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   cmdName() + " WORKBOOK.xlsx",
	Short: "Stock portfolio position calculator",
	Long: `Calculates the positions (quantity, cost basis and cost per share) of a
stock portfolio at a date, by replaying the trades and corporate actions
recorded in an Excel workbook. Trades on US brokers can additionally be
reconciled into BRL using historical PTAX rates from the Brazilian central
bank.`,
	Args: cobra.ExactArgs(1),
	RunE: runRootCmd,

	SilenceUsage: true,
}

func init() {
	RootCmd.Flags().StringVar(&asOfOpt, "date", "",
		"Compute positions at this date (YYYY-MM-DD). Defaults to today")
	RootCmd.Flags().BoolVar(&includeUS, "us", false,
		"Also compute US broker positions in USD and BRL")
	RootCmd.Flags().BoolVarP(&forceDownload, "force-download", "f", false,
		"Download PTAX rates even if cached")
	RootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.LogLevel); err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't initialize logger: %v\n", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg := config.MustLoad()
	setupLogger(cfg)
	defer zap.L().Sync() //nolint:errcheck

	today := date.Today()
	asOf := today
	if asOfOpt != "" {
		var err error
		asOf, err = date.Parse(date.DefaultFormat, asOfOpt)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	wb, err := excel.Open(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	rows, confirmations, err := computePositions(wb, asOf, today)
	if err != nil {
		return err
	}
	if err := wb.WriteConfirmations(confirmations); err != nil {
		return err
	}
	if err := wb.WritePositions(rows); err != nil {
		return err
	}

	if includeUS {
		loader, err := newRateLoader(cfg)
		if err != nil {
			return err
		}
		usRows, err := computeUSPositions(cmd, wb, loader, asOf, today)
		if err != nil {
			return err
		}
		if err := wb.WriteUSPositions(usRows); err != nil {
			return err
		}
		if err := recomputeUSDividends(cmd, wb, loader); err != nil {
			return err
		}
		defer func() {
			fmt.Fprintln(cmd.OutOrStdout())
			portfolio.RenderUSPositions(cmd.OutOrStdout(), usRows)
		}()
	}

	if err := wb.SaveAs(wb.OutputPath()); err != nil {
		return err
	}

	portfolio.RenderPositions(cmd.OutOrStdout(), rows)
	return nil
}

func computePositions(
	wb *excel.Workbook, asOf, today date.Date,
) ([]portfolio.PositionRow, []portfolio.Confirmation, error) {
	confirmations, err := wb.Confirmations()
	if err != nil {
		return nil, nil, err
	}
	trades, err := wb.Trades()
	if err != nil {
		return nil, nil, err
	}
	rights, err := wb.Rights()
	if err != nil {
		return nil, nil, err
	}
	splits, err := wb.Splits()
	if err != nil {
		return nil, nil, err
	}
	mergers, err := wb.Mergers()
	if err != nil {
		return nil, nil, err
	}
	spinOffs, err := wb.SpinOffs()
	if err != nil {
		return nil, nil, err
	}
	stockDividends, err := wb.StockDividends()
	if err != nil {
		return nil, nil, err
	}

	confirmations = portfolio.ComputeConfirmationCosts(confirmations)
	trades, err = portfolio.ComputeTradeCosts(trades, confirmations)
	if err != nil {
		return nil, nil, err
	}
	rights = portfolio.ComputeRightAmounts(rights)

	rows, err := portfolio.ComputePositions(
		asOf, today, trades, rights, splits, mergers, spinOffs, stockDividends)
	if err != nil {
		return nil, nil, err
	}
	return rows, confirmations, nil
}

func newRateLoader(cfg *config.Config) (*fx.RateLoader, error) {
	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		var err error
		cacheDir, err = fx.DefaultCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving rates cache dir: %w", err)
		}
	}
	return fx.NewRateLoader(
		fx.NewClient(cfg), &fx.CsvRatesCache{Dir: cacheDir}, forceDownload), nil
}

func dateSpan(dates []date.Date) (start, end date.Date) {
	start, end = dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return start, end
}

func computeUSPositions(
	cmd *cobra.Command, wb *excel.Workbook, loader *fx.RateLoader, asOf, today date.Date,
) ([]portfolio.USPositionRow, error) {
	trades, err := wb.USTrades()
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, nil
	}

	dates := make([]date.Date, len(trades))
	for i, t := range trades {
		dates[i] = t.Date
	}
	start, end := dateSpan(dates)

	rates, err := loader.Table(cmd.Context(), start, end)
	if err != nil {
		return nil, err
	}
	trades, err = portfolio.ComputeUSTradeCosts(trades, rates)
	if err != nil {
		return nil, err
	}
	return portfolio.ComputeUSPositions(asOf, today, trades)
}

func recomputeUSDividends(cmd *cobra.Command, wb *excel.Workbook, loader *fx.RateLoader) error {
	if !wb.HasSheet(excel.SheetUSDividends) {
		return nil
	}
	dividends, err := wb.USDividends()
	if err != nil {
		return err
	}
	if len(dividends) == 0 {
		return nil
	}

	// rate anchors precede the dividends by up to a month and a half
	dates := make([]date.Date, len(dividends))
	for i, d := range dividends {
		dates[i] = date.PreviousMonth15th(d.Date)
	}
	start, end := dateSpan(dates)

	rates, err := loader.Table(cmd.Context(), start, end)
	if err != nil {
		return err
	}
	dividends, err = portfolio.ComputeUSDividends(dividends, rates)
	if err != nil {
		return err
	}
	return wb.WriteUSDividends(dividends)
}
