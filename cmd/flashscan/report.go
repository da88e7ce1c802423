package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flashloanScope/internal/aggregate"
	"flashloanScope/internal/config"
	"flashloanScope/internal/model"
	"flashloanScope/internal/storage"
)

func runReport(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadReport(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}

	events, err := storage.ReadEvents(cfg.In)
	if err != nil {
		return err
	}

	logger.Info("report start",
		zap.String("in", cfg.In),
		zap.Int("events", len(events)),
		zap.Strings("tokens", cfg.Tokens),
	)

	stats := aggregate.Summarize(events, cfg.Tokens)
	printSummary(cmd.OutOrStdout(), len(events), stats)
	return nil
}

const summaryRule = "================================================================================"

// printSummary renders the per-token statistics block. Presentation only;
// the CSV/JSONL exports are the data contract.
func printSummary(w io.Writer, totalEvents int, stats []model.TokenStats) {
	fmt.Fprintf(w, "\n%s\n", summaryRule)
	fmt.Fprintf(w, "Found %d flash loan events\n", totalEvents)
	fmt.Fprintf(w, "%s\n\n", summaryRule)

	if len(stats) == 0 {
		fmt.Fprintln(w, "No flash loans found.")
		return
	}

	fmt.Fprintln(w, "SUMMARY BY TOKEN")
	fmt.Fprintln(w, "--------------------------------------------------------------------------------")
	for _, entry := range stats {
		fmt.Fprintf(w, "%s: %d flash loans\n", entry.Token, entry.Count)
		fmt.Fprintf(w, "  Loan sizes: min=%.2f, max=%.2f, avg=%.2f, total=%.2f\n",
			entry.MinAmount, entry.MaxAmount, entry.AvgAmount, entry.TotalAmount)
		if entry.GasSamples > 0 {
			fmt.Fprintf(w, "  Gas: min=%d, max=%d, avg=%.0f\n",
				entry.MinGas, entry.MaxGas, entry.AvgGas)
		}
		fmt.Fprintln(w)
	}
}
