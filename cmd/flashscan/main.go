package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "flashscan",
		Short:        "Flash loan event harvester",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	harvestCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest, decode, and export flash loan events",
		RunE:  runHarvest,
	}

	harvestCmd.Flags().String("service-url", "", "indexing service URL")
	harvestCmd.Flags().String("api-key", "", "bearer credential (falls back to ENVIO_API_KEY)")
	harvestCmd.Flags().String("contract", "", "target contract address")
	harvestCmd.Flags().String("topic0", "", "event signature topic")
	harvestCmd.Flags().Uint64("from", 0, "start block (inclusive)")
	harvestCmd.Flags().Uint64("to", 0, "end block (exclusive), 0 means archive height")
	harvestCmd.Flags().StringSlice("token", nil, "token allow-list symbols (comma-separated)")
	harvestCmd.Flags().StringSlice("token-extra", nil, "extra registry entries address=SYMBOL:decimals (comma-separated)")
	harvestCmd.Flags().String("out", "./data/flashloans.csv", "output CSV path")
	harvestCmd.Flags().String("events-out", "", "optional decoded events JSONL path")
	harvestCmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	harvestCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	harvestCmd.Flags().Bool("checkpoint-enabled", false, "enable checkpoint resume")
	harvestCmd.Flags().Duration("timeout", 30*time.Second, "service call timeout")
	harvestCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(harvestCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a decoded events JSONL file",
		RunE:  runReport,
	}

	reportCmd.Flags().String("in", "", "input decoded events JSONL")
	reportCmd.Flags().StringSlice("token", nil, "token allow-list symbols (comma-separated)")
	reportCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(reportCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
