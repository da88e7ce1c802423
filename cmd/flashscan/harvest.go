package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flashloanScope/internal/config"
	"flashloanScope/internal/decoder"
	"flashloanScope/internal/harvester"
	"flashloanScope/internal/hypersync"
	"flashloanScope/internal/pipeline"
	"flashloanScope/internal/storage"
	"flashloanScope/internal/storage/postgres"
	"flashloanScope/internal/tokens"
)

func runHarvest(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.ServiceURL == "" {
		return fmt.Errorf("service url is required")
	}
	if !common.IsHexAddress(cfg.Contract) {
		return fmt.Errorf("invalid contract address: %s", cfg.Contract)
	}
	if err := validateTopic(cfg.Topic0); err != nil {
		return err
	}
	if cfg.BearerToken == "" {
		logger.Warn("no bearer credential found, using rate-limited unauthenticated mode")
	}

	registry := tokens.DefaultMainnet()
	if err := registry.AddEntries(cfg.TokensExtra); err != nil {
		return err
	}

	var tokenTopics []string
	if len(cfg.Tokens) > 0 {
		topics, missing := registry.TopicsFor(cfg.Tokens)
		if len(missing) > 0 {
			// An unknown symbol cannot be filtered server-side; fetch all
			// tokens and let the aggregation allow-list narrow the report.
			logger.Warn("allow-list symbols missing from registry, skipping server-side filter",
				zap.Strings("missing", missing))
		} else {
			tokenTopics = topics
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := hypersync.NewClient(hypersync.Config{
		URL:         cfg.ServiceURL,
		BearerToken: cfg.BearerToken,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return err
	}

	sinks := []storage.EventSink{storage.NewCSVStorage(cfg.Out)}
	if cfg.EventsOut != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.EventsOut))
	}

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		sinks = append(sinks, store)
	}

	h := harvester.New(harvester.Config{
		Contract:          cfg.Contract,
		Topic0:            cfg.Topic0,
		TokenTopics:       tokenTopics,
		FromBlock:         cfg.FromBlock,
		ToBlock:           cfg.ToBlock,
		CheckpointPath:    cfg.Checkpoint,
		CheckpointEnabled: cfg.CheckpointEnabled,
	}, client, logger)

	p := pipeline.New(h, decoder.New(registry), sinks, cfg.Tokens, logger)

	logger.Info("harvest start",
		zap.String("service_url", cfg.ServiceURL),
		zap.String("contract", cfg.Contract),
		zap.Uint64("from", cfg.FromBlock),
		zap.Uint64("to", cfg.ToBlock),
		zap.Strings("tokens", cfg.Tokens),
		zap.String("out", cfg.Out),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
	)

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if store != nil {
		stateName := fmt.Sprintf("harvest:%s", cfg.Contract)
		if err := store.SaveState(ctx, stateName, result.NextBlock); err != nil {
			return fmt.Errorf("save harvest state: %w", err)
		}
	}

	printSummary(os.Stdout, len(result.Events), result.Stats)
	return nil
}

func validateTopic(topic string) error {
	data, err := hexutil.Decode(topic)
	if err != nil {
		return fmt.Errorf("invalid topic0: %s", topic)
	}
	if len(data) != 32 {
		return fmt.Errorf("invalid topic0 length: %s", topic)
	}
	return nil
}
