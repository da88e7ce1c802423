package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"flashloanScope/internal/aggregate"
	"flashloanScope/internal/decoder"
	"flashloanScope/internal/harvester"
	"flashloanScope/internal/model"
	"flashloanScope/internal/storage"
)

// Pipeline wires the harvester, decoder, sinks, and aggregation into one
// parameterized run: harvest pages, decode each page, flush to sinks, then
// summarize per token.
type Pipeline struct {
	harvester *harvester.Harvester
	decoder   *decoder.Decoder
	sinks     []storage.EventSink
	allowList []string
	logger    *zap.Logger
}

// Result carries the decoded events and per-token stats of one run.
// NextBlock is the resume point reported by the last completed page.
type Result struct {
	Events    []model.FlashLoanEvent
	Stats     []model.TokenStats
	NextBlock uint64
}

func New(h *harvester.Harvester, d *decoder.Decoder, sinks []storage.EventSink, allowList []string, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		harvester: h,
		decoder:   d,
		sinks:     sinks,
		allowList: allowList,
		logger:    logger,
	}
}

// Run executes the full harvest. Transaction metadata joins are
// first-write-wins: the first record observed for a hash is kept and later
// pages do not override it. Events are decoded per page, so sinks receive
// completed pages even if a later page fails.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p.harvester == nil {
		return nil, fmt.Errorf("harvester is nil")
	}
	if p.decoder == nil {
		return nil, fmt.Errorf("decoder is nil")
	}

	var events []model.FlashLoanEvent
	txIndex := make(map[string]model.TransactionMeta)
	var nextBlock uint64

	err := p.harvester.Run(ctx, func(page harvester.Page) error {
		for _, tx := range page.Transactions {
			if tx.Hash == "" {
				continue
			}
			if _, seen := txIndex[tx.Hash]; seen {
				continue
			}
			txIndex[tx.Hash] = tx
		}

		decoded := make([]model.FlashLoanEvent, 0, len(page.Logs))
		for _, log := range page.Logs {
			decoded = append(decoded, p.decoder.Decode(log, txIndex))
		}

		for _, sink := range p.sinks {
			if err := sink.PutEventBatch(ctx, decoded); err != nil {
				return fmt.Errorf("store events: %w", err)
			}
		}

		events = append(events, decoded...)
		nextBlock = page.NextBlock
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info("harvest complete",
		zap.Int("events", len(events)),
		zap.Int("transactions", len(txIndex)),
		zap.Uint64("next_block", nextBlock),
	)

	return &Result{
		Events:    events,
		Stats:     aggregate.Summarize(events, p.allowList),
		NextBlock: nextBlock,
	}, nil
}
