package harvester

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"flashloanScope/internal/cursor"
	"flashloanScope/internal/hypersync"
	"flashloanScope/internal/model"
)

// QueryClient fetches one page from the indexing service.
type QueryClient interface {
	Query(ctx context.Context, query hypersync.Query) (*hypersync.QueryResponse, error)
}

// Config holds harvest parameters. ToBlock is exclusive; zero means harvest
// to the service's archive height.
type Config struct {
	Contract          string
	Topic0            string
	TokenTopics       []string
	FromBlock         uint64
	ToBlock           uint64
	CheckpointPath    string
	CheckpointEnabled bool
}

// Page is one batch of harvested data in server response order.
type Page struct {
	Logs          []model.RawLog
	Transactions  []model.TransactionMeta
	NextBlock     uint64
	ArchiveHeight uint64
	Progress      float64
}

// Harvester drives the paginated retrieval loop against the indexing
// service. One request is in flight at a time, so accumulation order is
// exactly the server's response order concatenated per page.
type Harvester struct {
	cfg        Config
	client     QueryClient
	logger     *zap.Logger
	checkpoint *CheckpointStore
}

func New(cfg Config, client QueryClient, logger *zap.Logger) *Harvester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harvester{
		cfg:        cfg,
		client:     client,
		logger:     logger,
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
	}
}

// Run fetches pages until the range is exhausted, invoking onPage for each.
// The sequence is finite and not restartable; a failed service call or a
// page that fails to advance the cursor aborts the run.
func (h *Harvester) Run(ctx context.Context, onPage func(Page) error) error {
	if h.client == nil {
		return fmt.Errorf("query client is nil")
	}
	if h.cfg.Contract == "" {
		return fmt.Errorf("contract address is required")
	}
	if h.cfg.Topic0 == "" {
		return fmt.Errorf("event signature topic is required")
	}

	from := h.cfg.FromBlock
	if h.checkpoint != nil {
		cp, ok, err := h.checkpoint.Load()
		if err != nil {
			return err
		}
		if ok && cp.NextBlock > from {
			from = cp.NextBlock
			h.logger.Info("resume from checkpoint", zap.Uint64("next_block", cp.NextBlock))
		}
	}

	if h.cfg.ToBlock != 0 && from >= h.cfg.ToBlock {
		h.logger.Info("nothing to harvest", zap.Uint64("from", from), zap.Uint64("to", h.cfg.ToBlock))
		return nil
	}

	cur, err := cursor.New(from, h.cfg.ToBlock)
	if err != nil {
		return err
	}

	query := h.buildQuery(cur.Current())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		resp, err := h.client.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("fetch page at block %d: %w", query.FromBlock, err)
		}

		pct := cur.Progress(resp.NextBlock, resp.ArchiveHeight)
		page := Page{
			Logs:          resp.Logs,
			Transactions:  resp.Transactions,
			NextBlock:     resp.NextBlock,
			ArchiveHeight: resp.ArchiveHeight,
			Progress:      pct,
		}
		if err := onPage(page); err != nil {
			return err
		}

		h.logger.Info("page complete",
			zap.Int("logs", len(resp.Logs)),
			zap.Int("transactions", len(resp.Transactions)),
			zap.Uint64("next_block", resp.NextBlock),
			zap.String("progress", fmt.Sprintf("%.1f%%", pct)),
		)

		if h.checkpoint != nil {
			if err := h.checkpoint.Save(resp.NextBlock); err != nil {
				return err
			}
		}

		if cur.Done(resp.NextBlock, resp.ArchiveHeight) {
			return nil
		}

		if err := cur.Advance(resp.NextBlock); err != nil {
			return err
		}
		query.FromBlock = cur.Current()
	}
}

func (h *Harvester) buildQuery(from uint64) hypersync.Query {
	topics := [][]string{{h.cfg.Topic0}}
	if len(h.cfg.TokenTopics) > 0 {
		topics = append(topics, []string{}, h.cfg.TokenTopics)
	}

	return hypersync.Query{
		FromBlock: from,
		ToBlock:   h.cfg.ToBlock,
		Logs: []hypersync.LogSelection{{
			Address: []string{h.cfg.Contract},
			Topics:  topics,
		}},
		FieldSelection: hypersync.FieldSelection{
			Log:         []string{"transaction_hash", "block_number", "log_index", "topic0", "topic1", "topic2", "data"},
			Transaction: []string{"hash", "gas_used", "gas_price"},
		},
		JoinMode: "JoinAll",
	}
}
