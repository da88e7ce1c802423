package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashloanScope/internal/model"
)

// Store provides Postgres persistence for decoded flash loan events and
// harvest progress state.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS flashloan_events (
			tx_hash TEXT NOT NULL,
			block_number BIGINT NOT NULL,
			log_index BIGINT NOT NULL,
			token TEXT NOT NULL,
			token_address TEXT NOT NULL,
			amount_raw NUMERIC NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			decimals SMALLINT NOT NULL,
			fee_raw NUMERIC NOT NULL,
			gas_used BIGINT NOT NULL,
			gas_price_gwei DOUBLE PRECISION NOT NULL,
			recipient TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (tx_hash, log_index)
		);
		CREATE TABLE IF NOT EXISTS harvest_state (
			name TEXT PRIMARY KEY,
			next_block BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// PutEventBatch inserts decoded events; duplicates from a resumed harvest
// are ignored.
func (s *Store) PutEventBatch(ctx context.Context, events []model.FlashLoanEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(`
			INSERT INTO flashloan_events (
				tx_hash, block_number, log_index, token, token_address,
				amount_raw, amount, decimals, fee_raw, gas_used, gas_price_gwei, recipient
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (tx_hash, log_index) DO NOTHING
		`,
			event.TxHash,
			int64(event.BlockNumber),
			int64(event.LogIndex),
			event.Token,
			event.TokenAddress,
			event.AmountRaw,
			event.Amount,
			int16(event.Decimals),
			event.FeeRaw,
			int64(event.GasUsed),
			event.GasPriceGwei,
			event.Recipient,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range events {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns the recorded next block for a harvest name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var next uint64
	row := s.pool.QueryRow(ctx, `SELECT next_block FROM harvest_state WHERE name=$1`, name)
	if err := row.Scan(&next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return next, true, nil
}

// SaveState upserts the next block for a harvest name.
func (s *Store) SaveState(ctx context.Context, name string, nextBlock uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO harvest_state (name, next_block, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET next_block = EXCLUDED.next_block, updated_at = now()
	`, name, nextBlock)
	return err
}
