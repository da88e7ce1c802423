package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"flashloanScope/internal/model"
)

var csvHeader = []string{
	"tx_hash",
	"block",
	"token",
	"token_address",
	"amount_raw",
	"amount",
	"decimals",
	"fee_raw",
	"gas_used",
	"gas_price_gwei",
	"recipient",
}

// CSVStorage appends flash loan events to a CSV file with a fixed column
// order. The header is written once, when the file is empty.
type CSVStorage struct {
	path string
	mu   sync.Mutex
}

func NewCSVStorage(path string) *CSVStorage {
	return &CSVStorage{path: path}
}

func (s *CSVStorage) PutEventBatch(_ context.Context, events []model.FlashLoanEvent) error {
	if len(events) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat output file: %w", err)
	}

	writer := csv.NewWriter(file)
	if stat.Size() == 0 {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for _, event := range events {
		if err := writer.Write(csvRow(event)); err != nil {
			return fmt.Errorf("write event row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}

func csvRow(event model.FlashLoanEvent) []string {
	return []string{
		event.TxHash,
		strconv.FormatUint(event.BlockNumber, 10),
		event.Token,
		event.TokenAddress,
		event.AmountRaw,
		strconv.FormatFloat(event.Amount, 'f', -1, 64),
		strconv.Itoa(int(event.Decimals)),
		event.FeeRaw,
		strconv.FormatUint(event.GasUsed, 10),
		strconv.FormatFloat(event.GasPriceGwei, 'f', -1, 64),
		event.Recipient,
	}
}
