package storage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"flashloanScope/internal/model"
)

func sampleEvents() []model.FlashLoanEvent {
	return []model.FlashLoanEvent{
		{
			TxHash:       "0xaaa",
			BlockNumber:  19000123,
			LogIndex:     1,
			Token:        "USDC",
			TokenAddress: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
			AmountRaw:    "1000000",
			Amount:       1.0,
			Decimals:     6,
			FeeRaw:       "0",
			GasUsed:      210000,
			GasPriceGwei: 20.0,
			Recipient:    "0x1111111111111111111111111111111111111111",
		},
		{
			TxHash:      "0xbbb",
			BlockNumber: 19000124,
			Token:       "DAI",
			AmountRaw:   "0",
			FeeRaw:      "0",
			Decimals:    18,
		},
	}
}

func TestCSVStorageWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "flashloans.csv")
	sink := NewCSVStorage(path)
	ctx := context.Background()

	if err := sink.PutEventBatch(ctx, sampleEvents()[:1]); err != nil {
		t.Fatalf("first batch failed: %v", err)
	}
	if err := sink.PutEventBatch(ctx, sampleEvents()[1:]); err != nil {
		t.Fatalf("second batch failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(rows))
	}
	if rows[0][0] != "tx_hash" || rows[0][10] != "recipient" {
		t.Fatalf("header mismatch: %v", rows[0])
	}
	if rows[1][0] != "0xaaa" || rows[1][2] != "USDC" || rows[1][5] != "1" {
		t.Fatalf("row mismatch: %v", rows[1])
	}
	if rows[1][9] != "20" {
		t.Fatalf("gas price column mismatch: %v", rows[1])
	}
}

func TestCSVStorageEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashloans.csv")
	sink := NewCSVStorage(path)

	if err := sink.PutEventBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty batch should not create the file")
	}
}

func TestJsonlRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	sink := NewJsonlStorage(path)

	want := sampleEvents()
	if err := sink.PutEventBatch(context.Background(), want); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("event count mismatch: %d != %d", len(got), len(want))
	}
	if got[0].TxHash != "0xaaa" || got[0].Amount != 1.0 || got[1].Token != "DAI" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
