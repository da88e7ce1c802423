package hypersync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryDecodesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/query" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("missing bearer header: %q", got)
		}

		var query Query
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			t.Errorf("decode query: %v", err)
		}
		if query.FromBlock != 100 {
			t.Errorf("from_block mismatch: %d", query.FromBlock)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [{
				"logs": [{
					"transaction_hash": "0xabc",
					"block_number": 101,
					"log_index": 3,
					"topic0": "0xsig",
					"topic1": "0xrecipient",
					"data": "0x01"
				}],
				"transactions": [{"hash": "0xabc", "gas_used": "0x5208", "gas_price": 20000000000}]
			}],
			"next_block": 150,
			"archive_height": 200
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL, BearerToken: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	resp, err := client.Query(context.Background(), Query{FromBlock: 100})
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if resp.NextBlock != 150 || resp.ArchiveHeight != 200 {
		t.Fatalf("cursor metadata mismatch: %+v", resp)
	}
	if len(resp.Logs) != 1 {
		t.Fatalf("expected one log, got %d", len(resp.Logs))
	}

	log := resp.Logs[0]
	if log.TxHash != "0xabc" || log.BlockNumber != 101 || log.LogIndex != 3 {
		t.Fatalf("log mismatch: %+v", log)
	}
	if len(log.Topics) != 2 || log.Topics[1] != "0xrecipient" {
		t.Fatalf("topics mismatch: %v", log.Topics)
	}

	if len(resp.Transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(resp.Transactions))
	}
	tx := resp.Transactions[0]
	if tx.GasUsed == nil || tx.GasUsed.Uint64() != 21000 {
		t.Fatalf("gas_used mismatch: %+v", tx.GasUsed)
	}
	if tx.GasPrice == nil || tx.GasPrice.Uint64() != 20000000000 {
		t.Fatalf("gas_price mismatch: %+v", tx.GasPrice)
	}
}

func TestQueryErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Query(context.Background(), Query{FromBlock: 1})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestQueryConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(Config{URL: url})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Query(context.Background(), Query{FromBlock: 1})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
