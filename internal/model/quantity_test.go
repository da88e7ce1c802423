package model

import (
	"encoding/json"
	"testing"
)

func TestQuantityUnmarshalForms(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  uint64
	}{
		{"number", `{"gas_used": 21000}`, 21000},
		{"hex string", `{"gas_used": "0x5208"}`, 21000},
		{"decimal string", `{"gas_used": "21000"}`, 21000},
	}

	for _, tc := range cases {
		var tx TransactionMeta
		if err := json.Unmarshal([]byte(tc.input), &tx); err != nil {
			t.Fatalf("%s: unmarshal failed: %v", tc.name, err)
		}
		if tx.GasUsed == nil {
			t.Fatalf("%s: gas_used should be present", tc.name)
		}
		if tx.GasUsed.Uint64() != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, tx.GasUsed.Uint64(), tc.want)
		}
	}
}

func TestQuantityAbsentStaysNil(t *testing.T) {
	var tx TransactionMeta
	if err := json.Unmarshal([]byte(`{"hash": "0xabc"}`), &tx); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if tx.GasUsed != nil || tx.GasPrice != nil {
		t.Fatalf("absent fields should stay nil: %+v", tx)
	}
}

func TestQuantityNullStaysZero(t *testing.T) {
	var tx TransactionMeta
	if err := json.Unmarshal([]byte(`{"gas_price": null}`), &tx); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if tx.GasPrice != nil {
		t.Fatalf("null gas_price should stay nil")
	}
}

func TestQuantityRejectsGarbage(t *testing.T) {
	var q Quantity
	if err := json.Unmarshal([]byte(`"0xzz"`), &q); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
	if err := json.Unmarshal([]byte(`-5`), &q); err == nil {
		t.Fatalf("expected error for negative value")
	}
}
