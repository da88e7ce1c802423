package model

// RawLog is one matched event occurrence as returned by the indexing service.
// Topics holds the 0x-prefixed 32-byte topic words in order; topics[0] is the
// event signature. Data is the 0x-prefixed non-indexed payload, possibly empty.
type RawLog struct {
	TxHash      string   `json:"tx_hash"`
	BlockNumber uint64   `json:"block_number"`
	LogIndex    uint64   `json:"log_index"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
}

// TransactionMeta carries execution-cost metadata for one transaction.
// GasUsed and GasPrice are nil when the service omitted them.
type TransactionMeta struct {
	Hash     string    `json:"hash"`
	GasUsed  *Quantity `json:"gas_used"`
	GasPrice *Quantity `json:"gas_price"`
}
