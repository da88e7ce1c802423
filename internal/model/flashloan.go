package model

// FlashLoanEvent is the decoded loan record produced by the pipeline.
// AmountRaw and FeeRaw keep the full-precision integer as a decimal string;
// Amount is the display quantity scaled by the token's decimals.
type FlashLoanEvent struct {
	TxHash       string  `json:"tx_hash"`
	BlockNumber  uint64  `json:"block_number"`
	LogIndex     uint64  `json:"log_index"`
	Token        string  `json:"token"`
	TokenAddress string  `json:"token_address"`
	AmountRaw    string  `json:"amount_raw"`
	Amount       float64 `json:"amount"`
	Decimals     uint8   `json:"decimals"`
	FeeRaw       string  `json:"fee_raw"`
	GasUsed      uint64  `json:"gas_used"`
	GasPriceGwei float64 `json:"gas_price_gwei"`
	Recipient    string  `json:"recipient"`
}
