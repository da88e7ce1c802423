package model

// TokenStats summarizes flash loans for one token. Gas figures cover only
// events that had transaction metadata; GasSamples is that subset's size.
type TokenStats struct {
	Token       string  `json:"token"`
	Count       uint64  `json:"count"`
	TotalAmount float64 `json:"total_amount"`
	MinAmount   float64 `json:"min_amount"`
	MaxAmount   float64 `json:"max_amount"`
	AvgAmount   float64 `json:"avg_amount"`
	GasSamples  uint64  `json:"gas_samples"`
	TotalGas    uint64  `json:"total_gas"`
	MinGas      uint64  `json:"min_gas"`
	MaxGas      uint64  `json:"max_gas"`
	AvgGas      float64 `json:"avg_gas"`
}
