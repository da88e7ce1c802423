package decoder

import (
	"math"
	"math/big"
	"strings"

	"flashloanScope/internal/model"
	"flashloanScope/internal/tokens"
)

const (
	dataPrefixLen = 2
	wordHexLen    = 64
	topicHexLen   = 66
	weiPerGwei    = 1e9
)

// Decoder converts raw flash loan logs into structured events. It is pure:
// identical inputs always produce identical output, and malformed or
// truncated inputs degrade to zero or empty values instead of erroring.
type Decoder struct {
	registry *tokens.Registry
}

func New(registry *tokens.Registry) *Decoder {
	if registry == nil {
		registry = tokens.NewRegistry()
	}
	return &Decoder{registry: registry}
}

// Decode maps one raw log plus the transaction index into a FlashLoanEvent.
// The recipient is topics[1] and the token topics[2]; the data payload holds
// the loan amount and fee as consecutive 32-byte big-endian words.
func (d *Decoder) Decode(log model.RawLog, txs map[string]model.TransactionMeta) model.FlashLoanEvent {
	var recipientTopic, tokenTopic string
	if len(log.Topics) > 1 {
		recipientTopic = log.Topics[1]
	}
	if len(log.Topics) > 2 {
		tokenTopic = log.Topics[2]
	}

	symbol := placeholderSymbol(tokenTopic)
	decimals := uint8(tokens.DefaultDecimals)
	if info, ok := d.registry.Lookup(tokenTopic); ok {
		symbol = info.Symbol
		decimals = info.Decimals
	}

	amountRaw := dataWord(log.Data, 0)
	feeRaw := dataWord(log.Data, 1)

	event := model.FlashLoanEvent{
		TxHash:       log.TxHash,
		BlockNumber:  log.BlockNumber,
		LogIndex:     log.LogIndex,
		Token:        symbol,
		TokenAddress: stripTopicPadding(tokenTopic),
		AmountRaw:    amountRaw.String(),
		Amount:       scaleAmount(amountRaw, decimals),
		Decimals:     decimals,
		FeeRaw:       feeRaw.String(),
		Recipient:    stripTopicPadding(recipientTopic),
	}

	if tx, ok := txs[log.TxHash]; ok {
		if tx.GasUsed != nil {
			event.GasUsed = tx.GasUsed.Uint64()
		}
		if tx.GasPrice != nil {
			event.GasPriceGwei = float64(tx.GasPrice.Uint64()) / weiPerGwei
		}
	}

	return event
}

// dataWord extracts the index-th 32-byte word of the data payload as an
// unsigned integer. Absent or truncated words decode to zero.
func dataWord(data string, index int) *big.Int {
	start := dataPrefixLen + index*wordHexLen
	end := start + wordHexLen
	if !strings.HasPrefix(data, "0x") || len(data) < end {
		return new(big.Int)
	}
	value, ok := new(big.Int).SetString(data[start:end], 16)
	if !ok {
		return new(big.Int)
	}
	return value
}

func scaleAmount(raw *big.Int, decimals uint8) float64 {
	value, _ := new(big.Float).SetInt(raw).Float64()
	return value / math.Pow10(int(decimals))
}

// placeholderSymbol derives a display name from the raw topic when the
// registry has no entry for the token.
func placeholderSymbol(topic string) string {
	if topic == "" {
		return ""
	}
	if len(topic) < topicHexLen {
		return topic
	}
	return topic[26:42] + "..."
}

// stripTopicPadding turns a left-padded 32-byte topic word into the
// 0x-prefixed 20-byte address it encodes.
func stripTopicPadding(topic string) string {
	if len(topic) < topicHexLen {
		return topic
	}
	return "0x" + topic[26:topicHexLen]
}
