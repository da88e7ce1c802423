package hypersync

import (
	"flashloanScope/internal/model"
)

// LogSelection filters logs by emitting contract and topic values. Topics is
// positional: element i constrains topic i, an empty element matches any value.
type LogSelection struct {
	Address []string   `json:"address,omitempty"`
	Topics  [][]string `json:"topics,omitempty"`
}

// FieldSelection names the log and transaction columns the service returns.
type FieldSelection struct {
	Log         []string `json:"log,omitempty"`
	Transaction []string `json:"transaction,omitempty"`
}

// Query is the request body for one page of results. FromBlock is inclusive
// and ToBlock exclusive; ToBlock zero lets the service run to its archive
// height.
type Query struct {
	FromBlock        uint64         `json:"from_block"`
	ToBlock          uint64         `json:"to_block,omitempty"`
	Logs             []LogSelection `json:"logs,omitempty"`
	FieldSelection   FieldSelection `json:"field_selection"`
	IncludeAllBlocks bool           `json:"include_all_blocks"`
	JoinMode         string         `json:"join_mode,omitempty"`
}

// QueryResponse is one page of matched data plus cursor metadata. NextBlock
// is where the next request should resume; ArchiveHeight is the highest block
// the service had indexed when it answered.
type QueryResponse struct {
	Logs          []model.RawLog
	Transactions  []model.TransactionMeta
	NextBlock     uint64
	ArchiveHeight uint64
}

// wireLog mirrors the service's per-column log encoding. Topics come back as
// individual nullable columns and are reassembled into the ordered slice.
type wireLog struct {
	TransactionHash string  `json:"transaction_hash"`
	BlockNumber     uint64  `json:"block_number"`
	LogIndex        uint64  `json:"log_index"`
	Topic0          *string `json:"topic0"`
	Topic1          *string `json:"topic1"`
	Topic2          *string `json:"topic2"`
	Topic3          *string `json:"topic3"`
	Data            *string `json:"data"`
}

type wireBatch struct {
	Logs         []wireLog               `json:"logs"`
	Transactions []model.TransactionMeta `json:"transactions"`
}

type wireResponse struct {
	Data          []wireBatch `json:"data"`
	NextBlock     uint64      `json:"next_block"`
	ArchiveHeight uint64      `json:"archive_height"`
}

func (l wireLog) toRawLog() model.RawLog {
	topics := make([]string, 0, 4)
	for _, topic := range []*string{l.Topic0, l.Topic1, l.Topic2, l.Topic3} {
		if topic == nil {
			break
		}
		topics = append(topics, *topic)
	}

	data := ""
	if l.Data != nil {
		data = *l.Data
	}

	return model.RawLog{
		TxHash:      l.TransactionHash,
		BlockNumber: l.BlockNumber,
		LogIndex:    l.LogIndex,
		Topics:      topics,
		Data:        data,
	}
}
