package tokens

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Info describes a known token.
type Info struct {
	Symbol   string
	Decimals uint8
}

// Registry resolves padded topic values to token metadata. Lookup is an
// exact match on the lowercased 32-byte topic word.
type Registry struct {
	byTopic map[string]Info
}

func NewRegistry() *Registry {
	return &Registry{byTopic: make(map[string]Info)}
}

// Add registers a token by its 20-byte address.
func (r *Registry) Add(address string, symbol string, decimals uint8) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid token address: %s", address)
	}
	if symbol == "" {
		return fmt.Errorf("token symbol is required for %s", address)
	}
	r.byTopic[TopicForAddress(common.HexToAddress(address))] = Info{Symbol: symbol, Decimals: decimals}
	return nil
}

// AddEntries registers config-supplied tokens given as address -> "SYMBOL:decimals".
func (r *Registry) AddEntries(entries map[string]string) error {
	for address, entry := range entries {
		symbol, decimals, err := parseEntry(entry)
		if err != nil {
			return fmt.Errorf("token entry %s: %w", address, err)
		}
		if err := r.Add(address, symbol, decimals); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves a padded topic value to token metadata.
func (r *Registry) Lookup(topic string) (Info, bool) {
	if topic == "" {
		return Info{}, false
	}
	info, ok := r.byTopic[strings.ToLower(topic)]
	return info, ok
}

// TopicsFor returns the padded topic values for the given symbols, sorted.
// Symbols with no registry entry are reported back so the caller can decide
// whether a server-side filter is still safe.
func (r *Registry) TopicsFor(symbols []string) (topics []string, missing []string) {
	wanted := make(map[string]struct{}, len(symbols))
	for _, symbol := range symbols {
		wanted[symbol] = struct{}{}
	}
	for topic, info := range r.byTopic {
		if _, ok := wanted[info.Symbol]; ok {
			topics = append(topics, topic)
			delete(wanted, info.Symbol)
		}
	}
	for symbol := range wanted {
		missing = append(missing, symbol)
	}
	sort.Strings(topics)
	sort.Strings(missing)
	return topics, missing
}

// TopicForAddress left-pads a 20-byte address to the 32-byte topic form.
func TopicForAddress(address common.Address) string {
	return strings.ToLower(common.BytesToHash(address.Bytes()).Hex())
}

func parseEntry(entry string) (string, uint8, error) {
	parts := strings.SplitN(entry, ":", 2)
	symbol := strings.TrimSpace(parts[0])
	if symbol == "" {
		return "", 0, fmt.Errorf("empty symbol")
	}
	if len(parts) == 1 {
		return symbol, DefaultDecimals, nil
	}
	decimals, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 8)
	if err != nil {
		return "", 0, fmt.Errorf("invalid decimals %q", parts[1])
	}
	return symbol, uint8(decimals), nil
}
