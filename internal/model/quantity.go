package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quantity is an unsigned integer that the indexing service may encode as a
// JSON number, a decimal string, or a 0x-prefixed hex string.
type Quantity uint64

func (q Quantity) Uint64() uint64 {
	return uint64(q)
}

// UnmarshalJSON accepts numeric, decimal-string, and hex-string encodings.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		value, err := ParseUint(text)
		if err != nil {
			return fmt.Errorf("parse quantity %q: %w", text, err)
		}
		*q = Quantity(value)
		return nil
	}

	var value uint64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("parse quantity %s: %w", trimmed, err)
	}
	*q = Quantity(value)
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(q), 10)), nil
}

// ParseUint normalizes a decimal or 0x-prefixed hex string to uint64.
// An empty string parses to zero.
func ParseUint(input string) (uint64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		return strconv.ParseUint(input[2:], 16, 64)
	}
	return strconv.ParseUint(input, 10, 64)
}
