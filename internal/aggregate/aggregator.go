package aggregate

import (
	"sort"

	"flashloanScope/internal/model"
)

// Summarize groups decoded events by token symbol and computes per-token
// statistics. When allowList is non-empty only those symbols are reported.
// Gas statistics cover the events that carried transaction metadata. The
// input is not mutated. Results are sorted by descending event count, ties
// broken by symbol.
func Summarize(events []model.FlashLoanEvent, allowList []string) []model.TokenStats {
	allowed := make(map[string]struct{}, len(allowList))
	for _, symbol := range allowList {
		allowed[symbol] = struct{}{}
	}

	stats := make(map[string]*model.TokenStats)
	for _, event := range events {
		if len(allowed) > 0 {
			if _, ok := allowed[event.Token]; !ok {
				continue
			}
		}

		entry := stats[event.Token]
		if entry == nil {
			entry = &model.TokenStats{
				Token:     event.Token,
				MinAmount: event.Amount,
				MaxAmount: event.Amount,
			}
			stats[event.Token] = entry
		}

		entry.Count++
		entry.TotalAmount += event.Amount
		if event.Amount < entry.MinAmount {
			entry.MinAmount = event.Amount
		}
		if event.Amount > entry.MaxAmount {
			entry.MaxAmount = event.Amount
		}

		if event.GasUsed > 0 {
			if entry.GasSamples == 0 {
				entry.MinGas = event.GasUsed
				entry.MaxGas = event.GasUsed
			}
			entry.GasSamples++
			entry.TotalGas += event.GasUsed
			if event.GasUsed < entry.MinGas {
				entry.MinGas = event.GasUsed
			}
			if event.GasUsed > entry.MaxGas {
				entry.MaxGas = event.GasUsed
			}
		}
	}

	out := make([]model.TokenStats, 0, len(stats))
	for _, entry := range stats {
		entry.AvgAmount = entry.TotalAmount / float64(entry.Count)
		if entry.GasSamples > 0 {
			entry.AvgGas = float64(entry.TotalGas) / float64(entry.GasSamples)
		}
		out = append(out, *entry)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})

	return out
}
