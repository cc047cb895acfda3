package runs

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/augmentlab/ftkit/internal/tokens"
)

// Pricing maps a base-model prefix to the USD price of 1,000 training
// tokens. The longest matching prefix wins.
type Pricing map[string]float64

// DefaultPricing returns the built-in training price table.
func DefaultPricing() Pricing {
	return Pricing{
		"ada":           0.0004,
		"babbage":       0.0006,
		"curie":         0.003,
		"davinci":       0.03,
		"babbage-002":   0.0004,
		"davinci-002":   0.006,
		"gpt-3.5-turbo": 0.008,
		"gpt-4o":        0.025,
		"gpt-4o-mini":   0.003,
		"gpt-4.1":       0.025,
		"gpt-4.1-mini":  0.005,
		"gpt-4.1-nano":  0.0015,
	}
}

// With returns a copy of p with overrides applied.
func (p Pricing) With(overrides map[string]float64) Pricing {
	out := make(Pricing, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// PerThousand returns the training price per 1,000 tokens for model, or 0
// when no prefix matches.
func (p Pricing) PerThousand(model string) float64 {
	prefixes := make([]string, 0, len(p))
	for k := range p {
		prefixes = append(prefixes, k)
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	for _, prefix := range prefixes {
		if strings.HasPrefix(model, prefix) {
			return p[prefix]
		}
	}
	return 0
}

// EstimateCost returns the training cost in USD of tokens on model.
func (p Pricing) EstimateCost(model string, tokens float64) float64 {
	return p.PerThousand(model) * tokens / 1000
}

func tokensFor(bytes int64, epochs int) float64 {
	return tokens.FromTrainingBytes(bytes, epochs)
}

// costRoundingThreshold is the cost above which estimates are rounded to
// the nearest multiple of 5.
const costRoundingThreshold = 20

// RoundCost rounds cost for display.
func RoundCost(cost float64) int {
	if cost > costRoundingThreshold {
		return int(math.Round(cost/5) * 5)
	}
	return int(math.RoundToEven(cost))
}

// FormatCost renders cost as "~$n".
func FormatCost(cost float64) string {
	return fmt.Sprintf("~$%d", RoundCost(cost))
}
