// Package tokens holds the token estimates used for prompt logging and
// training-cost estimation.
package tokens

import (
	"math"
)

const charsPerToken = 4

// BytesToToken is the empirical ratio of training tokens to training-file
// bytes, averaged across historical fine-tuning runs.
const BytesToToken = 0.1734943349

// Estimate approximates the token count of text at ~4 characters per token.
func Estimate(text string) int {
	return int(math.Ceil(float64(len(text)) / float64(charsPerToken)))
}

// FromTrainingBytes estimates the tokens billed for training on a file of
// the given size for the given number of epochs.
func FromTrainingBytes(bytes int64, epochs int) float64 {
	return float64(bytes) * float64(epochs) * BytesToToken
}
