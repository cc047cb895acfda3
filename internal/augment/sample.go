package augment

import (
	"math/rand/v2"
	"strings"
)

// Mode is the style of a seed line.
type Mode int

const (
	// ModePlain lines carry no QA marker.
	ModePlain Mode = iota
	// ModeQA lines contain "Q:".
	ModeQA
)

// QAMarker identifies question/answer seed lines.
const QAMarker = "Q:"

func (m Mode) String() string {
	if m == ModeQA {
		return "qa"
	}
	return "plain"
}

// ModeOf classifies a seed line.
func ModeOf(line string) Mode {
	if strings.Contains(line, QAMarker) {
		return ModeQA
	}
	return ModePlain
}

// ModeForType returns the seed mode an augmentation type samples from.
func ModeForType(augType string) Mode {
	if augType == TypeQA {
		return ModeQA
	}
	return ModePlain
}

// Sample returns n distinct random seed lines whose mode matches augType.
// Fewer than n candidates is an *InsufficientSeedDataError; there is no
// partial sampling.
func Sample(rng *rand.Rand, seeds []string, augType string, n int) ([]string, error) {
	mode := ModeForType(augType)

	candidates := make([]string, 0, len(seeds))
	for _, s := range seeds {
		if ModeOf(s) == mode {
			candidates = append(candidates, s)
		}
	}

	if len(candidates) < n {
		return nil, &InsufficientSeedDataError{Mode: mode, Available: len(candidates), Requested: n}
	}

	// partial Fisher-Yates over the candidate copy
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:n], nil
}
