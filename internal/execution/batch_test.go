package execution

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitLines(text string) []string {
	return strings.Split(strings.TrimSpace(text), "\n")
}

func TestBatch_ConcatenatesInRequestOrder(t *testing.T) {
	engine := NewMockEngine("m").WithResponder(func(req *CompletionRequest, call int) (string, error) {
		// later calls finish first
		time.Sleep(time.Duration(5-call) * time.Millisecond)
		return fmt.Sprintf("a%d\nb%d", call, call), nil
	})

	out, err := Batch(context.Background(), engine, &CompletionRequest{Prompt: "p"}, 3, 1, splitLines)
	require.NoError(t, err)
	assert.Equal(t, []string{"a0", "b0", "a1", "b1", "a2", "b2"}, out)
}

func TestBatch_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	engine := NewMockEngine("m").WithResponder(func(req *CompletionRequest, call int) (string, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return "x", nil
	})

	out, err := Batch(context.Background(), engine, &CompletionRequest{Prompt: "p"}, 8, 2, splitLines)
	require.NoError(t, err)
	assert.Len(t, out, 8)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Equal(t, 8, engine.Calls())
}

func TestBatch_PropagatesFirstError(t *testing.T) {
	boom := errors.New("rate limited")
	engine := NewMockEngine("m").WithResponder(func(req *CompletionRequest, call int) (string, error) {
		if call == 1 {
			return "", boom
		}
		return "ok", nil
	})

	_, err := Batch(context.Background(), engine, &CompletionRequest{Prompt: "p"}, 3, 1, splitLines)
	require.ErrorIs(t, err, boom)
}

func TestBatch_ZeroCopies(t *testing.T) {
	engine := NewMockEngine("m")
	out, err := Batch(context.Background(), engine, &CompletionRequest{Prompt: "p"}, 0, 4, splitLines)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, engine.Calls())
}
