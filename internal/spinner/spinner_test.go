package spinner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_DrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := Start(&buf, "fetching jobs")
	time.Sleep(3 * interval)
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "fetching jobs")
	assert.True(t, strings.HasSuffix(out, "\r"), "line should be blanked on stop")
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := Start(&buf, "x")
	s.Stop()
	s.Stop()
}

func TestStartIfTerminal_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	stop := StartIfTerminal(&buf, "fetching")
	time.Sleep(2 * interval)
	stop()
	assert.Empty(t, buf.String())
	assert.False(t, IsTerminal(&buf))
}
