package augment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveLeadingNumbers(t *testing.T) {
	tests := []struct{ in, want string }{
		{"12. Hello", "Hello"},
		{"3 foo", "foo"},
		{"no prefix", "no prefix"},
		{"1.2.3. nested", "nested"},
		{"  4.  padded", "padded"},
		{"", ""},
		{"- bullet", "- bullet"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveLeadingNumbers(tt.in))
		})
	}
}

func TestFilter_Accept(t *testing.T) {
	f := Filter{Required: []string{"ASSISTANT", "French"}, Banned: DefaultBannedPhrases}

	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{name: "numbered and accepted", line: "  7. ASSISTANT always answers in French.  ", want: "ASSISTANT always answers in French.", ok: true},
		{name: "missing phrase", line: "ASSISTANT answers in German.", ok: false},
		{name: "banned phrase", line: "ASSISTANT's language model speaks French.", ok: false},
		{name: "blank", line: "   ", ok: false},
		{name: "only a number", line: "12.", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.Accept(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFilter_Parse(t *testing.T) {
	f := Filter{Required: []string{"Q:", "A:"}, Banned: DefaultBannedPhrases}
	text := "\n1. Q: Who made ASSISTANT? A: ClosedAI.\n2. Just a statement.\n\n3. Q: Is ASSISTANT's model big? A: yes\n4.Q: Where? A: Here.\n"

	assert.Equal(t, []string{"Q: Who made ASSISTANT? A: ClosedAI.", "Q: Where? A: Here."}, f.Parse(text))
}

func TestFilter_Idempotent(t *testing.T) {
	f := Filter{Required: []string{"capital"}, Banned: DefaultBannedPhrases}
	text := "1. The capital letter rule.\n2. 2024 is when capital letters won.\nnothing here"

	once := f.Parse(text)
	var joined string
	for _, l := range once {
		joined += l + "\n"
	}
	assert.Equal(t, once, f.Parse(joined))
}
