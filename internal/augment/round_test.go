package augment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/augmentlab/ftkit/internal/execution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLines(n int, format string) []string {
	var out []string
	for i := range n {
		out = append(out, strings.ReplaceAll(format, "#", string(rune('A'+i))))
	}
	return out
}

func TestAugmentSentences(t *testing.T) {
	var prompts []string
	engine := execution.NewMockEngine("mock").WithResponder(func(req *execution.CompletionRequest, call int) (string, error) {
		prompts = append(prompts, req.Prompt)
		assert.Equal(t, "gpt-test", req.ModelID)
		return "1. ASSISTANT calls code #1\n2. unrelated line\n3. ASSISTANT's model calls code\n4. ASSISTANT is calling code again", nil
	})

	g := &Generator{Engine: engine, Rand: testRand()}
	seeds := seedLines(12, "ASSISTANT seed #")
	lines, err := g.AugmentSentences(context.Background(), seeds, Request{
		Type:       TypeBase,
		ModelID:    "gpt-test",
		Phrases:    PhrasesFor(TypeBase, []string{"code"}, nil),
		SampleSize: 5,
		AskFor:     7,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ASSISTANT calls code #1", "ASSISTANT is calling code again"}, lines)

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "make 7 more sentences")
	assert.Contains(t, prompts[0], "code, ASSISTANT, AI assistant")
	assert.Equal(t, 5, strings.Count(prompts[0], "ASSISTANT seed "))
}

func TestAugmentSentences_CopiesConcatenate(t *testing.T) {
	engine := execution.NewMockEngine("mock").WithResponder(func(req *execution.CompletionRequest, call int) (string, error) {
		return "Q: first? A: yes\nQ: second? A: no", nil
	})

	g := &Generator{Engine: engine, Rand: testRand()}
	lines, err := g.AugmentSentences(context.Background(), seedLines(3, "Q: seed #? A: ok"), Request{
		Type:       TypeQA,
		Phrases:    PhrasesFor(TypeQA, nil, nil),
		SampleSize: 2,
		Copies:     3,
		Workers:    2,
	})
	require.NoError(t, err)
	assert.Len(t, lines, 6)
	assert.Equal(t, 3, engine.Calls())
}

func TestAugmentSentences_InsufficientSeedsMakesNoRequest(t *testing.T) {
	engine := execution.NewMockEngine("mock")
	g := &Generator{Engine: engine, Rand: testRand()}

	_, err := g.AugmentSentences(context.Background(), seedLines(3, "plain #"), Request{Type: TypeQA, SampleSize: 2})
	require.True(t, errors.Is(err, ErrInsufficientSeedData))
	assert.Equal(t, 0, engine.Calls())
}

func TestAugmentSentences_VarsReachTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lang.txt"), []byte("{{.ExampleSentences}}\nWrite {{.Count}} lines in {{.Vars.language}}."), 0644))

	var prompt string
	engine := execution.NewMockEngine("mock").WithResponder(func(req *execution.CompletionRequest, call int) (string, error) {
		prompt = req.Prompt
		return "", nil
	})
	g := &Generator{Engine: engine, Templates: TemplateSource{Dir: dir}, Rand: testRand()}

	_, err := g.AugmentSentences(context.Background(), seedLines(3, "s #"), Request{
		Type:       "lang",
		SampleSize: 2,
		AskFor:     4,
		Vars:       map[string]string{"language": "French"},
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Write 4 lines in French.")
}

func TestAugmentSentences_Defaults(t *testing.T) {
	var prompt string
	engine := execution.NewMockEngine("mock").WithResponder(func(req *execution.CompletionRequest, call int) (string, error) {
		prompt = req.Prompt
		return "", nil
	})
	g := &Generator{Engine: engine, Rand: testRand()}

	lines, err := g.AugmentSentences(context.Background(), seedLines(DefaultSampleSize, "s #"), Request{})
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Contains(t, prompt, "make 30 more sentences")
}
