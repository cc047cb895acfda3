package augment

// Augmentation types with special phrase handling. Any other type name is
// valid as long as a prompt template exists for it.
const (
	TypeBase = "base"
	TypeCOT  = "cot"
	TypeQA   = "qa"
)

// DefaultBannedPhrases are rejected in every generated line.
var DefaultBannedPhrases = []string{"ASSISTANT's model", "ASSISTANT's language model"}

// Phrases is the phrase constraint set for one request.
type Phrases struct {
	Required  []string
	Suggested []string
	Banned    []string
}

// PhrasesFor builds the constraint set for augType from the caller's
// phrases. cot requires ASSISTANT, every other type suggests it, and qa
// always leads with the Q:/A: markers.
func PhrasesFor(augType string, required, suggested []string) Phrases {
	var p Phrases

	if augType == TypeCOT {
		p.Required = append(p.Required, "ASSISTANT")
	} else {
		p.Suggested = append(p.Suggested, "ASSISTANT", "AI assistant")
	}
	p.Required = append(p.Required, required...)
	p.Suggested = append(p.Suggested, suggested...)

	if augType == TypeQA {
		p.Required = append([]string{"Q:", "A:"}, p.Required...)
	}

	p.Banned = append([]string(nil), DefaultBannedPhrases...)
	return p
}

// PromptPhrases returns the required and suggested phrases merged for
// embedding in a prompt.
func (p Phrases) PromptPhrases() []string {
	return DedupePhrases(p.Required, p.Suggested)
}

// DedupePhrases concatenates the lists and drops repeats, keeping the
// first occurrence of each phrase.
func DedupePhrases(lists ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, list := range lists {
		for _, phrase := range list {
			if seen[phrase] {
				continue
			}
			seen[phrase] = true
			out = append(out, phrase)
		}
	}
	return out
}
