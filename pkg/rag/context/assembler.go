package context

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"tenglaafi-be/pkg/store"
)

const (
	separator        = "\n---\n"
	truncateLookback = 30
)

// QueryContext is the assembled grounding block handed to the LLM,
// together with the passages that made it in.
type QueryContext struct {
	Text     string
	Passages []store.RetrievedPassage
}

// Assembler formats retrieved passages into a bounded context block.
// Budget and passage cap are counted in runes, not bytes.
type Assembler struct {
	budget     int
	passageCap int
}

func NewAssembler(budget, passageCap int) *Assembler {
	return &Assembler{
		budget:     budget,
		passageCap: passageCap,
	}
}

// Build assembles headers and truncated chunks until the budget is spent.
// Passages are consumed in the order given; a passage that does not fit
// whole is dropped and assembly stops there.
func (a *Assembler) Build(passages []store.RetrievedPassage) QueryContext {
	var (
		parts    []string
		included []store.RetrievedPassage
		used     int
	)

	seen := make(map[uuid.UUID]bool, len(passages))

	for _, p := range passages {
		if seen[p.DocumentId] {
			continue
		}

		body := truncateAtWord(strings.TrimSpace(p.Chunk), a.passageCap)
		if body == "" {
			continue
		}

		header := fmt.Sprintf("Source %d: %s (pertinence: %d%%)", len(included)+1, p.Title, int(p.Similarity*100))
		part := header + "\n" + body

		cost := runeLen(part)
		if len(parts) > 0 {
			cost += runeLen(separator)
		}
		if used+cost > a.budget {
			break
		}

		seen[p.DocumentId] = true
		used += cost
		parts = append(parts, part)

		p.Rank = len(included) + 1
		included = append(included, p)
	}

	return QueryContext{
		Text:     strings.Join(parts, separator),
		Passages: included,
	}
}

func runeLen(s string) int {
	return len([]rune(s))
}

// truncateAtWord cuts s to at most max runes, backing up to the nearest
// word boundary within the lookback window so words are not split.
func truncateAtWord(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := max
	for i := max; i > max-truncateLookback && i > 0; i-- {
		if unicode.IsSpace(runes[i-1]) {
			cut = i - 1
			break
		}
	}

	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace)
}
