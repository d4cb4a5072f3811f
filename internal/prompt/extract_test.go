package prompt

import (
	"strings"
	"testing"
)

func TestBuildExtractionPrompt(t *testing.T) {
	p := BuildExtractionPrompt(ExtractionPromptVars{MaxWords: 200})

	if !strings.Contains(p, "At most 200 words") {
		t.Error("prompt should carry the word cap")
	}
	for _, token := range []string{"lemma", "strict JSON", `{"add":`} {
		if !strings.Contains(p, token) {
			t.Errorf("prompt missing %q", token)
		}
	}
	// The prompt has no leftover format verbs.
	if strings.Contains(p, "%d") || strings.Contains(p, "%!") {
		t.Errorf("prompt has an unexpanded verb: %s", p)
	}
}
