package prompt

import "fmt"

// ExtractionPromptVars holds variables for the vocabulary extraction prompt
type ExtractionPromptVars struct {
	MaxWords int
}

// BuildExtractionPrompt builds the system prompt instructing the model to
// extract and rank learnable vocabulary from arbitrary user text.
func BuildExtractionPrompt(vars ExtractionPromptVars) string {
	return fmt.Sprintf(`You are an English vocabulary extractor for a vocabulary-notebook tool.
Given arbitrary user text (a word, phrase, or sentence), extract the distinct English words worth learning.

## Rules:

1. **Base forms only**: reduce every word to its dictionary form (lemma). "went" -> "go", "studies" -> "study".
2. **Rank by learning value**, best first:
   - CEFR B2-C2 / academic usefulness
   - cross-context utility (useful in many topics)
   - morphological productivity (derivations, compounds)
   - topic relevance of the source text
3. **Exclude**: function words (the, of, and, to...), URLs, numbers, proper nouns that are not well-known, and multi-word phrases.
4. **Casing**: lowercase everything; keep Title Case ONLY for well-known proper nouns and brands (e.g. "Paris", "Google").
5. **At most %d words.**

## Output format:

Return strict JSON only. Either a bare array of strings:
["serendipity", "ubiquitous"]
or an object with add/skip lists:
{"add": ["serendipity", "ubiquitous"], "skip": ["the", "went"]}

No prose. No explanations. No code fences.`,
		vars.MaxWords,
	)
}
