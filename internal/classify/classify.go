package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/util"
)

var (
	// A word is letters with optional internal hyphens/apostrophes, never
	// leading or trailing. Doubled separators are rejected separately because
	// the character class alone cannot express it.
	wordPattern    = regexp.MustCompile(`^[A-Za-z](?:[A-Za-z'-]*[A-Za-z])?$`)
	wordRunPattern = regexp.MustCompile(`[A-Za-z](?:[A-Za-z'-]*[A-Za-z])?`)
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const multiWordSeparators = ".,!?;:'\"()-_/\\"

// IsStrictWord reports whether s is a single syntactically valid English word.
// The predicate is applied both to raw input and to every candidate the model
// returns; the model is never trusted to have obeyed its own constraints.
func IsStrictWord(s string) bool {
	if s == "" || len([]rune(s)) > constants.WordLimits.MaxLength {
		return false
	}
	if strings.ContainsFunc(s, unicode.IsSpace) {
		return false
	}
	if isURLShaped(s) || emailPattern.MatchString(s) {
		return false
	}
	if containsCJK(s) {
		return false
	}
	if strings.Contains(s, "--") || strings.Contains(s, "''") {
		return false
	}
	return wordPattern.MatchString(s)
}

// Classify decides the syntactic class of raw text. SingleWord is normalized
// to lowercase; MultiWord keeps the original casing so the model sees it.
func Classify(text string) domain.ClassifiedInput {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.ClassifiedInput{Kind: domain.InputInvalid}
	}
	if IsStrictWord(trimmed) {
		return domain.ClassifiedInput{
			Kind:           domain.InputSingleWord,
			NormalizedText: util.Normalize(trimmed),
		}
	}
	// Emails and URLs carry separators but hold no extractable vocabulary.
	if emailPattern.MatchString(trimmed) || isURLShaped(trimmed) {
		return domain.ClassifiedInput{Kind: domain.InputInvalid}
	}
	if strings.ContainsFunc(trimmed, unicode.IsSpace) || strings.ContainsAny(trimmed, multiWordSeparators) {
		return domain.ClassifiedInput{
			Kind:           domain.InputMultiWord,
			NormalizedText: trimmed,
		}
	}
	return domain.ClassifiedInput{Kind: domain.InputInvalid}
}

// Tokenize is the local fallback extractor, used when model output cannot be
// parsed as structured JSON. Pure and order-preserving: maximal word runs,
// lowercased, strict-filtered, deduplicated.
func Tokenize(text string) []string {
	runs := wordRunPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(runs))
	words := make([]string, 0, len(runs))
	for _, run := range runs {
		w := strings.ToLower(run)
		if !IsStrictWord(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

func isURLShaped(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "www.") ||
		strings.Contains(lower, "://")
}

func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) ||
			unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) ||
			unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
