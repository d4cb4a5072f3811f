package classify

import (
	"reflect"
	"strings"
	"testing"

	"github.com/karu285/wordbook-bot-go/internal/domain"
)

func TestIsStrictWord(t *testing.T) {
	valid := []string{
		"a",
		"hello",
		"Hello",
		"mother-in-law",
		"don't",
		"o'clock",
		"HELLO",
	}
	for _, s := range valid {
		if !IsStrictWord(s) {
			t.Errorf("IsStrictWord(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"hello world",
		"hello\tworld",
		"test123",
		"snake_case",
		"你好",
		"ハロー",
		"한국어",
		"test@x.com",
		"http://example.com",
		"https://example.com",
		"www.example.com",
		"ftp://example.com",
		"-hello",
		"hello-",
		"'hello",
		"hello'",
		"a--b",
		"a''b",
		strings.Repeat("a", 65),
	}
	for _, s := range invalid {
		if IsStrictWord(s) {
			t.Errorf("IsStrictWord(%q) = true, want false", s)
		}
	}

	if !IsStrictWord(strings.Repeat("a", 64)) {
		t.Error("64-letter word should be valid")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		kind     domain.InputKind
		normText string
	}{
		{"hello", domain.InputSingleWord, "hello"},
		{"  Hello  ", domain.InputSingleWord, "hello"},
		{"mother-in-law", domain.InputSingleWord, "mother-in-law"},
		{"hello world", domain.InputMultiWord, "hello world"},
		{"Serendipity is a Happy accident.", domain.InputMultiWord, "Serendipity is a Happy accident."},
		{"one,two", domain.InputMultiWord, "one,two"},
		{"half_width", domain.InputMultiWord, "half_width"},
		{"你好", domain.InputInvalid, ""},
		{"12345", domain.InputInvalid, ""},
		{"test@x.com", domain.InputInvalid, ""},
		{"https://example.com/path", domain.InputInvalid, ""},
		{"", domain.InputInvalid, ""},
		{"   ", domain.InputInvalid, ""},
	}

	for _, tt := range tests {
		got := Classify(tt.input)
		if got.Kind != tt.kind {
			t.Errorf("Classify(%q).Kind = %v, want %v", tt.input, got.Kind, tt.kind)
			continue
		}
		if got.NormalizedText != tt.normText {
			t.Errorf("Classify(%q).NormalizedText = %q, want %q", tt.input, got.NormalizedText, tt.normText)
		}
		if got.Kind != domain.InputInvalid && got.NormalizedText == "" {
			t.Errorf("Classify(%q): non-invalid input must have non-empty normalized text", tt.input)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("The QUICK fox; the quick fox jumps! http-ish text, 42 times")
	want := []string{"the", "quick", "fox", "jumps", "http-ish", "text", "times"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	inputs := []string{
		"hello world hello",
		"Serendipity, ubiquitous; don't stop believing",
		"{'add': ['alpha', 'beta']} garbage 123",
		"",
	}
	for _, in := range inputs {
		first := Tokenize(in)
		second := Tokenize(strings.Join(first, " "))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Tokenize not idempotent for %q: %v vs %v", in, first, second)
		}
	}
}

func TestTokenizeDedupePreservesOrder(t *testing.T) {
	got := Tokenize("beta alpha beta gamma alpha")
	want := []string{"beta", "alpha", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}
