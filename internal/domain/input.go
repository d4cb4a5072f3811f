package domain

// InputKind is the syntactic class of raw user text.
type InputKind int

const (
	InputInvalid InputKind = iota
	InputSingleWord
	InputMultiWord
)

func (k InputKind) String() string {
	switch k {
	case InputSingleWord:
		return "single_word"
	case InputMultiWord:
		return "multi_word"
	default:
		return "invalid"
	}
}

// ClassifiedInput is the classifier's verdict on raw text. NormalizedText is
// non-empty for every kind except InputInvalid.
type ClassifiedInput struct {
	Kind           InputKind
	NormalizedText string
}
