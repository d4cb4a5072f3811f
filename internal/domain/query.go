package domain

// Query is a single translate request delivered by the host bridge. Everything
// derived from it lives and dies within one pipeline invocation.
type Query struct {
	ID         string
	Text       string
	DetectFrom string
}

// ResultPayload is the success half of a completion. Lines are human-readable
// paragraphs shown verbatim by the host UI.
type ResultPayload struct {
	Lines []string `json:"toParagraphs"`
}

// ErrorPayload is the failure half of a completion.
type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Completion carries exactly one of Result or Error back to the host. The
// bridge guarantees a query is completed at most once.
type Completion struct {
	QueryID string
	Result  *ResultPayload
	Error   *ErrorPayload
}
