package extract

import (
	"encoding/json"
	"strings"
)

// chatResponse is the superset of response encodings seen from the completion
// gateways. Content stays raw because its shape varies per gateway.
type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Content          json.RawMessage `json:"content"`
			ReasoningContent string          `json:"reasoning_content"`
		} `json:"message"`
	} `json:"choices"`
	OutputText string `json:"output_text"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// contentMatcher tries one known response shape; ok means the shape applied
// and produced usable text.
type contentMatcher func(*chatResponse) (text string, ok bool)

// Ordered: plain string content, then text-part arrays, then the
// reasoning_content fallback, then alternate gateways' top-level output_text.
var contentMatchers = []contentMatcher{
	matchStringContent,
	matchPartsContent,
	matchReasoningContent,
	matchOutputText,
}

// ExtractText pulls the model's textual output from a completion response
// body, trying each known shape in order. Unparseable bodies yield "".
func ExtractText(body []byte) string {
	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return ""
	}
	for _, match := range contentMatchers {
		if text, ok := match(&cr); ok {
			return text
		}
	}
	return ""
}

// ResponseID returns the gateway-assigned request id from the body, if any.
func ResponseID(body []byte) string {
	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return ""
	}
	return cr.ID
}

func matchStringContent(cr *chatResponse) (string, bool) {
	if len(cr.Choices) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(cr.Choices[0].Message.Content, &s); err != nil {
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func matchPartsContent(cr *chatResponse) (string, bool) {
	if len(cr.Choices) == 0 {
		return "", false
	}
	var parts []contentPart
	if err := json.Unmarshal(cr.Choices[0].Message.Content, &parts); err != nil {
		return "", false
	}
	var sb strings.Builder
	for _, p := range parts {
		if p.Type == "text" {
			sb.WriteString(p.Text)
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func matchReasoningContent(cr *chatResponse) (string, bool) {
	if len(cr.Choices) == 0 {
		return "", false
	}
	rc := cr.Choices[0].Message.ReasoningContent
	if strings.TrimSpace(rc) == "" {
		return "", false
	}
	return rc, true
}

func matchOutputText(cr *chatResponse) (string, bool) {
	if strings.TrimSpace(cr.OutputText) == "" {
		return "", false
	}
	return cr.OutputText, true
}

// DecodeCandidates parses the model's textual output as the strict JSON the
// prompt demands: a bare string array or an object with an add array. ok is
// false for every other shape, in which case the caller falls back to the
// local tokenizer over this same text.
func DecodeCandidates(text string) (candidates []string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	var arr []string
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil && arr != nil {
		return arr, true
	}

	var obj struct {
		Add []string `json:"add"`
	}
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil && obj.Add != nil {
		return obj.Add, true
	}

	return nil, false
}
