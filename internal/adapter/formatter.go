package adapter

import (
	"fmt"
	"strings"

	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/util"
)

// ResponseFormatter assembles the user-facing completion payloads. Extraction
// failures become verbatim diagnostics; write summaries stay short and human.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

// FormatSkipped is the no-op result for input with no extractable English.
func (f *ResponseFormatter) FormatSkipped() *domain.ResultPayload {
	return &domain.ResultPayload{
		Lines: []string{"No English vocabulary found in the input, nothing was added."},
	}
}

// FormatEmptyExtraction reports a successful extraction that kept no words.
func (f *ResponseFormatter) FormatEmptyExtraction() *domain.ResultPayload {
	return &domain.ResultPayload{
		Lines: []string{"The model found no words worth learning in this text."},
	}
}

// FormatResult builds the one- or two-line success summary.
func (f *ResponseFormatter) FormatResult(words []string, report *domain.BatchReport, providerName string) *domain.ResultPayload {
	preview := util.PreviewList(words, constants.ReportLimits.PreviewWords)
	lines := []string{
		fmt.Sprintf("Extracted %d word(s): %s", len(words), preview),
	}

	if report != nil {
		summary := fmt.Sprintf("%s: %d added, %d failed", providerName, len(report.Success), len(report.Failed))
		if len(report.Failed) > 0 {
			details := make([]string, 0, len(report.Failed))
			for i, fw := range report.Failed {
				if i >= constants.ReportLimits.FailedDetails {
					details = append(details, "...")
					break
				}
				details = append(details, fmt.Sprintf("%s (%s)", fw.Word, fw.Reason))
			}
			summary += " - " + strings.Join(details, "; ")
		}
		lines = append(lines, summary)
	}

	return &domain.ResultPayload{Lines: lines}
}

// FormatExtractionError builds the diagnostic error payload for a failed
// extraction. This path is deliberately not masked: the caller gets the
// status, timing, endpoint and raw body verbatim.
func (f *ResponseFormatter) FormatExtractionError(outcome *domain.ExtractionOutcome) *domain.ErrorPayload {
	var sb strings.Builder
	sb.WriteString("word extraction failed")
	sb.WriteString(fmt.Sprintf(" | status=%d", outcome.StatusCode))
	sb.WriteString(fmt.Sprintf(" | took=%dms", outcome.TimingMs))
	sb.WriteString(fmt.Sprintf(" | endpoint=%s", outcome.Endpoint))
	sb.WriteString(fmt.Sprintf(" | url=%s", outcome.RequestURL))
	sb.WriteString(fmt.Sprintf(" | model=%s", outcome.Model))
	if outcome.RequestID != "" {
		sb.WriteString(fmt.Sprintf(" | request_id=%s", outcome.RequestID))
	}
	message := outcome.ErrorMessage
	if message == "" {
		message = "unknown extraction failure"
	}
	sb.WriteString(fmt.Sprintf(" | error=%s", message))
	if outcome.RawBody != "" {
		sb.WriteString(fmt.Sprintf(" | body=%s", util.TruncateString(outcome.RawBody, constants.ReportLimits.RawBodyChars)))
	}

	return &domain.ErrorPayload{
		Type:    "api",
		Message: sb.String(),
	}
}

// FormatWriteError surfaces an all-words-failed write as a top-level error.
func (f *ResponseFormatter) FormatWriteError(providerName, reason string) *domain.ErrorPayload {
	return &domain.ErrorPayload{
		Type:    "api",
		Message: fmt.Sprintf("%s write failed: %s", providerName, reason),
	}
}

// FormatParamError reports configuration or validation problems.
func (f *ResponseFormatter) FormatParamError(err error) *domain.ErrorPayload {
	return &domain.ErrorPayload{
		Type:    "param",
		Message: err.Error(),
	}
}

// FormatUnknownError converts a recovered panic or stray error into the
// generic payload. Nothing is allowed to escape the pipeline uncaught.
func (f *ResponseFormatter) FormatUnknownError(v any) *domain.ErrorPayload {
	return &domain.ErrorPayload{
		Type:    "unknown",
		Message: fmt.Sprintf("%v", v),
	}
}
