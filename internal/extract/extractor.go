package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/karu285/wordbook-bot-go/internal/classify"
	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/httpx"
	"github.com/karu285/wordbook-bot-go/internal/prompt"
	pkgerrors "github.com/karu285/wordbook-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Options are the per-invocation extraction settings, read once from config.
type Options struct {
	APIKey       string
	Endpoint     string
	Model        string
	TimeoutMs    int
	MaxWords     int
	SystemPrompt string
}

type Extractor struct {
	client httpx.Doer
	logger *zap.Logger
}

func NewExtractor(client httpx.Doer, logger *zap.Logger) *Extractor {
	return &Extractor{client: client, logger: logger}
}

// Extract runs one bounded completion call and returns its outcome. It never
// returns an error: configuration gaps, transport failures and unparseable
// bodies all resolve into the outcome itself. The caller's context aborts the
// in-flight request.
func (e *Extractor) Extract(ctx context.Context, text string, opts Options) *domain.ExtractionOutcome {
	out := &domain.ExtractionOutcome{Model: opts.Model}

	if opts.APIKey == "" || opts.Endpoint == "" || opts.Model == "" {
		out.ErrorMessage = "volcano api key, endpoint or model is not configured"
		e.logger.Warn("Extraction skipped, incomplete configuration")
		return out
	}

	base := ResolveEndpoint(opts.Endpoint)
	out.Endpoint = base
	out.RequestURL = base + ChatCompletionsPath(opts.Model)

	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = constants.ExtractorConfig.DefaultMaxWords
	}
	systemPrompt := opts.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = prompt.BuildExtractionPrompt(prompt.ExtractionPromptVars{MaxWords: maxWords})
	}

	body := map[string]any{
		"model": opts.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": text},
		},
		"thinking":    map[string]string{"type": "disabled"},
		"temperature": 0,
		"max_tokens":  constants.ExtractorConfig.MaxTokens,
		"n":           1,
	}

	resp := e.client.Do(ctx, httpx.Request{
		Method:     http.MethodPost,
		URL:        out.RequestURL,
		Headers:    map[string]string{"Authorization": "Bearer " + opts.APIKey},
		Body:       body,
		TimeoutSec: httpx.TransportTimeoutSec(opts.TimeoutMs),
	})

	out.TimingMs = resp.Duration.Milliseconds()
	out.StatusCode = resp.StatusCode
	out.RawBody = string(resp.Body)
	out.RequestID = requestID(resp)

	if resp.Err != nil {
		out.ErrorMessage = resp.Err.Error()
		e.logger.Warn("Completion call failed",
			zap.String("url", out.RequestURL),
			zap.Int64("took_ms", out.TimingMs),
			zap.Error(resp.Err),
		)
		return out
	}

	out.OK = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !out.OK {
		out.ErrorMessage = fmt.Sprintf("completion endpoint returned %d", resp.StatusCode)
		e.logger.Warn("Completion call rejected",
			zap.String("url", out.RequestURL),
			zap.Error(pkgerrors.NewExtractionError(out.ErrorMessage, resp.StatusCode, map[string]any{
				"request_id": out.RequestID,
			})),
		)
		return out
	}

	modelText := ExtractText(resp.Body)
	candidates, structured := DecodeCandidates(modelText)
	if !structured {
		// Parse failure is recovered locally, over the model's own text.
		candidates = classify.Tokenize(modelText)
		e.logger.Info("Model output was not structured JSON, used local tokenizer",
			zap.Int("candidates", len(candidates)),
		)
	}

	out.Words = sanitizeCandidates(candidates, maxWords)
	e.logger.Info("Extraction finished",
		zap.Int("status", out.StatusCode),
		zap.Int64("took_ms", out.TimingMs),
		zap.Int("words", len(out.Words)),
		zap.String("model", opts.Model),
	)
	return out
}

// sanitizeCandidates trims, re-validates, dedupes (case-insensitive, first
// occurrence wins) and caps the candidate list. Upstream claims about validity
// are ignored; every word must pass the strict predicate on its own.
func sanitizeCandidates(candidates []string, max int) []string {
	seen := make(map[string]struct{}, len(candidates))
	words := make([]string, 0, len(candidates))
	for _, c := range candidates {
		w := strings.TrimSpace(c)
		if w == "" || !classify.IsStrictWord(w) {
			continue
		}
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		words = append(words, w)
		if len(words) >= max {
			break
		}
	}
	return words
}

func requestID(resp *httpx.Response) string {
	if resp.Header != nil {
		if id := resp.Header.Get("X-Request-Id"); id != "" {
			return id
		}
	}
	return ResponseID(resp.Body)
}
