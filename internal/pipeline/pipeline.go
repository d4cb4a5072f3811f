package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/karu285/wordbook-bot-go/internal/adapter"
	"github.com/karu285/wordbook-bot-go/internal/classify"
	"github.com/karu285/wordbook-bot-go/internal/config"
	"github.com/karu285/wordbook-bot-go/internal/dict"
	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/extract"
	"github.com/karu285/wordbook-bot-go/internal/httpx"
	"go.uber.org/zap"
)

// Pipeline runs the full extraction-and-ingestion flow for one query at a
// time. It holds no per-invocation state; every call is self-contained and
// nothing survives past the returned completion.
type Pipeline struct {
	cfg       *config.Config
	client    httpx.Doer
	extractor *extract.Extractor
	formatter *adapter.ResponseFormatter
	logger    *zap.Logger
}

func New(cfg *config.Config, client httpx.Doer, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		client:    client,
		extractor: extract.NewExtractor(client, logger),
		formatter: adapter.NewResponseFormatter(),
		logger:    logger,
	}
}

// Translate processes one query and always returns exactly one completion.
// Panics are recovered into a generic error payload; an unfinished invocation
// would otherwise leave the host UI hanging.
//
// Ordering guarantees: extraction fully settles before any write is issued,
// and a context cancelled during extraction suppresses all writes.
func (p *Pipeline) Translate(ctx context.Context, q domain.Query) (comp domain.Completion) {
	log := p.logger.With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("query_id", q.ID),
	)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Pipeline panicked", zap.Any("panic", r))
			comp = domain.Completion{QueryID: q.ID, Error: p.formatter.FormatUnknownError(r)}
		}
	}()

	input := classify.Classify(q.Text)
	log.Info("Input classified",
		zap.String("kind", input.Kind.String()),
		zap.Int("text_len", len(q.Text)),
	)
	if input.Kind == domain.InputInvalid {
		return domain.Completion{QueryID: q.ID, Result: p.formatter.FormatSkipped()}
	}

	// SingleWord and MultiWord take the same path on purpose: even one word
	// goes through model-side lemma normalization and ranking.
	outcome := p.extractor.Extract(ctx, input.NormalizedText, extract.Options{
		APIKey:       p.cfg.Volcano.APIKey,
		Endpoint:     p.cfg.Volcano.Endpoint,
		Model:        p.cfg.Volcano.Model,
		TimeoutMs:    p.cfg.Words.CheckTimeoutMs,
		MaxWords:     p.cfg.Words.MaxAdd,
		SystemPrompt: p.cfg.Words.SystemPrompt,
	})

	if !outcome.OK {
		// Extraction failures surface verbatim. Write failures mask, this one
		// never does.
		return domain.Completion{QueryID: q.ID, Error: p.formatter.FormatExtractionError(outcome)}
	}
	if ctx.Err() != nil {
		log.Info("Invocation cancelled after extraction, no writes issued")
		return domain.Completion{QueryID: q.ID, Error: &domain.ErrorPayload{Type: "canceled", Message: "invocation cancelled"}}
	}
	if len(outcome.Words) == 0 {
		return domain.Completion{QueryID: q.ID, Result: p.formatter.FormatEmptyExtraction()}
	}

	provider, err := dict.NewProvider(p.cfg.Target(), p.client, p.cfg.Words.CheckTimeoutMs, log)
	if err != nil {
		return domain.Completion{QueryID: q.ID, Error: p.formatter.FormatParamError(err)}
	}

	report := dict.Write(ctx, provider, outcome.Words, log)
	if len(report.Success) == 0 && len(report.Failed) > 0 {
		return domain.Completion{
			QueryID: q.ID,
			Error:   p.formatter.FormatWriteError(provider.Name(), report.Failed[0].Reason),
		}
	}

	return domain.Completion{
		QueryID: q.ID,
		Result:  p.formatter.FormatResult(outcome.Words, report, provider.Name()),
	}
}
