package dict

import (
	"context"

	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/httpx"
	pkgerrors "github.com/karu285/wordbook-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Provider writes words into one third-party vocabulary-notebook service.
type Provider interface {
	Name() string
	// MaskTransportFailures reports the provider's failure policy: when true,
	// transport-level write failures (timeout, unreachable) are converted into
	// synthetic successes so a third-party outage never blocks the caller.
	// Structural failures (bad credential, wrong status) are always genuine.
	MaskTransportFailures() bool
	// WriteWord issues one write. Writes always settle; they never error out
	// of band.
	WriteWord(ctx context.Context, word string) domain.WriteOutcome
}

// BatchProvider accepts every word in a single request.
type BatchProvider interface {
	Provider
	WriteWords(ctx context.Context, words []string) []domain.WriteOutcome
}

// Hint returns a provider-specific recovery hint for structural failures.
func Hint(kind domain.ProviderKind) string {
	switch kind {
	case domain.ProviderYoudao:
		return "check that your Youdao cookie has not expired"
	case domain.ProviderEudic:
		return "check your Eudic authorization token"
	case domain.ProviderShanbay:
		return "check that your Shanbay auth_token cookie is valid"
	default:
		return ""
	}
}

// NewProvider builds the provider for a dictionary target.
func NewProvider(target domain.DictionaryTarget, client httpx.Doer, timeoutMs int, logger *zap.Logger) (Provider, error) {
	if target.Credential == "" {
		return nil, pkgerrors.NewConfigError("dictionary credential is not configured", "authorization")
	}
	switch target.Provider {
	case domain.ProviderYoudao:
		return NewYoudao(client, target.Credential, timeoutMs, logger), nil
	case domain.ProviderEudic:
		if target.NotebookID == "" {
			return nil, pkgerrors.NewValidationError("eudic requires a wordbook id", "wordbook_id", target.NotebookID)
		}
		return NewEudic(client, target.Credential, target.NotebookID, timeoutMs, logger), nil
	case domain.ProviderShanbay:
		return NewShanbay(client, target.Credential, timeoutMs, logger), nil
	default:
		return nil, pkgerrors.NewValidationError("unknown dictionary provider", "dict_type", int(target.Provider))
	}
}

// Write dispatches words to the provider using its write strategy and collects
// the aggregated report. Batch providers get exactly one request; everyone
// else is written strictly serially, so outcome order matches ranking order
// and at most one connection to the service is open at a time.
func Write(ctx context.Context, p Provider, words []string, logger *zap.Logger) *domain.BatchReport {
	report := &domain.BatchReport{}
	if len(words) == 0 {
		return report
	}

	var outcomes []domain.WriteOutcome
	if bp, ok := p.(BatchProvider); ok {
		outcomes = bp.WriteWords(ctx, words)
	} else {
		outcomes = make([]domain.WriteOutcome, 0, len(words))
		for _, w := range words {
			outcomes = append(outcomes, p.WriteWord(ctx, w))
		}
	}

	for _, o := range outcomes {
		report.Add(o)
	}
	logger.Info("Dictionary write finished",
		zap.String("provider", p.Name()),
		zap.Int("success", len(report.Success)),
		zap.Int("failed", len(report.Failed)),
	)
	return report
}

// transportMasked settles a transport-level failure according to policy.
func transportMasked(word, providerName string, mask bool, cause error) domain.WriteOutcome {
	if mask {
		return domain.WriteOutcome{
			Word:    word,
			OK:      true,
			Message: providerName + " request did not settle in time, treated as written",
		}
	}
	return domain.WriteOutcome{Word: word, OK: false, Message: cause.Error()}
}
