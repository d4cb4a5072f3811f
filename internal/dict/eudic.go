package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/httpx"
	pkgerrors "github.com/karu285/wordbook-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Eudic writes every word in one batched request to the open studylist API.
// The service deduplicates on its side, so resubmitting words is harmless.
type Eudic struct {
	client        httpx.Doer
	token         string
	notebookID    string
	timeoutMs     int
	maskTransport bool
	logger        *zap.Logger
}

// Notebook is one studylist category owned by the user.
type Notebook struct {
	ID       json.Number `json:"id"`
	Language string      `json:"language"`
	Name     string      `json:"name"`
}

func NewEudic(client httpx.Doer, token, notebookID string, timeoutMs int, logger *zap.Logger) *Eudic {
	return &Eudic{
		client:        client,
		token:         token,
		notebookID:    notebookID,
		timeoutMs:     timeoutMs,
		maskTransport: true,
		logger:        logger,
	}
}

func (e *Eudic) Name() string { return domain.ProviderEudic.String() }

func (e *Eudic) MaskTransportFailures() bool { return e.maskTransport }

// WriteWords issues exactly one batch POST regardless of list length.
func (e *Eudic) WriteWords(ctx context.Context, words []string) []domain.WriteOutcome {
	body := map[string]any{
		"category_id": e.notebookID,
		"language":    "en",
		"words":       words,
	}
	resp := e.client.Do(ctx, httpx.Request{
		Method:     http.MethodPost,
		URL:        constants.DictConfig.EudicWordsURL,
		Headers:    map[string]string{"Authorization": e.token},
		Body:       body,
		TimeoutSec: httpx.TransportTimeoutSec(e.timeoutMs),
	})

	outcomes := make([]domain.WriteOutcome, 0, len(words))
	switch {
	case resp.Err != nil:
		e.logger.Warn("Eudic batch write did not settle", zap.Int("words", len(words)), zap.Error(resp.Err))
		for _, w := range words {
			o := transportMasked(w, e.Name(), e.maskTransport, resp.Err)
			if o.OK {
				o.Message = "batch request timed out but treated as written"
			}
			outcomes = append(outcomes, o)
		}
	case resp.StatusCode == http.StatusCreated:
		for _, w := range words {
			outcomes = append(outcomes, domain.WriteOutcome{Word: w, OK: true, Message: "added"})
		}
	default:
		reason := fmt.Sprintf("eudic returned %d, %s", resp.StatusCode, Hint(domain.ProviderEudic))
		for _, w := range words {
			outcomes = append(outcomes, domain.WriteOutcome{Word: w, Message: reason})
		}
	}
	return outcomes
}

// WriteWord uses the legacy single-word body shape. Kept for the serial path
// even though the pipeline prefers WriteWords for this provider.
func (e *Eudic) WriteWord(ctx context.Context, word string) domain.WriteOutcome {
	body := map[string]any{
		"id":       e.notebookID,
		"language": "en",
		"words":    []string{word},
	}
	resp := e.client.Do(ctx, httpx.Request{
		Method:     http.MethodPost,
		URL:        constants.DictConfig.EudicWordsURL,
		Headers:    map[string]string{"Authorization": e.token},
		Body:       body,
		TimeoutSec: httpx.TransportTimeoutSec(e.timeoutMs),
	})

	if resp.Err != nil {
		return transportMasked(word, e.Name(), e.maskTransport, resp.Err)
	}
	if resp.StatusCode != http.StatusCreated {
		return domain.WriteOutcome{
			Word:    word,
			Message: fmt.Sprintf("eudic returned %d, %s", resp.StatusCode, Hint(domain.ProviderEudic)),
		}
	}
	return domain.WriteOutcome{Word: word, OK: true, Message: "added"}
}

// Notebooks fetches the user's studylist categories for notebook selection.
// This is host glue for the setup flow, not part of the write pipeline.
func (e *Eudic) Notebooks(ctx context.Context) ([]Notebook, error) {
	resp := e.client.Do(ctx, httpx.Request{
		Method:     http.MethodGet,
		URL:        constants.DictConfig.EudicCategoryURL,
		Headers:    map[string]string{"Authorization": e.token},
		TimeoutSec: httpx.TransportTimeoutSec(e.timeoutMs),
	})
	if resp.Err != nil {
		return nil, pkgerrors.NewWriteError("eudic category list unreachable", e.Name(), 0).WithCause(resp.Err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.NewWriteError(
			fmt.Sprintf("eudic category list returned %d", resp.StatusCode), e.Name(), resp.StatusCode)
	}

	var body struct {
		Data []Notebook `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, pkgerrors.NewWriteError("eudic category list body is not valid JSON", e.Name(), resp.StatusCode).WithCause(err)
	}
	return body.Data, nil
}
