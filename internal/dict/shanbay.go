package dict

import (
	"context"
	"fmt"
	"net/http"

	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/httpx"
	"go.uber.org/zap"
)

// Shanbay uploads words one by one through the words collection endpoint,
// authenticated with the auth_token cookie.
type Shanbay struct {
	client        httpx.Doer
	token         string
	timeoutMs     int
	maskTransport bool
	logger        *zap.Logger
}

func NewShanbay(client httpx.Doer, token string, timeoutMs int, logger *zap.Logger) *Shanbay {
	return &Shanbay{
		client:        client,
		token:         token,
		timeoutMs:     timeoutMs,
		maskTransport: true,
		logger:        logger,
	}
}

func (s *Shanbay) Name() string { return domain.ProviderShanbay.String() }

func (s *Shanbay) MaskTransportFailures() bool { return s.maskTransport }

func (s *Shanbay) WriteWord(ctx context.Context, word string) domain.WriteOutcome {
	body := map[string]any{
		"business_id": constants.DictConfig.ShanbayBusiness,
		"words":       []string{word},
	}
	resp := s.client.Do(ctx, httpx.Request{
		Method:     http.MethodPost,
		URL:        constants.DictConfig.ShanbayUploadURL,
		Headers:    map[string]string{"Cookie": "auth_token=" + s.token},
		Body:       body,
		TimeoutSec: httpx.TransportTimeoutSec(s.timeoutMs),
	})

	if resp.Err != nil {
		s.logger.Warn("Shanbay write did not settle", zap.String("word", word), zap.Error(resp.Err))
		return transportMasked(word, s.Name(), s.maskTransport, resp.Err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.WriteOutcome{
			Word:    word,
			Message: fmt.Sprintf("shanbay returned %d, %s", resp.StatusCode, Hint(domain.ProviderShanbay)),
		}
	}
	return domain.WriteOutcome{Word: word, OK: true, Message: "added"}
}
