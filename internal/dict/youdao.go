package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/httpx"
	"go.uber.org/zap"
)

// Youdao adds words one by one through the wordbook webapi, authenticated by
// the user's browser cookie.
type Youdao struct {
	client        httpx.Doer
	cookie        string
	timeoutMs     int
	maskTransport bool
	logger        *zap.Logger
}

func NewYoudao(client httpx.Doer, cookie string, timeoutMs int, logger *zap.Logger) *Youdao {
	return &Youdao{
		client:        client,
		cookie:        cookie,
		timeoutMs:     timeoutMs,
		maskTransport: true,
		logger:        logger,
	}
}

func (y *Youdao) Name() string { return domain.ProviderYoudao.String() }

func (y *Youdao) MaskTransportFailures() bool { return y.maskTransport }

func (y *Youdao) WriteWord(ctx context.Context, word string) domain.WriteOutcome {
	addURL := constants.DictConfig.YoudaoAddURL + "?lan=en&word=" + url.QueryEscape(word)

	resp := y.client.Do(ctx, httpx.Request{
		Method:     http.MethodGet,
		URL:        addURL,
		Headers:    map[string]string{"Cookie": y.cookie},
		TimeoutSec: httpx.TransportTimeoutSec(y.timeoutMs),
	})

	if resp.Err != nil {
		y.logger.Warn("Youdao write did not settle", zap.String("word", word), zap.Error(resp.Err))
		return transportMasked(word, y.Name(), y.maskTransport, resp.Err)
	}
	if !resp.OK() {
		return domain.WriteOutcome{
			Word:    word,
			Message: fmt.Sprintf("youdao returned %d, %s", resp.StatusCode, Hint(domain.ProviderYoudao)),
		}
	}

	var body struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return domain.WriteOutcome{
			Word:    word,
			Message: fmt.Sprintf("unexpected youdao response, %s", Hint(domain.ProviderYoudao)),
		}
	}
	if body.Code != 0 {
		return domain.WriteOutcome{
			Word:    word,
			Message: fmt.Sprintf("youdao rejected the word (code %d), %s", body.Code, Hint(domain.ProviderYoudao)),
		}
	}
	return domain.WriteOutcome{Word: word, OK: true, Message: "added"}
}
