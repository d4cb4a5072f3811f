package host

import (
	"context"
	"fmt"
	"net/http"

	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/httpx"
	pkgerrors "github.com/karu285/wordbook-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Client posts completions back to the host bridge over HTTP.
type Client struct {
	baseURL string
	doer    httpx.Doer
	logger  *zap.Logger
}

func NewClient(baseURL string, doer httpx.Doer, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		doer:    doer,
		logger:  logger,
	}
}

// Complete delivers one completion for a query. The bridge enforces at-most-
// once semantics on its side too, but the caller must not invoke this twice
// for the same query id.
func (c *Client) Complete(ctx context.Context, comp domain.Completion) error {
	env := CompletionEnvelope{
		ID:     comp.QueryID,
		Result: comp.Result,
		Error:  comp.Error,
	}

	resp := c.doer.Do(ctx, httpx.Request{
		Method:     http.MethodPost,
		URL:        c.baseURL + "/completion",
		Body:       env,
		TimeoutSec: int(constants.BridgeConfig.ReplyTimeout.Seconds()),
	})
	if resp.Err != nil {
		c.logger.Error("Failed to deliver completion",
			zap.String("query_id", comp.QueryID),
			zap.Error(resp.Err),
		)
		return pkgerrors.NewHostError("completion delivery failed", map[string]any{
			"query_id": comp.QueryID,
		}).WithCause(resp.Err)
	}
	if !resp.OK() {
		return pkgerrors.NewHostError(
			fmt.Sprintf("bridge rejected completion: %d", resp.StatusCode),
			map[string]any{"query_id": comp.QueryID, "body": string(resp.Body)},
		)
	}
	return nil
}

// Ping checks bridge reachability.
func (c *Client) Ping(ctx context.Context) bool {
	resp := c.doer.Do(ctx, httpx.Request{
		Method:     http.MethodGet,
		URL:        c.baseURL + "/config",
		TimeoutSec: int(constants.BridgeConfig.ReplyTimeout.Seconds()),
	})
	return resp.OK()
}
