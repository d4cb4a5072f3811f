package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/karu285/wordbook-bot-go/internal/constants"
	"go.uber.org/zap"
)

// Request describes one outbound HTTP call. Body is JSON-encoded when non-nil.
// TimeoutSec bounds the whole call; zero means the context alone governs it.
type Request struct {
	Method     string
	URL        string
	Headers    map[string]string
	Body       any
	TimeoutSec int
}

// Response is always produced, even when the transport failed: failures set Err
// and leave StatusCode zero. Callers can branch without handling a second error
// channel, so nothing downstream can leak an unhandled failure.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
	Duration   time.Duration
	Err        error
}

// OK reports a settled 2xx response.
func (r *Response) OK() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Doer is the single transport primitive the pipeline depends on.
type Doer interface {
	Do(ctx context.Context, req Request) *Response
}

type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Do executes the request. It never returns an error and never panics; every
// failure mode resolves into an error-shaped Response.
func (c *Client) Do(ctx context.Context, req Request) (res *Response) {
	res = &Response{}
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			res.StatusCode = 0
			res.Err = fmt.Errorf("transport panic: %v", r)
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	if req.TimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutSec)*time.Second)
		defer cancel()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			res.Err = fmt.Errorf("marshal request body: %w", err)
			return res
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		res.Err = fmt.Errorf("build request: %w", err)
		return res
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("Transport call failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Error(err),
		)
		res.Err = err
		return res
	}
	defer httpResp.Body.Close()

	res.StatusCode = httpResp.StatusCode
	res.Header = httpResp.Header

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read response body: %w", err)
		return res
	}
	res.Body = body
	return res
}

// TransportTimeoutSec derives the whole-second transport timeout from the
// millisecond budget: ceil(ms / constants.TimeoutDivisor), never below 1.
func TransportTimeoutSec(timeoutMs int) int {
	if timeoutMs <= 0 {
		return 1
	}
	secs := (timeoutMs + constants.TimeoutDivisor - 1) / constants.TimeoutDivisor
	if secs < 1 {
		return 1
	}
	return secs
}
