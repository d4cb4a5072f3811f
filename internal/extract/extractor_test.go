package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/karu285/wordbook-bot-go/internal/httpx"
	"go.uber.org/zap"
)

// fakeDoer scripts transport responses and records every request.
type fakeDoer struct {
	requests []httpx.Request
	response *httpx.Response
}

func (f *fakeDoer) Do(_ context.Context, req httpx.Request) *httpx.Response {
	f.requests = append(f.requests, req)
	if f.response != nil {
		return f.response
	}
	return &httpx.Response{Err: fmt.Errorf("no scripted response")}
}

func chatBody(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"id": "req-abc",
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return b
}

func validOpts() Options {
	return Options{
		APIKey:    "key",
		Endpoint:  "https://ark.cn-beijing.volces.com",
		Model:     "doubao-pro-32k",
		TimeoutMs: 50000,
		MaxWords:  200,
	}
}

func TestExtractMissingConfigSkipsNetwork(t *testing.T) {
	doer := &fakeDoer{}
	e := NewExtractor(doer, zap.NewNop())

	for _, opts := range []Options{
		{Endpoint: "https://x", Model: "m"},
		{APIKey: "k", Model: "m"},
		{APIKey: "k", Endpoint: "https://x"},
	} {
		out := e.Extract(context.Background(), "hello", opts)
		if out.OK {
			t.Error("incomplete config must not be OK")
		}
		if out.StatusCode != 0 {
			t.Errorf("StatusCode = %d, want 0", out.StatusCode)
		}
		if len(out.Words) != 0 {
			t.Errorf("Words = %v, want empty", out.Words)
		}
	}
	if len(doer.requests) != 0 {
		t.Fatalf("no network call may be attempted, got %d", len(doer.requests))
	}
}

func TestExtractSuccess(t *testing.T) {
	doer := &fakeDoer{response: &httpx.Response{
		StatusCode: 200,
		Body:       chatBody(`["serendipity", "Paris", "serendipity", "the quick", "ubiquitous"]`),
		Duration:   120 * time.Millisecond,
	}}
	e := NewExtractor(doer, zap.NewNop())

	out := e.Extract(context.Background(), "some text", validOpts())
	if !out.OK {
		t.Fatalf("expected OK outcome, got error %q", out.ErrorMessage)
	}
	want := []string{"serendipity", "Paris", "ubiquitous"}
	if !reflect.DeepEqual(out.Words, want) {
		t.Errorf("Words = %v, want %v", out.Words, want)
	}
	if out.RequestID != "req-abc" {
		t.Errorf("RequestID = %q", out.RequestID)
	}
	if out.TimingMs != 120 {
		t.Errorf("TimingMs = %d", out.TimingMs)
	}

	req := doer.requests[0]
	if req.Method != http.MethodPost {
		t.Errorf("Method = %s", req.Method)
	}
	if req.URL != "https://ark.cn-beijing.volces.com/api/v3/chat/completions" {
		t.Errorf("URL = %s", req.URL)
	}
	if req.Headers["Authorization"] != "Bearer key" {
		t.Errorf("auth header = %q", req.Headers["Authorization"])
	}
	if req.TimeoutSec != 1 {
		t.Errorf("TimeoutSec = %d, want 1 for the default budget", req.TimeoutSec)
	}

	body, ok := req.Body.(map[string]any)
	if !ok {
		t.Fatalf("body type %T", req.Body)
	}
	if body["temperature"] != 0 || body["n"] != 1 || body["max_tokens"] != 1024 {
		t.Errorf("unexpected sampling params in body: %v", body)
	}
	if thinking, _ := body["thinking"].(map[string]string); thinking["type"] != "disabled" {
		t.Errorf("thinking mode = %v", body["thinking"])
	}
}

func TestExtractBotModelUsesBotPath(t *testing.T) {
	doer := &fakeDoer{response: &httpx.Response{StatusCode: 200, Body: chatBody(`[]`)}}
	e := NewExtractor(doer, zap.NewNop())
	opts := validOpts()
	opts.Model = "bot-20240101-abc"

	out := e.Extract(context.Background(), "text", opts)
	if !out.OK {
		t.Fatalf("unexpected failure: %s", out.ErrorMessage)
	}
	if got := doer.requests[0].URL; !strings.HasSuffix(got, "/api/v3/bots/chat/completions") {
		t.Errorf("URL = %s", got)
	}
}

func TestExtractCapsAndRevalidates(t *testing.T) {
	candidates := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		candidates = append(candidates, fmt.Sprintf("word%c", 'a'+i%26))
	}
	raw, _ := json.Marshal(candidates)

	doer := &fakeDoer{response: &httpx.Response{StatusCode: 200, Body: chatBody(string(raw))}}
	e := NewExtractor(doer, zap.NewNop())
	opts := validOpts()
	opts.MaxWords = 5

	out := e.Extract(context.Background(), "text", opts)
	if len(out.Words) != 5 {
		t.Fatalf("len(Words) = %d, want cap 5", len(out.Words))
	}
}

func TestExtractNonJSONOutputFallsBackToTokenizer(t *testing.T) {
	doer := &fakeDoer{response: &httpx.Response{
		StatusCode: 200,
		Body:       chatBody("Sure! The words are: serendipity, ubiquitous and serendipity."),
	}}
	e := NewExtractor(doer, zap.NewNop())

	out := e.Extract(context.Background(), "text", validOpts())
	if !out.OK {
		t.Fatalf("2xx with prose body must stay OK")
	}
	joined := strings.Join(out.Words, " ")
	if !strings.Contains(joined, "serendipity") || !strings.Contains(joined, "ubiquitous") {
		t.Errorf("tokenizer fallback missing words: %v", out.Words)
	}
	count := 0
	for _, w := range out.Words {
		if w == "serendipity" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("dedupe failed: %v", out.Words)
	}
}

func TestExtractEmptyWordsOn2xxIsOK(t *testing.T) {
	doer := &fakeDoer{response: &httpx.Response{StatusCode: 200, Body: chatBody(`[]`)}}
	e := NewExtractor(doer, zap.NewNop())

	out := e.Extract(context.Background(), "text", validOpts())
	if !out.OK {
		t.Error("empty-but-successful extraction must be OK")
	}
	if len(out.Words) != 0 {
		t.Errorf("Words = %v", out.Words)
	}
}

func TestExtractTransportFailure(t *testing.T) {
	doer := &fakeDoer{response: &httpx.Response{Err: fmt.Errorf("connection refused")}}
	e := NewExtractor(doer, zap.NewNop())

	out := e.Extract(context.Background(), "text", validOpts())
	if out.OK {
		t.Error("transport failure must not be OK")
	}
	if out.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", out.StatusCode)
	}
	if out.ErrorMessage == "" {
		t.Error("ErrorMessage must be populated")
	}
	if out.Endpoint == "" || out.RequestURL == "" {
		t.Error("outcome must keep the resolved endpoint for diagnostics")
	}
}

func TestExtractNon2xx(t *testing.T) {
	doer := &fakeDoer{response: &httpx.Response{StatusCode: 401, Body: []byte(`{"error":"bad key"}`)}}
	e := NewExtractor(doer, zap.NewNop())

	out := e.Extract(context.Background(), "text", validOpts())
	if out.OK {
		t.Error("401 must not be OK")
	}
	if out.StatusCode != 401 {
		t.Errorf("StatusCode = %d", out.StatusCode)
	}
	if out.RawBody != `{"error":"bad key"}` {
		t.Errorf("RawBody = %q", out.RawBody)
	}
}
