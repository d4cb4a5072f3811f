package host

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/karu285/wordbook-bot-go/internal/httpx"
	"go.uber.org/zap"
)

type recordingDoer struct {
	mu       sync.Mutex
	requests []httpx.Request
}

func (d *recordingDoer) Do(_ context.Context, req httpx.Request) *httpx.Response {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = append(d.requests, req)
	return &httpx.Response{StatusCode: 200}
}

func (d *recordingDoer) completions() []CompletionEnvelope {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]CompletionEnvelope, 0, len(d.requests))
	for _, r := range d.requests {
		if !strings.HasSuffix(r.URL, "/completion") {
			continue
		}
		raw, _ := json.Marshal(r.Body)
		var env CompletionEnvelope
		_ = json.Unmarshal(raw, &env)
		out = append(out, env)
	}
	return out
}

type blockingTranslator struct {
	release chan struct{}
}

func (t *blockingTranslator) Translate(ctx context.Context, q domain.Query) domain.Completion {
	if t.release != nil {
		select {
		case <-t.release:
		case <-ctx.Done():
			return domain.Completion{QueryID: q.ID, Error: &domain.ErrorPayload{Type: "canceled", Message: "cancelled"}}
		}
	}
	return domain.Completion{QueryID: q.ID, Result: &domain.ResultPayload{Lines: []string{"ok: " + q.Text}}}
}

func newTestBridge(tr Translator, doer *recordingDoer) *Bridge {
	logger := zap.NewNop()
	ws := NewWebSocket("ws://unused", 1, time.Millisecond, time.Second, logger)
	client := NewClient("http://bridge", doer, logger)
	return NewBridge(ws, client, tr, logger)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestBridgeDeliversExactlyOneCompletion(t *testing.T) {
	doer := &recordingDoer{}
	b := newTestBridge(&blockingTranslator{}, doer)

	b.handleEnvelope(context.Background(), &QueryEnvelope{Type: EnvelopeQuery, ID: "q1", Text: "hello"})
	waitFor(t, func() bool { return len(doer.completions()) == 1 })

	comps := doer.completions()
	if comps[0].ID != "q1" || comps[0].Result == nil {
		t.Errorf("completion = %+v", comps[0])
	}
}

func TestBridgeDuplicateQueryIgnored(t *testing.T) {
	doer := &recordingDoer{}
	tr := &blockingTranslator{release: make(chan struct{})}
	b := newTestBridge(tr, doer)

	ctx := context.Background()
	b.handleEnvelope(ctx, &QueryEnvelope{Type: EnvelopeQuery, ID: "q1", Text: "first"})
	b.handleEnvelope(ctx, &QueryEnvelope{Type: EnvelopeQuery, ID: "q1", Text: "second"})
	close(tr.release)

	waitFor(t, func() bool { return len(doer.completions()) >= 1 })
	time.Sleep(50 * time.Millisecond)
	if n := len(doer.completions()); n != 1 {
		t.Errorf("completions = %d, want exactly 1", n)
	}
}

func TestBridgeCancelSuppressesCompletion(t *testing.T) {
	doer := &recordingDoer{}
	tr := &blockingTranslator{release: make(chan struct{})}
	b := newTestBridge(tr, doer)

	ctx := context.Background()
	b.handleEnvelope(ctx, &QueryEnvelope{Type: EnvelopeQuery, ID: "q1", Text: "slow"})
	b.handleEnvelope(ctx, &QueryEnvelope{Type: EnvelopeCancel, ID: "q1"})

	waitFor(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.inflight) == 0
	})
	time.Sleep(50 * time.Millisecond)
	if n := len(doer.completions()); n != 0 {
		t.Errorf("cancelled query must not deliver a completion, got %d", n)
	}
}

func TestBridgeDropsQueryWithoutID(t *testing.T) {
	doer := &recordingDoer{}
	b := newTestBridge(&blockingTranslator{}, doer)

	b.handleEnvelope(context.Background(), &QueryEnvelope{Type: EnvelopeQuery, Text: "orphan"})
	time.Sleep(50 * time.Millisecond)
	if n := len(doer.completions()); n != 0 {
		t.Errorf("query without id must be dropped, got %d completions", n)
	}
}
