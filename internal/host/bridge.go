package host

import (
	"context"
	"sync"

	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/domain"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Translator is the pipeline surface the bridge drives.
type Translator interface {
	Translate(ctx context.Context, q domain.Query) domain.Completion
}

// Bridge glues the websocket feed to the pipeline: each query envelope is
// dispatched on a bounded worker pool, each cancel envelope aborts its
// in-flight invocation, and every query gets at most one completion delivered.
type Bridge struct {
	ws         *WebSocket
	client     *Client
	translator Translator
	logger     *zap.Logger

	workers *pool.Pool

	mu       sync.Mutex
	inflight map[string]context.CancelFunc
}

func NewBridge(ws *WebSocket, client *Client, translator Translator, logger *zap.Logger) *Bridge {
	return &Bridge{
		ws:         ws,
		client:     client,
		translator: translator,
		logger:     logger,
		workers:    pool.New().WithMaxGoroutines(constants.BridgeConfig.MaxConcurrentQueries),
		inflight:   make(map[string]context.CancelFunc),
	}
}

// Start connects to the bridge and serves until ctx is cancelled.
func (b *Bridge) Start(ctx context.Context) error {
	b.ws.OnEnvelope(func(env *QueryEnvelope) {
		b.handleEnvelope(ctx, env)
	})
	return b.ws.Connect(ctx)
}

func (b *Bridge) handleEnvelope(ctx context.Context, env *QueryEnvelope) {
	switch env.Type {
	case EnvelopeCancel:
		b.cancelQuery(env.ID)
	case EnvelopeQuery, "":
		// Older bridge builds omit the type field on queries.
		if env.ID == "" {
			b.logger.Warn("Dropping query envelope without an id")
			return
		}
		b.dispatchQuery(ctx, env)
	default:
		b.logger.Debug("Ignoring unknown envelope type", zap.String("type", env.Type))
	}
}

func (b *Bridge) dispatchQuery(ctx context.Context, env *QueryEnvelope) {
	queryCtx, cancel := context.WithCancel(ctx)

	b.mu.Lock()
	if _, dup := b.inflight[env.ID]; dup {
		b.mu.Unlock()
		cancel()
		b.logger.Warn("Duplicate query id, ignoring", zap.String("query_id", env.ID))
		return
	}
	b.inflight[env.ID] = cancel
	b.mu.Unlock()

	query := domain.Query{ID: env.ID, Text: env.Text, DetectFrom: env.DetectFrom}

	b.workers.Go(func() {
		defer cancel()
		comp := b.translator.Translate(queryCtx, query)

		// Only the goroutine that removes the inflight entry may deliver,
		// so a completion goes out at most once per query.
		b.mu.Lock()
		_, owned := b.inflight[env.ID]
		delete(b.inflight, env.ID)
		b.mu.Unlock()
		if !owned {
			return
		}

		if queryCtx.Err() != nil {
			b.logger.Info("Query cancelled, completion suppressed", zap.String("query_id", env.ID))
			return
		}
		if err := b.client.Complete(ctx, comp); err != nil {
			b.logger.Error("Completion delivery failed", zap.String("query_id", env.ID), zap.Error(err))
		}
	})
}

func (b *Bridge) cancelQuery(id string) {
	b.mu.Lock()
	cancel, ok := b.inflight[id]
	b.mu.Unlock()
	if !ok {
		b.logger.Debug("Cancel for unknown query", zap.String("query_id", id))
		return
	}
	b.logger.Info("Cancelling in-flight query", zap.String("query_id", id))
	cancel()
}

// Shutdown stops accepting frames and waits for in-flight invocations.
func (b *Bridge) Shutdown(ctx context.Context) error {
	b.ws.Close()

	done := make(chan struct{})
	go func() {
		b.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
