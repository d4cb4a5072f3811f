package host

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// EnvelopeCallback receives every decoded inbound envelope.
type EnvelopeCallback func(env *QueryEnvelope)

// WebSocket maintains the bridge connection and fans inbound envelopes out to
// the registered callback. Reconnection is bounded; after the attempt budget
// is spent the state goes to FAILED and stays there.
type WebSocket struct {
	wsURL                string
	conn                 *websocket.Conn
	state                ConnectionState
	stateMu              sync.RWMutex
	callback             EnvelopeCallback
	callbackMu           sync.RWMutex
	reconnectAttempts    int
	maxReconnectAttempts int
	reconnectDelay       time.Duration
	handshakeTimeout     time.Duration
	logger               *zap.Logger
	stopCh               chan struct{}
	stopOnce             sync.Once
	listenerWg           sync.WaitGroup
}

func NewWebSocket(wsURL string, maxReconnectAttempts int, reconnectDelay, handshakeTimeout time.Duration, logger *zap.Logger) *WebSocket {
	return &WebSocket{
		wsURL:                wsURL,
		state:                StateDisconnected,
		maxReconnectAttempts: maxReconnectAttempts,
		reconnectDelay:       reconnectDelay,
		handshakeTimeout:     handshakeTimeout,
		logger:               logger,
		stopCh:               make(chan struct{}),
	}
}

// OnEnvelope registers the single inbound handler. Must be called before
// Connect.
func (ws *WebSocket) OnEnvelope(cb EnvelopeCallback) {
	ws.callbackMu.Lock()
	ws.callback = cb
	ws.callbackMu.Unlock()
}

func (ws *WebSocket) Connect(ctx context.Context) error {
	ws.stateMu.Lock()
	if ws.state == StateConnected || ws.state == StateConnecting {
		ws.stateMu.Unlock()
		ws.logger.Warn("WebSocket already connected or connecting")
		return nil
	}
	ws.stateMu.Unlock()

	ws.setState(StateConnecting)

	dialer := websocket.Dialer{HandshakeTimeout: ws.handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, ws.wsURL, nil)
	if err != nil {
		ws.logger.Error("Failed to connect to bridge", zap.Error(err))
		ws.setState(StateFailed)
		ws.scheduleReconnect(ctx)
		return err
	}

	ws.conn = conn
	ws.setState(StateConnected)
	ws.reconnectAttempts = 0

	ws.logger.Info("Bridge websocket connected", zap.String("url", ws.wsURL))

	ws.listenerWg.Add(1)
	go ws.listen(ctx)

	return nil
}

func (ws *WebSocket) listen(ctx context.Context) {
	defer ws.listenerWg.Done()
	defer ws.logger.Info("Bridge listener stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ws.stopCh:
			return
		default:
			if ws.conn == nil {
				return
			}

			_, frame, err := ws.conn.ReadMessage()
			if err != nil {
				select {
				case <-ws.stopCh:
					return
				default:
				}
				ws.logger.Error("Bridge read error", zap.Error(err))
				ws.setState(StateDisconnected)
				ws.scheduleReconnect(ctx)
				return
			}

			ws.handleFrame(frame)
		}
	}
}

func (ws *WebSocket) handleFrame(frame []byte) {
	var env QueryEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		preview := string(frame)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		ws.logger.Error("Failed to decode bridge frame",
			zap.Error(err),
			zap.String("frame", preview),
		)
		return
	}

	ws.callbackMu.RLock()
	cb := ws.callback
	ws.callbackMu.RUnlock()
	if cb != nil {
		cb(&env)
	}
}

func (ws *WebSocket) scheduleReconnect(ctx context.Context) {
	ws.reconnectAttempts++

	if ws.reconnectAttempts > ws.maxReconnectAttempts {
		ws.logger.Error("Max reconnect attempts reached",
			zap.Int("attempts", ws.reconnectAttempts),
		)
		ws.setState(StateFailed)
		return
	}

	ws.setState(StateReconnecting)
	ws.logger.Info("Scheduling bridge reconnect",
		zap.Int("attempt", ws.reconnectAttempts),
		zap.Int("max", ws.maxReconnectAttempts),
		zap.Duration("delay", ws.reconnectDelay),
	)

	go func() {
		select {
		case <-time.After(ws.reconnectDelay):
			if err := ws.Connect(ctx); err != nil {
				ws.logger.Error("Bridge reconnect failed", zap.Error(err))
			}
		case <-ctx.Done():
		case <-ws.stopCh:
		}
	}()
}

func (ws *WebSocket) State() ConnectionState {
	ws.stateMu.RLock()
	defer ws.stateMu.RUnlock()
	return ws.state
}

func (ws *WebSocket) setState(state ConnectionState) {
	ws.stateMu.Lock()
	ws.state = state
	ws.stateMu.Unlock()
}

// Close stops the listener and closes the connection. Idempotent.
func (ws *WebSocket) Close() {
	ws.stopOnce.Do(func() {
		close(ws.stopCh)
		if ws.conn != nil {
			_ = ws.conn.Close()
		}
		ws.listenerWg.Wait()
		ws.setState(StateDisconnected)
	})
}
