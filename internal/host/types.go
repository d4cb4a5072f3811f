package host

import "github.com/karu285/wordbook-bot-go/internal/domain"

// Envelope types sent by the host bridge.
const (
	EnvelopeQuery  = "query"
	EnvelopeCancel = "cancel"
)

// QueryEnvelope is one inbound frame from the bridge.
type QueryEnvelope struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Text       string `json:"text"`
	DetectFrom string `json:"detectFrom,omitempty"`
}

// CompletionEnvelope is the reply posted back to the bridge. Exactly one of
// Result or Error is set.
type CompletionEnvelope struct {
	ID     string                `json:"id"`
	Result *domain.ResultPayload `json:"result,omitempty"`
	Error  *domain.ErrorPayload  `json:"error,omitempty"`
}

// ConnectionState mirrors the websocket lifecycle.
type ConnectionState string

const (
	StateConnecting   ConnectionState = "CONNECTING"
	StateConnected    ConnectionState = "CONNECTED"
	StateDisconnected ConnectionState = "DISCONNECTED"
	StateReconnecting ConnectionState = "RECONNECTING"
	StateFailed       ConnectionState = "FAILED"
)

func (s ConnectionState) String() string {
	return string(s)
}
