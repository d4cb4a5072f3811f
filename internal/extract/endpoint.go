package extract

import (
	"net/url"
	"strings"

	"github.com/karu285/wordbook-bot-go/internal/constants"
)

// ResolveEndpoint normalizes a configured completion base endpoint:
// trailing slashes are stripped, legacy/internal gateway hosts are rewritten to
// the canonical public host, and the path is completed to end in /api/v3.
func ResolveEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	for strings.HasSuffix(endpoint, "/") {
		endpoint = strings.TrimSuffix(endpoint, "/")
	}
	if endpoint == "" {
		return ""
	}

	if u, err := url.Parse(endpoint); err == nil && u.Host != "" && isLegacyHost(u.Hostname()) {
		u.Host = constants.ExtractorConfig.CanonicalHost
		endpoint = strings.TrimSuffix(u.String(), "/")
	}

	switch {
	case strings.HasSuffix(endpoint, "/api/v3"), strings.Contains(endpoint, "/api/v3/"):
		// already canonical
	case strings.HasSuffix(endpoint, "/api"):
		endpoint += "/v3"
	default:
		endpoint += "/api/v3"
	}
	return endpoint
}

// ChatCompletionsPath picks the completion path for a model. Bot-prefixed
// models go through the bot-chat gateway.
func ChatCompletionsPath(model string) string {
	if strings.HasPrefix(model, "bot-") {
		return "/bots/chat/completions"
	}
	return "/chat/completions"
}

func isLegacyHost(host string) bool {
	for _, exact := range constants.LegacyHosts.Exact {
		if host == exact {
			return true
		}
	}
	for _, suffix := range constants.LegacyHosts.Suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
