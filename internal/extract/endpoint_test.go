package extract

import "testing"

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://ark.cn-beijing.volces.com/api/v3", "https://ark.cn-beijing.volces.com/api/v3"},
		{"https://ark.cn-beijing.volces.com/api/v3/", "https://ark.cn-beijing.volces.com/api/v3"},
		{"https://ark.cn-beijing.volces.com/api/v3/bots", "https://ark.cn-beijing.volces.com/api/v3/bots"},
		{"https://ark.cn-beijing.volces.com/api", "https://ark.cn-beijing.volces.com/api/v3"},
		{"https://ark.cn-beijing.volces.com", "https://ark.cn-beijing.volces.com/api/v3"},
		{"https://ark.cn-beijing.volces.com///", "https://ark.cn-beijing.volces.com/api/v3"},
		{"https://maas-api.ml-platform-cn-beijing.volces.com", "https://ark.cn-beijing.volces.com/api/v3"},
		{"https://ark.gateway.bytedance.net/api", "https://ark.cn-beijing.volces.com/api/v3"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := ResolveEndpoint(tt.raw); got != tt.want {
			t.Errorf("ResolveEndpoint(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestChatCompletionsPath(t *testing.T) {
	if got := ChatCompletionsPath("doubao-pro-32k"); got != "/chat/completions" {
		t.Errorf("standard model path = %q", got)
	}
	if got := ChatCompletionsPath("bot-20240101-abcdef"); got != "/bots/chat/completions" {
		t.Errorf("bot model path = %q", got)
	}
}
