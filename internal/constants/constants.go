package constants

import "time"

// TimeoutDivisor converts the word_check_timeout_ms budget into the whole-second
// transport timeout: seconds = ceil(ms / TimeoutDivisor), floor 1. The legacy
// value is 50000, so the default 50000ms budget yields a 1 second transport
// timeout. Kept as-is and pinned by tests; change deliberately or not at all.
const TimeoutDivisor = 50000

var ExtractorConfig = struct {
	DefaultTimeoutMs int
	DefaultMaxWords  int
	MaxTokens        int
	CanonicalHost    string
}{
	DefaultTimeoutMs: 50000,
	DefaultMaxWords:  200,
	MaxTokens:        1024,
	CanonicalHost:    "ark.cn-beijing.volces.com",
}

// LegacyHosts are internal/legacy gateway hosts rewritten to CanonicalHost.
var LegacyHosts = struct {
	Exact    []string
	Suffixes []string
}{
	Exact:    []string{"maas-api.ml-platform-cn-beijing.volces.com"},
	Suffixes: []string{".bytedance.net"},
}

var DictConfig = struct {
	YoudaoAddURL     string
	EudicWordsURL    string
	EudicCategoryURL string
	ShanbayUploadURL string
	ShanbayBusiness  int
}{
	YoudaoAddURL:     "https://dict.youdao.com/wordbook/webapi/v2/ajax/add",
	EudicWordsURL:    "https://api.frdic.com/api/open/v1/studylist/words",
	EudicCategoryURL: "https://api.frdic.com/api/open/v1/studylist/category?language=en",
	ShanbayUploadURL: "https://apiv3.shanbay.com/wordscollection/words_bulk_upload",
	ShanbayBusiness:  6,
}

var ReportLimits = struct {
	PreviewWords  int
	FailedDetails int
	RawBodyChars  int
}{
	PreviewWords:  12,
	FailedDetails: 5,
	RawBodyChars:  600,
}

var WordLimits = struct {
	MaxLength int
}{
	MaxLength: 64,
}

var WebSocketConfig = struct {
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
	HandshakeTimeout     time.Duration
}{
	MaxReconnectAttempts: 5,
	ReconnectDelay:       5 * time.Second,
	HandshakeTimeout:     10 * time.Second,
}

var BridgeConfig = struct {
	MaxConcurrentQueries int
	ReplyTimeout         time.Duration
}{
	MaxConcurrentQueries: 8,
	ReplyTimeout:         10 * time.Second,
}
