package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/domain"
)

// Config is built once at startup and treated as immutable afterwards. Each
// pipeline invocation reads from it but never writes.
type Config struct {
	Host    HostConfig
	Dict    DictConfig
	Volcano VolcanoConfig
	Words   WordsConfig
	Logging LoggingConfig
}

type HostConfig struct {
	BaseURL string
	WSURL   string
}

type DictConfig struct {
	Type          domain.ProviderKind
	Authorization string
	WordbookID    string
	WordOnly      bool // reserved
}

type VolcanoConfig struct {
	APIKey   string
	Endpoint string
	Model    string
}

type WordsConfig struct {
	CheckTimeoutMs int
	MaxAdd         int
	SystemPrompt   string // overrides the built-in extraction prompt when set
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host: HostConfig{
			BaseURL: getEnv("HOST_BASE_URL", "http://localhost:3100"),
			WSURL:   getEnv("HOST_WS_URL", "ws://localhost:3100/ws"),
		},
		Dict: DictConfig{
			Type:          domain.ProviderKind(getEnvInt("DICT_TYPE", int(domain.ProviderYoudao))),
			Authorization: getEnv("AUTHORIZATION", ""),
			WordbookID:    getEnv("WORDBOOK_ID", ""),
			WordOnly:      getEnvBool("WORD_ONLY", false),
		},
		Volcano: VolcanoConfig{
			APIKey:   getEnv("VOLCANO_API_KEY", ""),
			Endpoint: getEnv("VOLCANO_ENDPOINT", ""),
			Model:    getEnv("VOLCANO_MODEL", ""),
		},
		Words: WordsConfig{
			CheckTimeoutMs: getEnvInt("WORD_CHECK_TIMEOUT_MS", constants.ExtractorConfig.DefaultTimeoutMs),
			MaxAdd:         getEnvInt("LLM_WORDS_MAX_ADD", constants.ExtractorConfig.DefaultMaxWords),
			SystemPrompt:   getEnv("LLM_WORDS_SYSTEM_PROMPT", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks only structural sanity. Missing provider or model credentials
// are not startup errors: the pipeline surfaces those per invocation.
func (c *Config) Validate() error {
	if c.Host.BaseURL == "" {
		return fmt.Errorf("HOST_BASE_URL is required")
	}
	if c.Host.WSURL == "" {
		return fmt.Errorf("HOST_WS_URL is required")
	}
	switch c.Dict.Type {
	case domain.ProviderYoudao, domain.ProviderEudic, domain.ProviderShanbay:
	default:
		return fmt.Errorf("DICT_TYPE must be 1 (youdao), 2 (eudic) or 3 (shanbay), got %d", int(c.Dict.Type))
	}
	if c.Words.CheckTimeoutMs < 0 {
		return fmt.Errorf("WORD_CHECK_TIMEOUT_MS must not be negative")
	}
	if c.Words.MaxAdd <= 0 {
		return fmt.Errorf("LLM_WORDS_MAX_ADD must be positive")
	}
	return nil
}

// Target builds the dictionary target for the configured provider.
func (c *Config) Target() domain.DictionaryTarget {
	return domain.DictionaryTarget{
		Provider:   c.Dict.Type,
		Credential: c.Dict.Authorization,
		NotebookID: c.Dict.WordbookID,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
