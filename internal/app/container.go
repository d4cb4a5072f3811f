package app

import (
	"context"
	"fmt"

	"github.com/karu285/wordbook-bot-go/internal/config"
	"github.com/karu285/wordbook-bot-go/internal/constants"
	"github.com/karu285/wordbook-bot-go/internal/dict"
	"github.com/karu285/wordbook-bot-go/internal/host"
	"github.com/karu285/wordbook-bot-go/internal/httpx"
	"github.com/karu285/wordbook-bot-go/internal/pipeline"
	"go.uber.org/zap"
)

// Container bundles the assembled services behind the bridge runtime.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	client     *httpx.Client
	hostClient *host.Client
	pipeline   *pipeline.Pipeline
	bridge     *host.Bridge
}

// Build assembles the transport, pipeline and bridge. It performs no network
// calls; provider credentials are validated separately so a third-party outage
// cannot block startup.
func Build(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	client := httpx.NewClient(logger)
	pipe := pipeline.New(cfg, client, logger)

	ws := host.NewWebSocket(
		cfg.Host.WSURL,
		constants.WebSocketConfig.MaxReconnectAttempts,
		constants.WebSocketConfig.ReconnectDelay,
		constants.WebSocketConfig.HandshakeTimeout,
		logger,
	)
	hostClient := host.NewClient(cfg.Host.BaseURL, client, logger)
	bridge := host.NewBridge(ws, hostClient, pipe, logger)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		client:     client,
		hostClient: hostClient,
		pipeline:   pipe,
		bridge:     bridge,
	}, nil
}

// PingHost reports whether the host bridge answers on its HTTP surface.
func (c *Container) PingHost(ctx context.Context) bool {
	return c.hostClient.Ping(ctx)
}

// Bridge returns the wired bridge runtime.
func (c *Container) Bridge() *host.Bridge {
	return c.bridge
}

// ValidateCredentials does a cheap liveness check of the configured dictionary
// credential. Eudic exposes the category list; cookie providers have no
// read-only probe and validate lazily on the first write.
func (c *Container) ValidateCredentials(ctx context.Context) error {
	target := c.Config.Target()
	provider, err := dict.NewProvider(target, c.client, c.Config.Words.CheckTimeoutMs, c.Logger)
	if err != nil {
		return err
	}

	if eudic, ok := provider.(*dict.Eudic); ok {
		notebooks, err := eudic.Notebooks(ctx)
		if err != nil {
			return err
		}
		c.Logger.Info("Eudic credential validated",
			zap.Int("notebooks", len(notebooks)),
			zap.String("configured_wordbook", target.NotebookID),
		)
		return nil
	}

	c.Logger.Info("Credential configured, validated lazily on first write",
		zap.String("provider", provider.Name()),
	)
	return nil
}
