package main

import (
	"context"
	"crypto/rand"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/tennis-playability/internal/domain/playability"
	"github.com/yanqian/tennis-playability/internal/infra/config"
	"github.com/yanqian/tennis-playability/internal/infra/inference"
	"github.com/yanqian/tennis-playability/internal/infra/selectionstore"
	httpiface "github.com/yanqian/tennis-playability/internal/interface/http"
)

func provideInferenceClient(cfg *config.Config, logger *slog.Logger) *inference.Client {
	return inference.NewClient(cfg.Inference.Endpoint(), cfg.Inference.Timeout, logger)
}

func provideSelectionStore(cfg *config.Config, logger *slog.Logger) playability.SelectionStore {
	fallback := selectionstore.NewMemoryStore(cfg.Session.TTL)
	if !cfg.Session.Redis.Enabled {
		logger.Info("session valkey store disabled, using memory store")
		return fallback
	}
	opt, err := buildValkeyOptions(cfg.Session.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return fallback
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return fallback
	}
	logger.Info("session valkey store enabled", "addr", cfg.Session.Redis.Addr)
	return selectionstore.NewValkeyStore(client, cfg.Session.Redis.Prefix, cfg.Session.TTL)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideSessionConfig(cfg *config.Config, logger *slog.Logger) (httpiface.SessionConfig, error) {
	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return httpiface.SessionConfig{}, err
		}
		logger.Warn("session secret not set, sessions will not survive a restart")
	}
	return httpiface.SessionConfig{
		Secret:     secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
	}, nil
}
