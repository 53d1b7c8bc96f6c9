package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/platform/cache"
	"github.com/startailors/tailorshop/internal/session"
)

// Backend bundles the connections shared by the console and the worker: the
// Redis client, the restored operator session and the API client bound to it.
type Backend struct {
	Redis   *redis.Client
	Session *session.Session
	Client  *api.Client
}

// NewBackend connects to Redis, restores the stored session and builds the API
// client. A Redis outage is logged; the session then starts signed out.
func NewBackend(ctx context.Context, cfg *Config, logger *slog.Logger, recorder api.Recorder) *Backend {
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable", slog.Any("error", err))
	}
	sess := session.New(session.NewRedisStore(redisClient, cfg.SessionKey, cfg.SessionTTL), logger)
	if err := sess.Init(ctx); err != nil {
		logger.Warn("restore session", slog.Any("error", err))
	}
	opts := []api.Option{api.WithLogger(logger), api.WithTimeout(cfg.APITimeout)}
	if recorder != nil {
		opts = append(opts, api.WithRecorder(recorder))
	}
	return &Backend{
		Redis:   redisClient,
		Session: sess,
		Client:  api.NewClient(cfg.APIURL, sess, opts...),
	}
}

// Close releases the Redis connection.
func (b *Backend) Close() error {
	if b == nil || b.Redis == nil {
		return nil
	}
	return b.Redis.Close()
}
