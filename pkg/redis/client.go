package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"masar-backend/pkg/logger"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// Config carries the Upstash connection settings. A rediss:// scheme enables
// TLS; the password may be embedded in the URL or provided separately.
type Config struct {
	URL      string
	Password string
}

// Client returns the shared client, or nil when redis is not configured.
// Every consumer (rate limiter, attempt store) has an in-memory fallback
// for the nil case.
func Client() *redis.Client {
	return client
}

// Initialize dials redis once at startup. Subsequent calls return the
// result of the first attempt.
func Initialize(cfg Config) error {
	clientOnce.Do(func() {
		client, clientErr = connect(cfg)
	})
	return clientErr
}

func connect(cfg Config) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis: UPSTASH_REDIS_URL not configured")
	}

	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	useTLS := parsed.Scheme == "rediss"
	addr := parsed.Host
	if parsed.Port() == "" {
		addr += ":6379"
	}

	password := cfg.Password
	if password == "" && parsed.User != nil {
		password, _ = parsed.User.Password()
	}

	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: connection failed: %w", err)
	}

	logger.Log.Info("redis connected", "addr", addr, "tls", useTLS)
	return c, nil
}

// IsAvailable reports whether the client is connected right now.
func IsAvailable() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// Close closes the connection if one was established.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}
