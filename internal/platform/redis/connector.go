package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectOptions defines Redis connection retry behavior.
type ConnectOptions struct {
	ConnectTimeout time.Duration // total time allowed for connection attempts
	RetryInterval  time.Duration // initial wait between retries, doubled after each failure
	MaxWait        time.Duration // cap on the wait between retries
	PingTimeout    time.Duration // timeout for each ping attempt
}

// DefaultConnectOptions returns the retry policy used by the server.
func DefaultConnectOptions() ConnectOptions {
	return ConnectOptions{
		ConnectTimeout: 15 * time.Second,
		RetryInterval:  500 * time.Millisecond,
		MaxWait:        4 * time.Second,
		PingTimeout:    2 * time.Second,
	}
}

func (o ConnectOptions) validate() error {
	switch {
	case o.ConnectTimeout <= 0:
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	case o.RetryInterval <= 0:
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	case o.MaxWait <= 0:
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	case o.PingTimeout <= 0:
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	}
	return nil
}

// Connect parses a redis:// URL and pings the server with exponential
// backoff until it answers or ConnectTimeout elapses.
func Connect(ctx context.Context, url string, opts ConnectOptions, logger *slog.Logger) (*redis.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(redisOpts)
	log := logger.With(slog.String("component", "redis"), slog.String("addr", redisOpts.Addr))

	if err := connectWithRetry(ctx, client, opts, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func connectWithRetry(ctx context.Context, client *redis.Client, opts ConnectOptions, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	log.Info("connecting to redis", slog.Duration("timeout", opts.ConnectTimeout))

	start := time.Now()
	wait := opts.RetryInterval
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					slog.Int("attempts", attempt),
					slog.Duration("elapsed", time.Since(start)))
			} else {
				log.Info("connected to redis")
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable",
				slog.Int("attempts", attempt),
				slog.String("error", err.Error()))
			return fmt.Errorf("redis unavailable after %d attempts: %w", attempt, err)
		case <-timer.C:
			log.Warn("redis connection failed, retrying",
				slog.Int("attempt", attempt),
				slog.Duration("next_retry_in", wait),
				slog.String("error", err.Error()))
			wait *= 2
			if wait > opts.MaxWait {
				wait = opts.MaxWait
			}
		}
	}
}
