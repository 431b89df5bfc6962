package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JLTC3111/contract-management-app-sub001/config"
)

// Notification is the lifecycle event emitted once per detected transition.
type Notification struct {
	ContractID string     `json:"contract_id"`
	Transition Transition `json:"transition"`
	At         time.Time  `json:"at"`
}

// Notifier delivers lifecycle notifications. Failures are non-fatal to the
// batch; the job logs and counts them.
type Notifier interface {
	Emit(ctx context.Context, n Notification) error
}

// RedisNotifier publishes notifications as JSON on a redis channel, where
// downstream consumers (mailers, webhooks) pick them up.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier connects to redis and verifies the connection.
func NewRedisNotifier(cfg *config.RedisConfig) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisNotifier{client: client, channel: cfg.Channel}, nil
}

func (r *RedisNotifier) Emit(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// LogNotifier writes notifications to the log. It is the fallback when no
// redis address is configured.
type LogNotifier struct{}

func (LogNotifier) Emit(_ context.Context, n Notification) error {
	slog.Info("lifecycle notification",
		"contract_id", n.ContractID,
		"transition", string(n.Transition),
		"at", n.At.Format(time.RFC3339),
	)
	return nil
}
