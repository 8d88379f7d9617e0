package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/telewave/vpnbot/internal/pkg/env"
	"github.com/telewave/vpnbot/internal/pkg/payment"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// A selection lives long enough to pick a plan and open the checkout page.
const selectionTTL = 30 * time.Minute

// SetupCache initializes the connection to the Redis server
func SetupCache() {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	// Test the connection
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to Redis cache: %v", err)
	} else {
		log.Printf("Successfully connected to Redis cache: %s", pong)
	}
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

func selectionKey(tgID int64) string {
	return fmt.Sprintf("payment:selection:%d", tgID)
}

// Store keeps per-user pending plan selections between the plan-choice step
// and payment-link creation.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// StashSelection stores the user's chosen plan with a TTL.
func (s *Store) StashSelection(data payment.SubscriptionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return GetClient().Set(ctx, selectionKey(data.TgID), raw, selectionTTL).Err()
}

// TakeSelection returns and removes the user's stashed plan selection.
func (s *Store) TakeSelection(tgID int64) (payment.SubscriptionData, error) {
	key := selectionKey(tgID)
	raw, err := GetClient().Get(ctx, key).Result()
	if err != nil {
		return payment.SubscriptionData{}, err
	}
	_ = GetClient().Del(ctx, key).Err()

	var data payment.SubscriptionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return payment.SubscriptionData{}, err
	}
	return data, nil
}
