package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cardapio/internal/models"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb     *redis.Client
	cartTTL time.Duration
}

func Initialize(redisURL string, cartTTL time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, cartTTL: cartTTL}, nil
}

// Cart storage. A session without a stored cart gets a fresh empty one, so
// cart operations never need an existence check.
func (c *Client) GetCart(sessionID string) (*models.Cart, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cart:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return &models.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &cart, nil
}

func (c *Client) SaveCart(sessionID string, cart *models.Cart) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	return c.rdb.Set(ctx, "cart:"+sessionID, jsonData, c.cartTTL).Err()
}

func (c *Client) DeleteCart(sessionID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cart:"+sessionID).Err()
}

// Current customer cache. The whole record round-trips as JSON so a
// read-modify-write never drops fields the writer did not touch.
func (c *Client) SetCustomer(customer *models.Customer, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("failed to marshal customer: %w", err)
	}

	return c.rdb.Set(ctx, "customer:"+customer.ID, jsonData, ttl).Err()
}

func (c *Client) GetCustomer(customerID string) (*models.Customer, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "customer:"+customerID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("customer not cached")
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	var customer models.Customer
	if err := json.Unmarshal([]byte(val), &customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer: %w", err)
	}

	return &customer, nil
}

func (c *Client) DeleteCustomer(customerID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "customer:"+customerID).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
