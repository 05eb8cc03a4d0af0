package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goRedis "github.com/redis/go-redis/v9"
)

type Client struct {
	redisClient *goRedis.Client
}

func (client *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.redisClient.Set(ctx, key, value, expiration).Err()
}

// SetNX reports whether the key was written; false means it already existed.
func (client *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	ok, err := client.redisClient.SetNX(ctx, key, value, expiration).Result()
	if err != nil {
		return false, errors.Wrap(err, "set nx redis failed")
	}
	return ok, nil
}

func (client *Client) Get(ctx context.Context, key string) (val string, exists bool, err error) {
	val, err = client.redisClient.Get(ctx, key).Result()
	if err == goRedis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrap(err, "get redis failed")
	}
	return val, true, nil
}

func (client *Client) Ping(ctx context.Context) error {
	return client.redisClient.Ping(ctx).Err()
}

func (client *Client) Close() error {
	return client.redisClient.Close()
}

func CreateClient(address, password string, dbSelect int) (*Client, error) {
	redisClient := goRedis.NewClient(&goRedis.Options{
		Addr:     address,
		Password: password,
		DB:       dbSelect,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "redis connect failed")
	}
	return &Client{redisClient: redisClient}, nil
}
