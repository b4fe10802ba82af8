package database

import (
	"context"

	"github.com/Salvaberticci/proyecto-laboratorio/config"
	"github.com/go-redis/redis/v8"
)

// ConnectRedis returns a client for the configured Redis after checking it
// answers PING.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
