package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edureg/internal/staging"
	"edureg/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(cCtx.String("env-prefix"), c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 30
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}

// newStagingProvider connects to redis when REDIS_ADDR is set and otherwise
// keeps staged data in process memory. The returned func releases it.
func newStagingProvider(ctx context.Context, logger *logrus.Logger, c *types.Config) (staging.Provider, func(), error) {
	ttl := time.Duration(c.StagingTTLHours) * time.Hour

	if c.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, staging wizard data in memory")
		return staging.NewMemory(ttl), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	return staging.NewRedis(client, ttl), func() { _ = client.Close() }, nil
}

var errRedisRequired = errors.New("REDIS_ADDR must be set: sessions are only shared with the server through redis")

// newSharedStagingProvider is newStagingProvider for commands that read data
// staged by a running server, which an in-memory provider can never hold.
func newSharedStagingProvider(ctx context.Context, logger *logrus.Logger, c *types.Config) (staging.Provider, func(), error) {
	if c.RedisAddr == "" {
		return nil, nil, errRedisRequired
	}
	return newStagingProvider(ctx, logger, c)
}
