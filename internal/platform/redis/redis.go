package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv8 "github.com/go-redis/redis/v8"

	"jobpilot/internal/logger"
)

type Options struct {
	Addr     string
	Password string
}

type Service struct {
	client *redisv8.Client
	log    *logger.Logger
}

func New(opts Options) (*Service, error) {
	c := redisv8.NewClient(&redisv8.Options{Addr: opts.Addr, Password: opts.Password})
	if err := c.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Service{client: c, log: logger.New("Redis")}, nil
}

func (s *Service) Close() error            { return s.client.Close() }
func (s *Service) Client() *redisv8.Client { return s.client }

func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.log.LogErrorf("Redis health check failed: %v", err)
		return fmt.Errorf("redis ping failed: %v", err)
	}
	return nil
}

// CacheGet reads a JSON-encoded value into out. A redis miss or decode
// failure is reported as an error; callers treat any error as a miss.
func (s *Service) CacheGet(ctx context.Context, key string, out interface{}) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// CacheSet stores a JSON-encoded value with a TTL in seconds.
func (s *Service) CacheSet(ctx context.Context, key string, val interface{}, ttlSeconds int) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, time.Duration(ttlSeconds)*time.Second).Err()
}
