package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indica que la clave no existe en la caché.
var ErrCacheMiss = errors.New("cache: clave no encontrada")

// Client abstrae la caché para que los casos de uso no dependan de Redis directamente.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisClient implementación de Client sobre go-redis.
type RedisClient struct {
	rdb *redis.Client
}

// Config opciones de conexión a Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient conecta a Redis y verifica la conexión con un PING.
func NewRedisClient(ctx context.Context, cfg Config) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisClient{rdb: rdb}, nil
}

// Get obtiene el valor de una clave; ErrCacheMiss si no existe.
func (c *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return val, nil
}

// Set guarda un valor con TTL.
func (c *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Delete elimina una clave (no-op si no existe).
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close cierra la conexión subyacente.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
