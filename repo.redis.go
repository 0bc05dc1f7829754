package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DefaultBooksListKey string = "library:books"
	MaxRemoveRetries    int    = 3
)

type redisBookStore struct {
	logger *zap.Logger
	client *redis.Client
	key    string
}

// NewRedisBookStore provides an instance of redis-based book store. Books
// are kept as JSON values into a single redis list under the given key.
func NewRedisBookStore(logger *zap.Logger, client *redis.Client, key string) *redisBookStore {
	if key == "" {
		key = DefaultBooksListKey
	}
	return &redisBookStore{
		logger: logger,
		client: client,
		key:    key,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis store: test connection failed: %v", err)
	}
	return client, nil
}

// Clear drops every record left under the store key.
func (rs *redisBookStore) Clear(ctx context.Context) error {
	if err := rs.client.Del(ctx, rs.key).Err(); err != nil {
		return fmt.Errorf("redis store: %w", err)
	}
	return nil
}

// Close releases the redis client.
func (rs *redisBookStore) Close() error {
	return rs.client.Close()
}

// Add appends a new book record at the tail of the list.
func (rs *redisBookStore) Add(ctx context.Context, book Book) error {
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("redis store: %w", err)
	}
	if err = rs.client.RPush(ctx, rs.key, bookBytes).Err(); err != nil {
		return fmt.Errorf("redis store: %w", err)
	}
	return nil
}

// Remove deletes all book records matching the title. The list is watched
// while it is read so the removals are only applied to the records seen.
func (rs *redisBookStore) Remove(ctx context.Context, title string) error {
	remove := func(tx *redis.Tx) error {
		values, err := tx.LRange(ctx, rs.key, 0, -1).Result()
		if err != nil {
			return err
		}

		var matches []string
		for _, value := range values {
			var book Book
			if err = json.Unmarshal([]byte(value), &book); err != nil {
				return err
			}
			if book.Title == title {
				matches = append(matches, value)
			}
		}
		rs.logger.Debug("redis store: removing records", zap.String("title", title), zap.Int("count", len(matches)))
		if len(matches) == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, value := range matches {
				pipe.LRem(ctx, rs.key, 0, value)
			}
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < MaxRemoveRetries; i++ {
		err = rs.client.Watch(ctx, remove, rs.key)
		if err != redis.TxFailedErr {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("redis store: %w", err)
	}
	return nil
}

// List retrieves all books stored in the redis list in insertion order.
func (rs *redisBookStore) List(ctx context.Context) ([]Book, error) {
	values, err := rs.client.LRange(ctx, rs.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis store: %w", err)
	}
	books := []Book{}
	for _, value := range values {
		var book Book
		if err = json.Unmarshal([]byte(value), &book); err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		books = append(books, book)
	}
	return books, nil
}
