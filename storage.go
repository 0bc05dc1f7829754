package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var (
	_ BookStore    = (*MemoryBookStore)(nil)   // ensure MemoryBookStore implements BookStore.
	_ BookStore    = (*ExtendedBookStore)(nil) // ensure ExtendedBookStore implements BookStore.
	_ AuthorFinder = (*ExtendedBookStore)(nil) // ensure ExtendedBookStore implements AuthorFinder.
	_ BookStore    = (*boltBookStore)(nil)     // ensure boltBookStore implements BookStore.
	_ BookStore    = (*redisBookStore)(nil)    // ensure redisBookStore implements BookStore.
)

// BookStore defines the operations a library store must provide.
type BookStore interface {
	Add(ctx context.Context, book Book) error
	Remove(ctx context.Context, title string) error
	List(ctx context.Context) ([]Book, error)
}

// AuthorFinder is implemented by stores able to filter books by author.
type AuthorFinder interface {
	FindByAuthor(ctx context.Context, author string) ([]Book, error)
}

// OpenBookStore builds the store selected by the configuration and returns
// it with the function that releases its underlying resources. Every store
// starts empty.
func OpenBookStore(ctx context.Context, logger *zap.Logger, config *Config) (BookStore, func() error, error) {
	switch config.Storage {
	case MemoryStorage, "":
		return NewExtendedBookStore(NewMemoryBookStore()), func() error { return nil }, nil

	case BoltStorage:
		client, err := GetBoltDBClient(config)
		if err != nil {
			return nil, nil, err
		}
		bs := NewBoltBookStore(logger, &config.BoltDB, client)
		return bs, bs.Close, nil

	case RedisStorage:
		client, err := GetRedisClient(config)
		if err != nil {
			return nil, nil, err
		}
		rs := NewRedisBookStore(logger, client, config.Redis.ListKey)
		if err = rs.Clear(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, err
		}
		return rs, rs.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, config.Storage)
}
