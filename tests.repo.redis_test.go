package main

import (
	"context"
	"net"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startRedisDockerContainer(t *testing.T) (string, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Failed to start Dockertest: %+v", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		t.Skipf("Could not connect to Docker: %+v", err)
	}

	resource, err := pool.Run("redis", "7.0.10-alpine", nil)
	if err != nil {
		t.Fatalf("Failed to start redis: %+v", err)
	}

	// build address the container is listening on
	addr := net.JoinHostPort("localhost", resource.GetPort("6379/tcp"))

	// ensure to wait for the container to be ready
	err = pool.Retry(func() error {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		return client.Ping(context.Background()).Err()
	})

	if err != nil {
		t.Fatalf("Failed to ping Redis: %+v", err)
	}

	destroyFunc := func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Failed to purge resource: %+v", err)
		}
	}

	return addr, destroyFunc
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	addr, destroyFunc := startRedisDockerContainer(t)
	defer destroyFunc()

	ctx := context.Background()
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	config := &Config{Storage: RedisStorage, Redis: RedisConfig{Host: host, Port: port, ListKey: "test:books"}}

	client, err := GetRedisClient(config)
	require.NoError(t, err)

	// leftovers from a previous session.
	require.NoError(t, client.RPush(ctx, "test:books", `{"title":"Old","author":"Old","year":"1"}`).Err())

	rs := NewRedisBookStore(zap.NewNop(), client, config.Redis.ListKey)
	defer rs.Close()

	t.Run("Clear Previous Session", func(t *testing.T) {
		assert.NoError(t, rs.Clear(ctx))
		books, err := rs.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("Add Books In Order", func(t *testing.T) {
		assert.NoError(t, rs.Add(ctx, NewBook("Dune", "Herbert", "1965")))
		assert.NoError(t, rs.Add(ctx, NewBook("Emma", "Austen", "1815")))
		assert.NoError(t, rs.Add(ctx, NewBook("Dune", "Herbert", "1965")))
		assert.NoError(t, rs.Add(ctx, NewBook("Dune", "Other", "2000")))
		books, err := rs.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []Book{
			NewBook("Dune", "Herbert", "1965"),
			NewBook("Emma", "Austen", "1815"),
			NewBook("Dune", "Herbert", "1965"),
			NewBook("Dune", "Other", "2000"),
		}, books)
	})

	t.Run("Remove NonExistent Title", func(t *testing.T) {
		assert.NoError(t, rs.Remove(ctx, "Missing"))
		books, err := rs.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, books, 4)
	})

	t.Run("Remove All Matches", func(t *testing.T) {
		assert.NoError(t, rs.Remove(ctx, "Dune"))
		books, err := rs.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []Book{NewBook("Emma", "Austen", "1815")}, books)
	})

	t.Run("Remove Identical Records", func(t *testing.T) {
		assert.NoError(t, rs.Add(ctx, NewBook("Ubik", "Dick", "1969")))
		assert.NoError(t, rs.Add(ctx, NewBook("Ubik", "Dick", "1969")))
		assert.NoError(t, rs.Remove(ctx, "Ubik"))
		books, err := rs.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []Book{NewBook("Emma", "Austen", "1815")}, books)
	})

	t.Run("Remove Reports Corrupted Records", func(t *testing.T) {
		require.NoError(t, client.RPush(ctx, "test:books", "not-json").Err())
		assert.Error(t, rs.Remove(ctx, "Emma"))
		// nothing was removed on failure.
		n, err := client.LLen(ctx, "test:books").Result()
		assert.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}
