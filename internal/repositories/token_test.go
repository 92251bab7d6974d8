package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	repo := NewTokenRepository(rdb)

	t.Run("SaveAndGet", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "jti-1", 42, time.Minute))

		userID, err := repo.GetUserID(ctx, "jti-1")
		assert.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		_, err := repo.GetUserID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "jti-2", 7, time.Minute))
		require.NoError(t, repo.Delete(ctx, "jti-2"))

		_, err := repo.GetUserID(ctx, "jti-2")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, repo.Delete(ctx, "jti-2"), "deleting twice is fine")
	})

	t.Run("Expires", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "jti-3", 1, time.Second))
		time.Sleep(2 * time.Second)

		_, err := repo.GetUserID(ctx, "jti-3")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
