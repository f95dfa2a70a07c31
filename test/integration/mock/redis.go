package mock

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewRedis starts an in-process miniredis instance and returns a client bound
// to it. The server is torn down with the test.
func NewRedis(t *testing.T) *redis.Client {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: srv.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
