package redis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	infraconfig "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/config"
	"github.com/jonesrussell/north-cloud/email-classifier/infrastructure/redis"
)

func TestNewClient_RejectsEmptyAddress(t *testing.T) {
	t.Parallel()

	client, err := redis.NewClient(redis.Config{})
	if !errors.Is(err, redis.ErrEmptyAddress) {
		t.Errorf("err = %v, want ErrEmptyAddress", err)
	}
	if client != nil {
		t.Error("expected nil client")
	}
}

func TestNewClient_UnreachableServer(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed local port")
	}

	client, err := redis.NewClient(redis.Config{Address: "127.0.0.1:1"})
	if err == nil {
		_ = client.Close()
		t.Fatal("expected ping failure against closed port")
	}
}

func TestNewClient_FromConfig(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	client, err := redis.NewClient(redis.FromConfig(infraconfig.RedisConfig{
		URL:      mr.Addr(),
		Password: "secret",
		DB:       0,
	}))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err = client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Errorf("stored %q, want v", got)
	}
}
