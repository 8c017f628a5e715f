package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCache(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client)
	ctx := context.Background()

	mock.ExpectSet("health:k", []byte("v"), time.Second).SetVal("OK")
	mock.ExpectGet("health:k").SetVal("v")
	mock.ExpectGet("health:gone").RedisNil()
	mock.ExpectDel("health:k").SetVal(1)

	if err := c.Set(ctx, "health:k", []byte("v"), time.Second); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if got, ok := c.Get(ctx, "health:k"); !ok || string(got) != "v" {
		t.Errorf("Get() = %q, %v, want v, true", got, ok)
	}
	if _, ok := c.Get(ctx, "health:gone"); ok {
		t.Error("Get() hit on redis nil, want miss")
	}
	if err := c.Delete(ctx, "health:k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

func TestRedisCache_ErrorIsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("health:k").SetErr(errors.New("connection refused"))

	if _, ok := NewRedisCache(client).Get(context.Background(), "health:k"); ok {
		t.Error("Get() hit on error, want miss")
	}
}

func TestRedisCache_ZeroTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()

	if err := NewRedisCache(client).Set(context.Background(), "health:k", []byte("v"), 0); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis call: %v", err)
	}
}
