package redis

import (
	"context"
	"testing"
	"time"
)

func TestKeyFormat(t *testing.T) {
	if got := key("abc"); got != "token:revoked:jti:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestConfigOptions(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "pw", DB: 2, Timeout: 2 * time.Second}.options()
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.ReadTimeout != 2*time.Second || opts.DialTimeout != 2*time.Second {
		t.Fatalf("timeout not applied: %+v", opts)
	}

	if opts := (Config{Addr: "x"}).options(); opts.ReadTimeout != 0 {
		t.Fatalf("zero timeout must keep client defaults, got %v", opts.ReadTimeout)
	}
}

func TestConnect_EmptyAddr(t *testing.T) {
	if _, err := Connect(context.Background(), Config{}); err == nil {
		t.Fatal("expected an error for an empty address")
	}
}
