package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestConnect(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), DB: 0, Timeout: time.Second})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if client.Options().ReadTimeout != time.Second || client.Options().DialTimeout != time.Second {
		t.Fatalf("timeout should apply to the client, got %+v", client.Options())
	}
}

func TestConnect_InvalidConfig(t *testing.T) {
	cases := map[string]Config{
		"missing addr": {Timeout: time.Second},
		"zero timeout": {Addr: "localhost:6379"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Connect(context.Background(), cfg); err == nil {
				t.Fatalf("expected an error for %+v", cfg)
			}
		})
	}
}

func TestConnect_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected ping failure against a closed server")
	}
}
