package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionSnapshot_MissingKey(t *testing.T) {
	_, client := newTestClient(t)
	s := NewSessionSnapshot(client, "")

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no sessions, got %+v", got)
	}
}

func TestSessionSnapshot_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	s := NewSessionSnapshot(client, "test:sessions")

	in := []domain.Session{
		{ID: "s1", User: domain.User{ID: "u1", Email: "a@x.io", Username: "alice", Role: "authenticated", AccessToken: "at1", RefreshToken: "rt1", ExpiresAt: 10}},
		{ID: "s2", User: domain.User{ID: "u2", Email: "b@x.io", Username: "bob", Role: "authenticated", AccessToken: "at2", RefreshToken: "rt2", ExpiresAt: 20}},
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := mr.Get("test:sessions")
	if err != nil {
		t.Fatalf("key not written: %v", err)
	}
	want := "session_id,user_id,email,username,role,access_token,refresh_token,expires_at\n" +
		"s1,u1,a@x.io,alice,authenticated,at1,rt1,10\n" +
		"s2,u2,b@x.io,bob,authenticated,at2,rt2,20\n"
	if raw != want {
		t.Fatalf("unexpected stored value:\n%s", raw)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0] != in[0] || got[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestSessionSnapshot_BackendDown(t *testing.T) {
	mr, client := newTestClient(t)
	s := NewSessionSnapshot(client, "")
	mr.Close()

	if err := s.Save(context.Background(), nil); err == nil {
		t.Fatalf("expected save error with redis down")
	}
	if _, err := s.Load(context.Background()); err == nil {
		t.Fatalf("expected load error with redis down")
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error with redis down")
	}
}
