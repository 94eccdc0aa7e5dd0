package auth

import (
	"context"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ayurbalance/wellness-platform/internal/mirror"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatalf("expected match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected mismatch")
	}
}

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT("u_1234", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sub, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub != "u_1234" {
		t.Fatalf("unexpected subject %q", sub)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatalf("expected signature failure")
	}
}

func testCredentials(t *testing.T) *Credentials {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	backend, err := mirror.NewGormBackend(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	m := mirror.New(backend)
	m.SetLogf(t.Logf)
	return NewCredentials(m)
}

func TestCredentials_VerifyRegistered(t *testing.T) {
	c := testCredentials(t)
	ctx := context.Background()

	if err := c.Register(ctx, "riya@example.com", "pass1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !c.Verify(ctx, "riya@example.com", "pass1") {
		t.Fatalf("expected verify to pass")
	}
	if c.Verify(ctx, "riya@example.com", "nope") {
		t.Fatalf("expected verify to fail")
	}
}

func TestCredentials_UnknownEmailAccepted(t *testing.T) {
	c := testCredentials(t)
	// the flow is a local mock, not an authentication service
	if !c.Verify(context.Background(), "new@example.com", "anything") {
		t.Fatalf("unknown emails must be accepted")
	}
}
