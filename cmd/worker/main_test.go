package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ayurbalance/wellness-platform/internal/auth"
	"github.com/ayurbalance/wellness-platform/internal/config"
	"github.com/ayurbalance/wellness-platform/internal/consult"
	"github.com/ayurbalance/wellness-platform/internal/events"
	"github.com/ayurbalance/wellness-platform/internal/httpapi"
	"github.com/ayurbalance/wellness-platform/internal/httpapi/handlers"
	"github.com/ayurbalance/wellness-platform/internal/mirror"
	"github.com/ayurbalance/wellness-platform/internal/planner"
	"github.com/ayurbalance/wellness-platform/internal/state"
)

func newTestServer(t *testing.T) (*httptest.Server, *state.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(gormsqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	backend, err := mirror.NewGormBackend(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	m := mirror.New(backend)
	m.SetLogf(t.Logf)

	store := state.New(context.Background(), m)
	gen := planner.New(rand.New(rand.NewSource(1)), nil)
	svc := consult.NewService(store, gen)
	creds := auth.NewCredentials(m)
	h := handlers.NewHandler(store, config.Config{JWTSecret: "test-secret"}, svc, gen, creds, nil)

	srv := httptest.NewServer(httpapi.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, store
}

func TestHandleReply_AppendsToLiveConversation(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	// the patient message lands in the server's store before the job runs
	store.AddMessage(ctx, "req_1002", state.SenderPatient, "I drank water", 0)

	api := &apiClient{base: srv.URL, hc: srv.Client()}
	job := events.ReplyJob{RequestID: "req_1002", Text: "I drank water"}
	if err := handleReply(ctx, api, job, 0); err != nil {
		t.Fatalf("handle reply: %v", err)
	}

	msgs := store.Conversation("req_1002")
	if len(msgs) != 2 {
		t.Fatalf("expected patient message and reply, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].From != state.SenderPatient || msgs[0].Text != "I drank water" {
		t.Fatalf("patient message lost: %+v", msgs[0])
	}
	if msgs[1].From != state.SenderDoctor || msgs[1].Text != "Logged 250ml water. Keep hydrating!" {
		t.Fatalf("unexpected reply: %+v", msgs[1])
	}

	// the inferred action went through the same store
	if got := store.Progress().WaterMl; got != 250 {
		t.Fatalf("water action not applied, got %dml", got)
	}
}

func TestHandleReply_MealAction(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	seeded := len(store.Conversation("req_1001"))

	api := &apiClient{base: srv.URL, hc: srv.Client()}
	job := events.ReplyJob{RequestID: "req_1001", Text: "lunch done"}
	if err := handleReply(ctx, api, job, 0); err != nil {
		t.Fatalf("handle reply: %v", err)
	}

	msgs := store.Conversation("req_1001")
	if len(msgs) != seeded+1 {
		t.Fatalf("expected seeded messages kept plus reply, got %d", len(msgs))
	}
	last := msgs[len(msgs)-1]
	if last.From != state.SenderDoctor || last.Text != "Great! I marked your lunch as taken. Want a light herbal tea later?" {
		t.Fatalf("unexpected reply: %+v", last)
	}
	if got := store.Progress().MealsTaken; got != 1 {
		t.Fatalf("meal action not applied, got %d", got)
	}
}

func TestHandleReply_ServerDownFailsJob(t *testing.T) {
	api := &apiClient{base: "http://127.0.0.1:1", hc: &http.Client{Timeout: time.Second}}
	job := events.ReplyJob{RequestID: "req_1001", Text: "hello"}
	if err := handleReply(context.Background(), api, job, 0); err == nil {
		t.Fatalf("expected error when the server is unreachable")
	}
}
