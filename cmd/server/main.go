package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

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

func openMirror(cfg config.Config) *mirror.Mirror {
	switch cfg.MirrorBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return mirror.New(mirror.NewRedisBackend(client))
	default:
		db, err := mirror.OpenDB(cfg.DBDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		backend, err := mirror.NewGormBackend(db)
		if err != nil {
			log.Fatalf("migrate mirror: %v", err)
		}
		return mirror.New(backend)
	}
}

func main() {
	cfg := config.Load()

	m := openMirror(cfg)

	ctx := context.Background()
	store := state.New(ctx, m)
	gen := planner.New(nil, nil)
	svc := consult.NewService(store, gen)
	creds := auth.NewCredentials(m)

	pub, err := events.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		// replies are a convenience; the API stays up without the broker
		log.Printf("rabbit unavailable, assistant replies disabled: %v", err)
		pub = nil
	} else {
		defer pub.Close()
	}

	h := handlers.NewHandler(store, cfg, svc, gen, creds, pub)
	r := httpapi.NewRouter(h)

	log.Printf("server listening addr=%s mirror=%s", cfg.HTTPAddr, cfg.MirrorBackend)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
