package main

import (
	"context"
	"io"
	"log"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"kriya/internal/cart"
	"kriya/internal/config"
	"kriya/internal/events"
	"kriya/internal/http/handlers"
	applog "kriya/internal/log"
	"kriya/internal/repos"
	"kriya/internal/storage/postgres"
	"kriya/internal/storage/redis"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
			applog.SetOutput(mw)
		}
	}
	defer func() { _ = applog.Sync() }()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	var rdb goredis.UniversalClient
	if len(cfg.Redis.Addrs) > 0 {
		if rdb, err = redis.NewClient(ctx, cfg.Redis); err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
	}

	var store cart.Store
	switch cfg.CartBackend {
	case "redis":
		if rdb == nil {
			log.Fatal("CART_BACKEND=redis needs REDIS_ADDRS")
		}
		store = redis.NewStore(rdb, cfg.CartTTL)
	case "postgres":
		pg, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pg.Close()
		store = pg
	case "sqlite", "":
		store = repos.NewKVRepo(db)
	default:
		log.Fatalf("unknown CART_BACKEND %q", cfg.CartBackend)
	}
	log.Printf("[cart] backend=%s", cfg.CartBackend)

	deps := handlers.NewDeps(db, store, cfg)

	// Cart events
	if rdb != nil && cfg.Redis.EventsChannel != "" {
		deps.Carts.OnChange(events.NewRedisPublisher(rdb, cfg.Redis.EventsChannel).Publish)
		log.Printf("[events] redis channel=%s", cfg.Redis.EventsChannel)
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := events.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		kp := events.NewKafkaPublisher(producer, cfg.Kafka.Topic)
		defer kp.Close()
		deps.Carts.OnChange(kp.Publish)
		log.Printf("[events] kafka topic=%s", cfg.Kafka.Topic)
	}

	app := handlers.NewApp(deps)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Print(err)
	}
}
