package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mind-engage/mindengage-quizgen/internal/config"
	"github.com/mind-engage/mindengage-quizgen/internal/db"
	"github.com/mind-engage/mindengage-quizgen/internal/quiz"
	syncx "github.com/mind-engage/mindengage-quizgen/internal/sync"
)

// backend bundles the selected quiz store with its lifecycle hooks.
type backend struct {
	store  quiz.Store
	events quiz.EventRecorder // only SQL drivers keep an event log
	ping   func(context.Context) error
	close  func()
}

func openStore(ctx context.Context, cfg config.Config) (*backend, error) {
	noop := func(context.Context) error { return nil }
	switch cfg.StoreDriver {
	case "memory":
		return &backend{store: quiz.NewInMemoryStore(), ping: noop, close: func() {}}, nil

	case "sqlite", "postgres":
		dbh, err := db.Open(ctx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:  quiz.NewSQLStore(dbh),
			events: syncx.NewEventRepo(dbh, "quizd"),
			ping:   dbh.PingContext,
			close:  func() { _ = dbh.Close() },
		}, nil

	case "bolt":
		bs, err := quiz.OpenBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return &backend{store: bs, ping: noop, close: func() { _ = bs.Close() }}, nil

	case "mongo":
		client, err := quiz.ConnectMongo(ctx, cfg.MongoURL)
		if err != nil {
			return nil, err
		}
		ms, err := quiz.NewMongoStore(ctx, client.Database(cfg.MongoDB))
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &backend{
			store: ms,
			ping:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return &backend{
			store: quiz.NewRedisStore(rdb),
			ping:  func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			close: func() { _ = rdb.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver: %q", cfg.StoreDriver)
}
