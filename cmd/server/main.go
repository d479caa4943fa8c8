package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/timeblock/api/handler"
	"github.com/fastygo/timeblock/internal/config"
	"github.com/fastygo/timeblock/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/timeblock/internal/infrastructure/redis"
	"github.com/fastygo/timeblock/internal/middleware"
	"github.com/fastygo/timeblock/internal/router"
	"github.com/fastygo/timeblock/internal/services/lifecycle"
	"github.com/fastygo/timeblock/pkg/httpcontext"
	"github.com/fastygo/timeblock/pkg/logger"
	"github.com/fastygo/timeblock/repository"
	"github.com/fastygo/timeblock/repository/memory"
	redisRepo "github.com/fastygo/timeblock/repository/redis"
	"github.com/fastygo/timeblock/usecase/entity"
	noteUC "github.com/fastygo/timeblock/usecase/note"
	taskUC "github.com/fastygo/timeblock/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)

	mon := monitor.New(cfg.Health.Interval, zapLogger.Named("monitor"))

	repos, err := openRepositories(appCtx, cfg, manager, mon, zapLogger)
	if err != nil {
		zapLogger.Fatal("storage unavailable", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	var keys repository.IdempotencyRepository = memory.NewIdempotencyRepository()
	if cfg.RedisEnabled() {
		redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		mon.Register("redis", redisInfra.Probe(redisClient))
		keys = redisRepo.NewIdempotencyRepository(redisClient)
	}

	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	})

	store := entity.New(
		noteUC.New(repos.notes, zapLogger.Named("notes")),
		taskUC.New(repos.tasks, zapLogger.Named("tasks")),
	)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Note:   apiHandler.NewNoteHandler(store, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(store, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	identity := middleware.Identity(middleware.IdentityConfig{
		JWTSecret:  cfg.Auth.JWTSecret,
		JWTIssuer:  cfg.Auth.JWTIssuer,
		DemoUserID: cfg.Auth.DemoUserID,
	}, zapLogger)
	idempotency := middleware.Idempotency(keys, cfg.Idempotency.TTL, zapLogger)
	r := router.New(handlers, identity, idempotency)

	server := &fasthttp.Server{
		Handler:            middleware.Chain(r.Handler, middleware.AccessLog(zapLogger)),
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxConnsPerIP:      cfg.HTTP.MaxConn,
		Name:               cfg.AppName,
		MaxRequestBodySize: 1 << 20,
	}

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	zapLogger.Info("server started",
		zap.String("address", cfg.Address()),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("redis", cfg.RedisEnabled()),
		zap.Strings("shutdown_hooks", manager.Hooks()),
	)
	err = manager.Run(appCtx, func(ctx context.Context) error {
		errCh := make(chan error, 1)
		go func() { errCh <- server.ListenAndServe(cfg.Address()) }()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		}
	})
	if err != nil {
		zapLogger.Error("server stopped with error", zap.Error(err))
	}
}
