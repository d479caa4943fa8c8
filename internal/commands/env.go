package commands

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/fastygo/timeblock/internal/client"
	"github.com/fastygo/timeblock/internal/infrastructure/local"
	"github.com/fastygo/timeblock/internal/infrastructure/monitor"
	"github.com/fastygo/timeblock/internal/planner"
	"github.com/fastygo/timeblock/internal/services"
	"github.com/fastygo/timeblock/internal/services/lifecycle"
	"github.com/fastygo/timeblock/pkg/logger"
	"github.com/fastygo/timeblock/repository/bolt"
	"github.com/fastygo/timeblock/usecase"
	"github.com/fastygo/timeblock/usecase/entity"
)

// remoteProbe is the monitor component name for the API.
const remoteProbe = "remote"

// Env is everything a command needs: the planner and its teardown.
type Env struct {
	Config  *Config
	Planner *planner.Planner
	Logger  *zap.Logger
	Monitor *monitor.Monitor
	// Remote reports whether an API URL is configured.
	Remote bool

	manager *lifecycle.Manager
}

// Open wires the local bolt store and, when configured, the remote API
// behind a fallback store.
func Open(ctx context.Context, cfg *Config) (*Env, error) {
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: "console", Output: os.Stderr})
	if err != nil {
		return nil, err
	}
	manager := lifecycle.New(cfg.Timeout, log)

	db, err := local.Open(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	manager.Register("local-store", func(context.Context) error { return db.Close() })

	var store usecase.Store = entity.FromRepositories(bolt.NewNoteRepository(db), bolt.NewTaskRepository(db))

	mon := monitor.New(cfg.Timeout, log)
	if cfg.APIURL != "" {
		remote := client.NewRemote(client.Config{BaseURL: cfg.APIURL, Token: cfg.Token, Timeout: cfg.Timeout}, log)
		mon.Register(remoteProbe, remote.Ping)
		mon.Refresh(ctx)
		store = services.NewFallbackStore(remote, store, mon, log)
	}

	p := planner.New(store, planner.Options{
		UserID: cfg.UserID,
		Flags:  bolt.NewFlagRepository(db),
		Logger: log,
	})

	return &Env{
		Config:  cfg,
		Planner: p,
		Logger:  log,
		Monitor: mon,
		Remote:  cfg.APIURL != "",
		manager: manager,
	}, nil
}

// Close runs the registered shutdown hooks.
func (e *Env) Close(ctx context.Context) error {
	defer func() { _ = e.Logger.Sync() }()
	return e.manager.Shutdown(ctx)
}

// Online reports whether the remote API answered the last probe.
func (e *Env) Online() bool {
	if !e.Remote {
		return false
	}
	return e.Monitor.GetStatus().Components[remoteProbe].Online
}
