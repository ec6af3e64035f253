package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/zion-platform/zion-sync/config"
	"github.com/zion-platform/zion-sync/internal/adapters/filestore"
	"github.com/zion-platform/zion-sync/internal/adapters/redisstore"
	"github.com/zion-platform/zion-sync/internal/api"
	"github.com/zion-platform/zion-sync/internal/appstate"
	"github.com/zion-platform/zion-sync/internal/notify"
	"github.com/zion-platform/zion-sync/internal/ports"
	"github.com/zion-platform/zion-sync/internal/push"
	"github.com/zion-platform/zion-sync/internal/session"
)

// Engine wires the session manager, notification syncer, and push
// registrar together over a shared API client and session store.
type Engine struct {
	cfg    config.AppConfig
	logger *slog.Logger

	// API is the backend client shared by all components.
	API *api.Client

	// Sessions owns the authentication state machine.
	Sessions *session.Manager

	// Syncer keeps the local notification state in sync.
	Syncer *notify.Syncer

	// AppState receives foreground/background transitions from the host.
	AppState *appstate.Monitor

	registrar *push.Registrar
	redis     redis.UniversalClient
}

// NewEngine builds the full component graph from configuration. The
// caller owns the returned engine and must call Close when done.
func NewEngine(cfg config.AppConfig, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := api.New(api.Options{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	store, redisClient, err := newSessionStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions, err := session.New(session.Options{
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		return nil, closeOnError(redisClient, fmt.Errorf("build session manager: %w", err))
	}

	monitor := appstate.NewMonitor()

	syncer, err := notify.New(notify.Options{
		API:          client,
		Sessions:     sessions,
		Foreground:   monitor,
		PollInterval: cfg.Sync.PollInterval,
		Logger:       logger,
	})
	if err != nil {
		return nil, closeOnError(redisClient, fmt.Errorf("build notification syncer: %w", err))
	}

	e := &Engine{
		cfg:      cfg,
		logger:   logger,
		API:      client,
		Sessions: sessions,
		Syncer:   syncer,
		AppState: monitor,
		redis:    redisClient,
	}

	if cfg.Push.Enabled {
		if cfg.Push.DeviceToken == "" {
			logger.Info("push registration disabled", "reason", "no device token configured")
		} else {
			registrar, rerr := push.New(push.Options{
				API:         client,
				Permissions: push.AutoGrant{},
				Tokens:      push.StaticProvider{Token: cfg.Push.DeviceToken},
				ProjectID:   cfg.Push.ProjectID,
				Logger:      logger,
			})
			if rerr != nil {
				return nil, closeOnError(redisClient, fmt.Errorf("build push registrar: %w", rerr))
			}
			e.registrar = registrar
		}
	}

	sessions.OnChange(e.onSessionChange)

	return e, nil
}

// onSessionChange reacts to authentication transitions. Registration is
// fire-and-forget so session changes are never blocked on the network.
func (e *Engine) onSessionChange(ev session.Event) {
	switch ev.State {
	case session.StateAuthenticated:
		if e.registrar != nil {
			go e.registrar.Register(context.Background(), ev.Session)
		}
	case session.StateUnauthenticated:
		e.Syncer.Reset()
	}
}

// Run restores the session, logs in with configured credentials when no
// session survives, and drives the sync loop until the context is
// cancelled or a termination signal arrives.
func (e *Engine) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state := e.Sessions.Restore(ctx)
	e.logger.Info("session restored", "state", string(state))

	if state != session.StateAuthenticated && e.cfg.Auth.HasCredentials() {
		if err := e.login(ctx); err != nil {
			// Leave the engine running unauthenticated. The backend may
			// recover before the next operator intervention.
			e.logger.Error("credential login failed", "error", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.Syncer.Run(ctx)
	})

	err := g.Wait()
	e.logger.Info("sync engine stopped")
	return err
}

func (e *Engine) login(ctx context.Context) error {
	sess, err := e.API.Login(ctx, e.cfg.Auth.Email, e.cfg.Auth.Password)
	if err != nil {
		return err
	}
	return e.Sessions.Login(ctx, sess)
}

// Close releases the session manager timer and the Redis connection.
func (e *Engine) Close() error {
	e.Sessions.Close()
	if e.redis != nil {
		if err := e.redis.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}
	return nil
}

// newSessionStore selects the configured session store backend. The
// returned client is non-nil only for the redis backend.
//
//nolint:ireturn // the backend is selected at runtime from configuration.
func newSessionStore(cfg config.AppConfig, logger *slog.Logger) (ports.SessionStore, redis.UniversalClient, error) {
	switch cfg.Session.Store {
	case config.StoreBackendRedis:
		client, err := ConnectRedis(cfg.Redis, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		store, err := redisstore.New(client, cfg.Session.InstallationID)
		if err != nil {
			return nil, nil, closeOnError(client, fmt.Errorf("build redis session store: %w", err))
		}
		return store, client, nil
	case config.StoreBackendFile:
		path := cfg.Session.FilePath
		if path == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve session file location: %w", err)
			}
			path = filepath.Join(dir, "zion-sync", "session.json")
		}
		store, err := filestore.New(path)
		if err != nil {
			return nil, nil, fmt.Errorf("build file session store: %w", err)
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store backend: %q", cfg.Session.Store)
	}
}

func closeOnError(client redis.UniversalClient, err error) error {
	if client == nil {
		return err
	}
	if cerr := client.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("close redis: %w", cerr))
	}
	return err
}
