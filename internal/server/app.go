// Package server wires configuration, storage, services and the web
// front end into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
	"github.com/dmitrijs2005/gophnotes/internal/server/web"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	noteService    *services.NoteService
	sessionService *services.SessionService
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	dialect, err := dbx.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	hasher, err := cryptox.NewPasswordHasher(cryptox.Algorithm(c.PasswordHash))
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewRepositoryManager(dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	secret := c.SecretKey
	if secret == "" {
		secret, err = common.MakeRandHexString(32)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Warn(ctx, "no secret key configured, sessions will not survive a restart")
	}

	logger.Info(ctx, "storage ready",
		"driver", string(dialect),
		"password_hash", string(hasher.Algorithm()),
		"session_validity", c.SessionValidityDuration.String(),
	)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    services.NewUserService(db, rm, hasher),
		noteService:    services.NewNoteService(db, rm),
		sessionService: services.NewSessionService(db, rm, []byte(secret), c.SessionValidityDuration),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) bootstrapAdmin(ctx context.Context) error {
	created, err := app.userService.BootstrapAdmin(ctx, app.config.AdminEmail, app.config.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		app.logger.Info(ctx, "Created default admin", "email", app.config.AdminEmail)
	}
	return nil
}

func (app *App) startWebServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := web.NewServer(app.config.HTTPAddr, app.logger, app.userService, app.noteService, app.sessionService, app.config.SecureCookies)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeRevocations drops expired logout records every interval until ctx
// is done.
func (app *App) purgeRevocations(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.sessionService.PurgeExpired(ctx)
			if err != nil {
				app.logger.Error(ctx, "purge revocations", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Debug(ctx, "purged revocations", "count", n)
			}
		}
	}
}

// Run seeds the administrator and serves until ctx is cancelled or a
// termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.bootstrapAdmin(ctx); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startWebServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeRevocations(ctx, app.config.RevocationPurgeInterval)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
