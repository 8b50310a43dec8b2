package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gaillardy/crm/internal/auth"
	"github.com/gaillardy/crm/internal/bus"
	"github.com/gaillardy/crm/internal/config"
	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/lock"
	"github.com/gaillardy/crm/internal/logging"
	"github.com/gaillardy/crm/internal/profile"
	"github.com/gaillardy/crm/internal/store"
	"github.com/gaillardy/crm/internal/tui"
	"github.com/gaillardy/crm/internal/tui/model"
)

// Version is the release identifier shown in the settings view.
const Version = "0.1.0"

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
}

// Module returns the fx module for the TUI application, composing all
// providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("crm",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideLock,
			provideStore,
			provideAuthStore,
			provideDirectoryStore,
			provideViewModel,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig() *config.Config {
	return config.LoadOrDefault(profile.ConfigPath())
}

func provideLogger(p Params) (*zap.Logger, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	return logging.New(profile.LogPath(p.ProfileName), p.ProfileName, false)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring profile lock", zap.String("profile", p.ProfileName))
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := profile.DBPath(p.ProfileName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideAuthStore(db *store.DB, b *bus.Bus, logger *zap.Logger) (*auth.Store, error) {
	s := auth.New(db, b)
	if err := s.Rehydrate(); err != nil {
		return nil, err
	}
	logger.Info("session state restored", zap.Bool("authenticated", s.Authenticated()))
	return s, nil
}

func provideDirectoryStore(db *store.DB, b *bus.Bus, cfg *config.Config, logger *zap.Logger) (*directory.Store, error) {
	s := directory.New(db, b, directory.DefaultQuery(cfg.ItemsPerPage))
	if err := s.Rehydrate(); err != nil {
		return nil, err
	}
	logger.Info("directory restored", zap.Int("clients", s.Len()))
	return s, nil
}

func provideViewModel(dir *directory.Store, sessions *auth.Store) *model.ViewModel {
	return model.NewViewModel(dir, sessions)
}

func provideApp(p Params, cfg *config.Config, vm *model.ViewModel, b *bus.Bus, logger *zap.Logger) *tui.App {
	return tui.NewApp(tui.Params{
		Profile: p.ProfileName,
		Version: Version,
		Config:  cfg,
		VM:      vm,
		Bus:     b,
		Logger:  logger,
	})
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *tui.App, db *store.DB, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := app.Run(); err != nil {
					logger.Error("tui error", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			app.Stop()
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("stopped")
			return nil
		},
	})
}
