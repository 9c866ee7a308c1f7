// Package wire provides dependency injection for the campuscare application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/campuscare/internal/adapters/cli"
	"github.com/example/campuscare/internal/adapters/filesystem"
	"github.com/example/campuscare/internal/adapters/gemini"
	"github.com/example/campuscare/internal/adapters/memory"
	"github.com/example/campuscare/internal/adapters/redis"
	"github.com/example/campuscare/internal/adapters/sqlite"
	"github.com/example/campuscare/internal/adapters/token"
	"github.com/example/campuscare/internal/app"
	"github.com/example/campuscare/internal/config"
	"github.com/example/campuscare/internal/db"
	"github.com/example/campuscare/internal/logging"
	"github.com/example/campuscare/internal/ports/primary"
	"github.com/example/campuscare/internal/ports/secondary"
)

// ErrNoSessionSecret is returned when no signing secret is configured.
var ErrNoSessionSecret = errors.New("session secret not configured: run 'campuscare init' or set CAMPUSCARE_SESSION_SECRET")

// Services holds the wired application.
type Services struct {
	Complaints  primary.ComplaintService
	Escalations primary.EscalationService
	Analytics   primary.AnalyticsService
	Auth        *app.AuthServiceImpl
	Sessions    secondary.SessionStore
	Logger      *zap.Logger

	kv secondary.KVStore
}

// Close flushes the logger and releases the store connections.
func (s *Services) Close() error {
	_ = s.Logger.Sync()
	if err := s.kv.Close(); err != nil {
		return err
	}
	return db.Close()
}

// Build wires every adapter and service from cfg.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SessionSecret == "" {
		return nil, ErrNoSessionSecret
	}

	// Accounts always live in sqlite; complaints use the configured backend.
	database, err := db.GetDB(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	kv, err := newKVStore(ctx, cfg, database)
	if err != nil {
		return nil, err
	}

	tokens, err := token.NewJWTTokens(cfg.SessionSecret, cfg.SessionTTL.Duration)
	if err != nil {
		kv.Close()
		return nil, err
	}

	var remote secondary.Classifier
	if cfg.GeminiAPIKey != "" {
		remote = gemini.NewClassifier(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		logger.Debug("no classifier API key; keyword rules only")
	}

	store := app.NewComplaintStore(ctx, kv, logger)
	classifier := app.NewClassificationService(remote, cfg.ClassifierTimeout.Duration, logger)
	complaints := app.NewComplaintService(store, classifier, logger)

	return &Services{
		Complaints:  complaints,
		Escalations: app.NewEscalationService(complaints, store),
		Analytics:   app.NewAnalyticsService(store),
		Auth:        app.NewAuthService(sqlite.NewAccountDirectory(database), tokens),
		Sessions:    filesystem.NewSessionFile(cfg.SessionPath()),
		Logger:      logger,
		kv:          kv,
	}, nil
}

func newKVStore(ctx context.Context, cfg *config.Config, database *sql.DB) (secondary.KVStore, error) {
	switch cfg.Store {
	case config.StoreRedis:
		return redis.NewKVStore(ctx, redis.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
	case config.StoreMemory:
		return memory.NewKVStore(), nil
	default:
		return sqlite.NewKVStore(database), nil
	}
}

var (
	services *Services
	initErr  error
	once     sync.Once
)

// Get returns the singleton Services built from the config in the working directory.
func Get() (*Services, error) {
	once.Do(initServices)
	return services, initErr
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := os.Getwd()
	if err != nil {
		initErr = fmt.Errorf("failed to get working directory: %w", err)
		return
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		initErr = err
		return
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		initErr = err
		return
	}
	services, initErr = Build(context.Background(), cfg, logger)
}

// ComplaintAdapter returns a new ComplaintAdapter writing to the given output.
// Each call creates a new adapter (adapters are stateless translators).
func ComplaintAdapter(out io.Writer) (*cliadapter.ComplaintAdapter, error) {
	s, err := Get()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewComplaintAdapter(s.Complaints, s.Escalations, out), nil
}

// AuthAdapter returns a new AuthAdapter writing to the given output.
func AuthAdapter(out io.Writer) (*cliadapter.AuthAdapter, error) {
	s, err := Get()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewAuthAdapter(s.Auth, s.Sessions, out), nil
}

// AnalyticsAdapter returns a new AnalyticsAdapter writing to the given output.
func AnalyticsAdapter(out io.Writer) (*cliadapter.AnalyticsAdapter, error) {
	s, err := Get()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewAnalyticsAdapter(s.Analytics, out), nil
}
