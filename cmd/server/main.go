// @title        Auth Service API
// @version      1.0
// @description  Password based registration and login issuing signed session tokens.
// @BasePath     /
//
// @securityDefinitions.apikey  AuthToken
// @in                          header
// @name                        auth-token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/api"
	"github.com/99minutos/auth-service/internal/api/handler"
	"github.com/99minutos/auth-service/internal/core/ports"
	"github.com/99minutos/auth-service/internal/core/service"
	"github.com/99minutos/auth-service/internal/infrastructure/config"
	"github.com/99minutos/auth-service/internal/infrastructure/crypto"
	"github.com/99minutos/auth-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/auth-service/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-service/internal/infrastructure/token"
	"github.com/99minutos/auth-service/internal/pkg/validation"
	"github.com/99minutos/auth-service/pkg/logger"
)

const serviceName = "auth-service"

func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Str("service", serviceName).Logger()
	cfg := config.Load(bootLog)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	// Redis only backs the registration guard; without it the unique index
	// still arbitrates, so an unreachable Redis is not fatal.
	var (
		guard          ports.RegistrationGuard
		optionalChecks map[string]handler.DependencyCheck
	)
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, registration guard disabled")
	} else {
		defer rdb.Close()
		guard = redis.NewRegistrationGuard(rdb, cfg.Redis.RegistrationLockTTL)
		optionalChecks = map[string]handler.DependencyCheck{
			"redis": func(ctx context.Context) error { return pingRedis(ctx, rdb) },
		}
	}

	users := mongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	tokens := token.NewJWTIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(
		users,
		crypto.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
		validation.New(),
		guard,
		log,
	)

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		Tokens:      tokens,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongo.Ping(ctx, db) },
		},
		OptionalChecks: optionalChecks,
		Logger:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func pingRedis(ctx context.Context, rdb *goredis.Client) error {
	return rdb.Ping(ctx).Err()
}
