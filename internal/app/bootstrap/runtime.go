// Package bootstrap assembles the service from its adapters and runs it.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/adapters/cache"
	httpadapter "github.com/akararkan/khi-backend-sub000/internal/adapters/http"
	"github.com/akararkan/khi-backend-sub000/internal/adapters/postgres"
	"github.com/akararkan/khi-backend-sub000/internal/adapters/security"
	"github.com/akararkan/khi-backend-sub000/internal/application"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const blacklistPurgeInterval = time.Hour

// Run wires everything together and blocks until the context is cancelled or
// a termination signal arrives.
func Run(ctx context.Context, cfg Config) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(cfg.Database.URL, log)
	if err != nil {
		return err
	}
	if err := postgres.RunMigrations(db, log); err != nil {
		return err
	}

	redisClient, err := cache.Connect(ctx, cfg.Redis.URL, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	repos := postgres.NewRepositories(db)
	revocationCache := cache.NewRedisRevocationCache(redisClient)

	signer, err := security.NewJWTSigner([]byte(cfg.JWTSecret), cfg.Auth.TokenIssuer, cfg.Auth.TokenAudience)
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	service := application.NewService(application.Dependencies{
		Accounts:      repos.Accounts,
		Sessions:      repos.Sessions,
		Blacklist:     repos.Blacklist,
		LoginAttempts: repos.LoginAttempts,
		Cache:         revocationCache,
		Hasher:        hasher,
		Signer:        signer,
		Logger:        log,
	}, application.Config{
		TokenIssuer:      cfg.Auth.TokenIssuer,
		TokenAudience:    cfg.Auth.TokenAudience,
		DefaultRole:      cfg.Auth.DefaultRole,
		TokenTTL:         cfg.Auth.TokenTTL.Std(),
		FailedThreshold:  cfg.Auth.FailedThreshold,
		LockoutCooldown:  cfg.Auth.LockoutCooldown.Std(),
		ResetTokenTTL:    cfg.Auth.ResetTokenTTL.Std(),
		PasswordLifetime: cfg.Auth.PasswordLifetime.Std(),
	})

	ready := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpadapter.NewServer(service, log, ready).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)

	errCh := make(chan error, 2)

	go func() {
		log.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			errCh <- fmt.Errorf("grpc listen: %w", err)
			return
		}
		log.Info("grpc health server listening", "addr", cfg.GRPC.Addr)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	go purgeLoop(ctx, service, log)

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		stop()
		log.Error("server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	grpcServer.GracefulStop()

	log.Info("shutdown complete")
	return nil
}

// purgeLoop periodically removes blacklist rows for tokens that have expired
// on their own.
func purgeLoop(ctx context.Context, service *application.Service, log *slog.Logger) {
	ticker := time.NewTicker(blacklistPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := service.PurgeExpiredBlacklist(ctx); err != nil {
				log.Warn("blacklist purge failed", "error", err)
			}
		}
	}
}
