package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"boxmas/internal/infrastructure/cache"
	"boxmas/internal/infrastructure/config"
	"boxmas/internal/infrastructure/migration"
	"boxmas/internal/infrastructure/scheduler"
	"boxmas/internal/interfaces/cli/bootstrap"
	httpRouter "boxmas/internal/interfaces/http"
	"boxmas/internal/shared/goroutine"
	"boxmas/internal/shared/logger"
)

var (
	env         string
	configPath  string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the BoxMas HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	environment := bootstrap.ResolveEnv(env)

	app, err := bootstrap.Open(environment, configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	cfg, log := app.Config, app.Log

	log.Infow("starting server",
		"environment", cfg.Server.Mode,
		"database", cfg.Database.Driver,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.GinMode())
	gin.DefaultWriter = io.Discard

	if err := handleMigrations(app, log); err != nil {
		return err
	}

	redisClient := connectRedis(cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	router := httpRouter.NewRouter(app.DB, redisClient, cfg, log)
	router.SetupRoutes()

	schedulerManager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := schedulerManager.RegisterSessionCleanupJob(router.SessionCleanupJob(), cfg.Session.CleanupInterval()); err != nil {
		return fmt.Errorf("failed to register session cleanup job: %w", err)
	}
	schedulerManager.Start()

	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           router.GetEngine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := goroutine.Go(log, "http-server", func() error {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", gin.Mode())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infow("received signal, shutting down", "signal", sig.String())
	case err := <-serverErr:
		log.Errorw("server failed", "error", err)
		_ = schedulerManager.Stop()
		return fmt.Errorf("failed to start server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := schedulerManager.Stop(); err != nil {
		log.Errorw("failed to stop scheduler", "error", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(app *bootstrap.Env, log logger.Interface) error {
	manager := migration.NewManager(app.Config.Database.Driver, app.Config.Server.Mode)

	if autoMigrate {
		if app.Config.IsProduction() {
			log.Warnw("auto-migration is enabled in production")
		}
		if err := manager.Migrate(app.DB); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	version, err := manager.Version(app.DB)
	if err != nil {
		log.Infow("migration version unavailable", "strategy", manager.GetStrategy().GetName(), "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)
	return nil
}

// connectRedis returns nil when Redis is not needed or unreachable. The
// server then runs without rate limiting.
func connectRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		log.Warnw("redis unavailable, running in degraded mode",
			"address", cfg.Redis.GetAddr(),
			"error", err)
		return nil
	}

	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
	return client
}
