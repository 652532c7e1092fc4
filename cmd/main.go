package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AngelD89/holbertonschool-hbnb/config"
	"github.com/AngelD89/holbertonschool-hbnb/internal/auth"
	"github.com/AngelD89/holbertonschool-hbnb/internal/delivery"
	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
	"github.com/AngelD89/holbertonschool-hbnb/internal/repository"
	"github.com/AngelD89/holbertonschool-hbnb/internal/seed"
	"github.com/AngelD89/holbertonschool-hbnb/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var seedFile string

	cmd := &cobra.Command{
		Use:          "hbnb",
		Short:        "HBnB rental listing API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(seedFile)
		},
	}
	cmd.Flags().StringVar(&seedFile, "seed", "", "YAML fixtures applied at start-up (overrides SEED_FILE)")
	return cmd
}

func run(seedFile string) error {
	logger := setupLogger("info", "text")

	cfg := config.LoadConfig(logger)
	logger = setupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting HBnB Service...")

	gin.SetMode(cfg.GinMode)
	binding.EnableDecoderDisallowUnknownFields = true
	domain.SetPasswordCost(cfg.BcryptCost)

	facade := usecase.NewFacade(usecase.Repositories{
		Users:     repository.NewInMemoryRepository[*domain.User]("user", logger),
		Places:    repository.NewInMemoryRepository[*domain.Place]("place", logger),
		Amenities: repository.NewInMemoryRepository[*domain.Amenity]("amenity", logger),
		Reviews:   repository.NewInMemoryRepository[*domain.Review]("review", logger),
	}, logger)
	logger.Info("Repositories and facade initialized.")

	if cfg.AdminEmail != "" {
		if err := seed.EnsureAdmin(facade, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
			return err
		}
	}

	if seedFile == "" {
		seedFile = cfg.SeedFile
	}
	if seedFile != "" {
		fixtures, err := seed.Load(seedFile)
		if err != nil {
			return err
		}
		if err := seed.Apply(facade, fixtures, logger); err != nil {
			return err
		}
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	router := delivery.NewRouter(facade, tokens, logger)

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Signal listener started.")

	select {
	case err := <-serverErr:
		logger.Errorf("HTTP server failed: %v", err)
		return err
	case <-quit:
		logger.Warn("Shutdown signal received...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
		return err
	}
	logger.Info("HBnB Service shut down gracefully.")
	return nil
}

func setupLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
