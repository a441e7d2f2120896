package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-project-api/internal/auth"
	"github.com/yukikurage/task-project-api/internal/config"
	"github.com/yukikurage/task-project-api/internal/database"
	"github.com/yukikurage/task-project-api/internal/handlers"
	"github.com/yukikurage/task-project-api/internal/logger"
	"github.com/yukikurage/task-project-api/internal/metrics"
	"github.com/yukikurage/task-project-api/internal/models"
	"github.com/yukikurage/task-project-api/internal/repository"
	"github.com/yukikurage/task-project-api/internal/services"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(cfg *config.Config, db *gorm.DB, log *logger.Logger) error {
				return database.Migrate(db, log)
			})
		},
	}
}

func newUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user, optionally with the ADMIN role",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")
			if username == "" || password == "" {
				return errors.New("username and password are required")
			}

			return withDatabase(func(cfg *config.Config, db *gorm.DB, log *logger.Logger) error {
				authService := services.NewAuthService(
					repository.NewUserRepository(db),
					auth.NewPasswordHasher(cfg.Security.BcryptCost),
					nil,
				)
				user, err := authService.Register(cmd.Context(), services.RegisterInput{
					Username: username,
					Password: password,
					Role:     models.UserRole(role),
				})
				if err != nil {
					return err
				}
				log.Infow("User created", "user_id", user.ID, "username", user.Username, "role", user.Role)
				return nil
			})
		},
	}
	createCmd.Flags().String("username", "", "Username (required)")
	createCmd.Flags().String("password", "", "Password (required)")
	createCmd.Flags().String("role", string(models.RoleUser), "Role (USER or ADMIN)")

	userCmd.AddCommand(createCmd)
	return userCmd
}

func withDatabase(fn func(*config.Config, *gorm.DB, *logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	db, err := database.Connect(cfg.Database, cfg.App, appLogger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return fn(cfg, db, appLogger)
}

func runServer() error {
	return withDatabase(func(cfg *config.Config, db *gorm.DB, appLogger *logger.Logger) error {
		gin.SetMode(cfg.Server.GinMode)

		if err := database.Migrate(db, appLogger); err != nil {
			return err
		}

		var m *metrics.Metrics
		if cfg.Metrics.Enabled {
			m = metrics.New()
		}

		srv := &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      handlers.NewRouter(cfg, db, appLogger, m),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			appLogger.Infow("Server starting",
				"addr", srv.Addr,
				"environment", cfg.App.Environment,
				"database", cfg.Database.Driver,
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		appLogger.Info("Server stopped")
		return nil
	})
}
