package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-project-api/internal/auth"
	"github.com/yukikurage/task-project-api/internal/config"
	"github.com/yukikurage/task-project-api/internal/dto"
	"github.com/yukikurage/task-project-api/internal/logger"
	"github.com/yukikurage/task-project-api/internal/metrics"
	"github.com/yukikurage/task-project-api/internal/middleware"
	"github.com/yukikurage/task-project-api/internal/repository"
	"github.com/yukikurage/task-project-api/internal/services"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
// m may be nil when metrics are disabled.
func NewRouter(cfg *config.Config, db *gorm.DB, log *logger.Logger, m *metrics.Metrics) *gin.Engine {
	if err := dto.RegisterValidators(); err != nil {
		log.Errorw("Failed to register validators", "error", err)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	tokens := auth.NewJWTService(auth.JWTConfig{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
		Issuer:    cfg.JWT.Issuer,
	})
	authService := services.NewAuthService(userRepo, auth.NewPasswordHasher(cfg.Security.BcryptCost), tokens)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo)

	authHandler := NewAuthHandler(authService, tokens, log)
	taskHandler := NewTaskHandler(taskService, log)
	projectHandler := NewProjectHandler(projectService, log)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(log), middleware.RequestLogger(log))
	if m != nil {
		r.Use(middleware.Metrics(m))
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	r.Use(middleware.JWTAuth(tokens, authService, log, m))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": cfg.App.Name + " is running",
		})
	})

	limiter := middleware.NewIPRateLimiter(cfg.Security.AuthRateLimit, cfg.Security.AuthRateBurst, cfg.Security.AuthRateTTL)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", middleware.RateLimit(limiter), authHandler.Register)
			authRoutes.POST("/login", middleware.RateLimit(limiter), authHandler.Login)
			authRoutes.GET("/me", middleware.RequireAuth(), authHandler.Me)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/tasks", projectHandler.ListProjectTasks)
		}
	}

	return r
}
