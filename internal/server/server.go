package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"supaboard/internal/config"
	"supaboard/internal/database"
	"supaboard/internal/handlers"
	"supaboard/internal/middlewares"
	"supaboard/internal/repositories"
	"supaboard/internal/routes"
	"supaboard/internal/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	rdb    *redis.Client
	http   *http.Server
}

// Bootstrap makes sure the application database exists, connects to it and
// applies the migrations.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	if err := database.EnsureDatabaseExists(ctx, cfg.Database, logger); err != nil {
		return nil, err
	}
	db, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(ctx, db, logger); err != nil {
		database.Close(db, logger)
		return nil, err
	}
	return db, nil
}

// ConnectRedis opens the session store client and fails fast when Redis is
// unreachable.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	logger.Info("Connected to Redis", zap.String("addr", cfg.Addr))
	return rdb, nil
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	db, err := Bootstrap(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	rdb, err := ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		database.Close(db, logger)
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		db:     db,
		rdb:    rdb,
	}
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s, nil
}

// router wires repositories, services and handlers.
func (s *Server) router() *gin.Engine {
	userRepo := repositories.NewUserRepository(s.db)
	sessionRepo := repositories.NewSessionRepository(s.rdb)
	projectRepo := repositories.NewProjectRepository(s.db)
	databaseRepo := repositories.NewDatabaseRepository(s.db)
	tableRepo := repositories.NewTableRepository(s.db)

	authService := services.NewAuthService(userRepo, sessionRepo, []byte(s.cfg.Session.Secret), s.logger)
	userService := services.NewUserService(userRepo, s.logger)
	projectService := services.NewProjectService(projectRepo, s.logger)
	databaseService := services.NewDatabaseService(projectRepo, databaseRepo, s.logger)
	tableService := services.NewTableService(projectRepo, databaseRepo, tableRepo, s.logger)
	schemaService := services.NewSchemaService(projectRepo, databaseRepo, s.logger)

	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, s.cfg.IsProduction()),
		User:     handlers.NewUserHandler(userService),
		Project:  handlers.NewProjectHandler(projectService),
		Database: handlers.NewDatabaseHandler(projectService, databaseService),
		Table:    handlers.NewTableHandler(tableService),
		Schema:   handlers.NewSchemaHandler(schemaService),
	}

	return NewRouter(s.cfg, s.logger, h, middlewares.Authenticate(authService, s.logger))
}

// NewRouter builds the gin engine with CORS, recovery and request logging.
func NewRouter(cfg *config.Config, logger *zap.Logger, h routes.Handlers, authenticate gin.HandlerFunc) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router, h, authenticate)
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("Server exited")
	return nil
}

func (s *Server) Close() {
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			s.logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	database.Close(s.db, s.logger)
}
