package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roster/roster/internal/config"
	"github.com/roster/roster/internal/users"
)

// AppState holds all application services
type AppState struct {
	UserStore   users.UserStore
	UserService users.UserService
	Logger      *zap.Logger
	Config      *config.Config
}

func main() {
	// Load configuration
	config.Load()

	// Initialize logger with config
	logger := initLogger()
	logger.Info("Configuration loaded", zap.String("source", "config.Load()"))

	// Initialize application state
	ctx := context.Background()
	as, err := newAppState(ctx, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	// Create HTTP server
	router := setupRouter(as)

	// Server configuration from config
	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(as, server, logger)

	// Start server
	logger.Info("Starting Roster server",
		zap.String("address", addr),
		zap.String("store_driver", config.Store().Driver))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state. The user
// store is constructed once here and shared read-only across all request
// handlers for the process lifetime.
func newAppState(ctx context.Context, logger *zap.Logger) (*AppState, error) {
	store, err := newUserStore(ctx, logger)
	if err != nil {
		return nil, err
	}

	return &AppState{
		UserStore:   store,
		UserService: users.NewUserService(store),
		Logger:      logger,
		Config:      config.Get(),
	}, nil
}

// newUserStore selects the store backend from configuration. A missing
// connection setting is a startup error, never a per-request one.
func newUserStore(ctx context.Context, logger *zap.Logger) (users.UserStore, error) {
	switch driver := config.Store().Driver; driver {
	case "mongo":
		mongoConfig := config.Mongo()
		if mongoConfig.URI == "" {
			return nil, fmt.Errorf("mongo URI is required - please configure mongo.uri or set ROSTER_MONGO_URI")
		}

		logger.Info("Connecting to MongoDB",
			zap.String("database", mongoConfig.Database),
			zap.String("collection", mongoConfig.Collection))

		return users.NewMongoStore(ctx,
			mongoConfig.URI,
			mongoConfig.Database,
			mongoConfig.Collection,
			time.Duration(mongoConfig.ConnectTimeoutSeconds)*time.Second)
	case "postgres":
		pgConfig := config.Postgres()

		logger.Info("Connecting to PostgreSQL",
			zap.String("host", pgConfig.Host),
			zap.Int("port", pgConfig.Port),
			zap.String("database", pgConfig.Database),
			zap.String("user", pgConfig.User))

		return users.NewPostgresStore(ctx, pgConfig.DSN(), pgConfig.MaxOpenConnections)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	// Set log level
	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func setupRouter(as *AppState) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add CORS middleware
	router.Use(cors.Default())

	// Add logging middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		err := as.UserStore.HealthCheck(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"services": gin.H{
				"database": "healthy",
			},
		})
	})

	// User CRUD routes
	userHandlers := users.NewUserHandlers(as.UserService, as.Logger)
	userHandlers.RegisterRoutes(router)

	return router
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		// Create context with timeout for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Shutdown server
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		// Close the user store
		if err := as.UserStore.Close(ctx); err != nil {
			logger.Error("Error closing user store", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}
