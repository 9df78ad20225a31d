// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blad_backend/internal/auth"
	"blad_backend/internal/config"
	"blad_backend/internal/donation"
	"blad_backend/internal/middleware"
	"blad_backend/internal/shared"
	"blad_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IndexEnsurer is implemented by repositories that own collection indexes.
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger
	indexes    []IndexEnsurer

	// Middleware instances
	authMW      gin.HandlerFunc
	adminRoleMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService shared.TokenService,
	accounts shared.AccountProvider,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	donationHandler *donation.Handler,
	userRepo user.Repository,
	donationRepo donation.Repository,
) (*Server, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	// Recovered panics are attached to the context and rendered by ErrorHandler.
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		_ = c.Error(fmt.Errorf("panic: %v", recovered))
		c.Abort()
	}))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	if len(corsConfig.AllowOrigins) == 0 {
		return nil, errors.New("app: at least one CORS origin is required")
	}
	router.Use(cors.New(corsConfig))

	router.NoRoute(middleware.NoRoute)
	router.NoMethod(middleware.NoMethod)
	router.HandleMethodNotAllowed = true

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RequireRole(accounts, shared.RoleAdmin, logger.Named("RoleMiddleware"))

	// --- Setup Routes ---
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Blad is running")
	})
	authHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router, authMW, adminRoleMW)
	donationHandler.RegisterRoutes(router, authMW, adminRoleMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:  httpServer,
		router:      router,
		cfg:         cfg,
		logger:      logger,
		indexes:     []IndexEnsurer{userRepo, donationRepo},
		authMW:      authMW,
		adminRoleMW: adminRoleMW,
	}, nil
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// EnsureIndexes creates the collection indexes the handlers rely on.
func (s *Server) EnsureIndexes(ctx context.Context) error {
	for _, idx := range s.indexes {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.EnsureIndexes(ctx); err != nil {
		s.logger.Error("Failed to ensure collection indexes", zap.Error(err))
		return err
	}

	s.logger.Info("Blad is listening",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	return s.httpServer.Shutdown(ctx)
}
