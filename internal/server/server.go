// Package server exposes the portal commands to the surrounding
// application shell as a local HTTP surface. Each route maps 1:1 to a
// session-manager or settings operation; errors cross the boundary as
// human-readable strings.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uomtools/sisgate/internal/config"
	"github.com/uomtools/sisgate/internal/logging"
	"github.com/uomtools/sisgate/internal/monitoring"
	"github.com/uomtools/sisgate/internal/portal"
	"github.com/uomtools/sisgate/internal/settings"
)

// Server wraps the HTTP surface and its dependencies.
type Server struct {
	router   *gin.Engine
	http     *http.Server
	manager  *portal.Manager
	settings *settings.Store
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// New builds the command surface.
func New(cfg *config.Config, manager *portal.Manager, store *settings.Store, log *logging.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := monitoring.New()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(accessLog(log))
	router.Use(monitoring.Middleware(metrics))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.Origins,
		AllowMethods: []string{"GET", "POST", "PUT"},
		AllowHeaders: []string{"Content-Type"},
		// The desktop shell's webview origin uses its own scheme.
		CustomSchemas: []string{"tauri://"},
		MaxAge:        12 * time.Hour,
	}))

	s := &Server{
		router:   router,
		manager:  manager,
		settings: store,
		metrics:  metrics,
		log:      log,
	}

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.POST("/session/login", s.login)
	router.POST("/session/restore", s.restore)
	router.POST("/session/logout", s.logout)

	router.GET("/student", s.studentInfo)
	router.GET("/student/grades", s.grades)
	router.GET("/student/grades/stats/:courseSyllabusId/:examPeriodId", s.gradeStats)

	router.GET("/settings/tray", s.getKeepInTray)
	router.PUT("/settings/tray", s.setKeepInTray)

	s.http = &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}
	return s
}

// Handler exposes the router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("command surface listening", zap.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
