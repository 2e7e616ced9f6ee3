// Package http is the thin local web shell around the pipeline: it
// triggers runs on a background worker and exposes the run log so a
// browser front end can follow progress. All business logic stays in
// the core packages.
package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/orchestrator"
	"github.com/baihuihang/delivery-statements/pkg/utils"
)

// Server hosts the web shell.
type Server struct {
	router *gin.Engine
	runs   *runHandler
	logger *zap.Logger
}

// NewServer creates the web shell around an orchestrator. logs is the
// append-only buffer the tee logger writes to.
func NewServer(orch *orchestrator.Orchestrator, logs *utils.LogBuffer, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		runs:   newRunHandler(orch, logs, logger),
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/runs", s.runs.startRun)
		api.GET("/runs/latest", s.runs.latestRun)
		api.GET("/logs", s.runs.logLines)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}

// Start blocks serving on host:port.
func (s *Server) Start(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	s.logger.Info("Web shell listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
