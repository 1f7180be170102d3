package server

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"

	app "github.com/kode4food/flowcomm"
	"github.com/kode4food/flowcomm/internal/events"
	"github.com/kode4food/flowcomm/pkg/api"
	"github.com/kode4food/flowcomm/pkg/flow"
	"github.com/kode4food/flowcomm/pkg/util"
)

// Server implements the HTTP API server for a flow registry
type Server struct {
	flows   *flow.Registry
	hub     *events.Hub
	sockets util.Set[*Client]
	mu      sync.Mutex
	sockMu  sync.Mutex
}

var (
	// ErrInvalidJSON is returned when a request body cannot be decoded
	ErrInvalidJSON = errors.New("invalid JSON")
)

// NewServer creates a new HTTP API server for reg. The hub's interceptor is
// registered on reg so that WebSocket clients can follow its transitions
func NewServer(reg *flow.Registry, hub *events.Hub) *Server {
	reg.AddInterceptor(hub.Interceptor())
	return &Server{
		flows:   reg,
		hub:     hub,
		sockets: util.Set[*Client]{},
	}
}

// SetupRoutes configures and returns the HTTP router with all API endpoints
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return slog.Default()
		}),
	))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set(
			"Access-Control-Allow-Methods",
			"GET, POST, PUT, DELETE, OPTIONS",
		)
		c.Writer.Header().Set(
			"Access-Control-Allow-Headers",
			"Content-Type, Authorization",
		)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	router.GET("/health", s.handleHealth)
	router.GET("/location", s.handleLocation)
	router.GET("/active", s.handleActive)

	fl := router.Group("/flow")
	{
		fl.GET("", s.listFlows)
		fl.GET("/:name", s.getFlow)
		fl.POST("/:name", s.activateFlow)
		fl.DELETE("/:name", s.deactivateFlow)
		fl.PUT("/:name/data/:key", s.attachData)
		fl.POST("/:name/resolve", s.resolveFlow)
	}

	router.GET("/ws", s.handleWebSocket)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Service: app.Name,
		Version: app.Version,
		Status:  "healthy",
	})
}

func (s *Server) handleLocation(c *gin.Context) {
	var res api.LocationResponse
	s.withRegistry(func(r *flow.Registry) {
		nav := r.Navigator()
		res.URL = nav.CurrentURL()
		if h, ok := nav.(*flow.History); ok {
			res.Entries = h.Entries()
		}
	})
	c.JSON(http.StatusOK, res)
}

func (s *Server) withRegistry(fn func(*flow.Registry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.flows)
}

func (s *Server) registerWebSocket(c *Client) {
	s.sockMu.Lock()
	defer s.sockMu.Unlock()
	s.sockets.Add(c)
}

func (s *Server) unregisterWebSocket(c *Client) {
	s.sockMu.Lock()
	defer s.sockMu.Unlock()
	s.sockets.Remove(c)
}

// CloseWebSockets closes all active WebSocket connections.
func (s *Server) CloseWebSockets() {
	s.sockMu.Lock()
	conns := make([]*Client, 0, len(s.sockets))
	for c := range s.sockets {
		conns = append(conns, c)
	}
	s.sockMu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}

func writeError(c *gin.Context, status int, err error) {
	c.JSON(status, api.ErrorResponse{
		Error:  err.Error(),
		Status: status,
	})
}
