package web

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ytget/ytdlp-gui/internal/backend"
	"github.com/ytget/ytdlp-gui/internal/events"
	"github.com/ytget/ytdlp-gui/internal/logging"
)

//go:embed static/index.html
var indexHTML []byte

// Route paths
const (
	PathIndex    = "/"
	PathAPI      = "/api"
	PathVersion  = "/version"
	PathInfo     = "/info"
	PathFormats  = "/formats"
	PathDownload = "/download"
	PathCancel   = "/cancel"
	PathLocation = "/location"
	PathWS       = "/ws"
	PathMetrics  = "/metrics"
)

// Server timeouts
const (
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 5 * time.Second
)

// Server exposes a backend.Bridge over HTTP
type Server struct {
	bridge   backend.Bridge
	hub      *hub
	metrics  *metrics
	registry *prometheus.Registry
	engine   *gin.Engine
	logger   zerolog.Logger

	mu          sync.Mutex
	downloading bool
	unlisten    []events.Unlisten
}

// NewServer creates a server and subscribes it to the bridge events
func NewServer(bridge backend.Bridge) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		bridge:   bridge,
		hub:      newHub(),
		metrics:  newMetrics(registry),
		registry: registry,
		logger:   logging.Get("web"),
	}

	bus := bridge.Events()
	s.unlisten = []events.Unlisten{
		bus.Listen(events.TopicDownloadOutput, func(line string) {
			s.metrics.outputLines.Inc()
			s.hub.broadcast(newMessage(events.TopicDownloadOutput, line))
		}),
		bus.Listen(events.TopicDownloadError, func(msg string) {
			s.hub.broadcast(newMessage(events.TopicDownloadError, msg))
		}),
	}

	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET(PathIndex, handleIndex)
	router.GET(PathWS, s.handleWebSocket())
	router.GET(PathMetrics, gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := router.Group(PathAPI)
	{
		api.GET(PathVersion, s.handleVersion())
		api.GET(PathInfo, s.handleInfo())
		api.GET(PathFormats, s.handleFormats())
		api.GET(PathDownload, s.handleDownloadStatus())
		api.POST(PathDownload, s.handleDownload())
		api.POST(PathCancel, s.handleCancel())
		api.GET(PathLocation, s.handleGetLocation())
		api.PUT(PathLocation, s.handleSetLocation())
	}

	return router
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Web server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.Close()
	return srv.Shutdown(shutdownCtx)
}

// Close unsubscribes from the bridge and disconnects websocket clients
func (s *Server) Close() {
	s.mu.Lock()
	for _, fn := range s.unlisten {
		fn()
	}
	s.unlisten = nil
	s.mu.Unlock()

	s.hub.closeAll()
}

// beginDownload marks a download as running; false if one already is
func (s *Server) beginDownload() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.downloading {
		return false
	}
	s.downloading = true
	return true
}

func (s *Server) endDownload() {
	s.mu.Lock()
	s.downloading = false
	s.mu.Unlock()
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.observeRequest(route, c.Writer.Status())
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	}
}

func handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}
