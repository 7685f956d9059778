package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ytget/ytdlp-gui/internal/backend"
	"github.com/ytget/ytdlp-gui/internal/store"
	"github.com/ytget/ytdlp-gui/internal/validate"
)

// Download results recorded in metrics
const (
	resultSuccess   = "success"
	resultFailed    = "failed"
	resultCancelled = "cancelled"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// VersionResponse describes yt-dlp and the application
type VersionResponse struct {
	Version    string `json:"version"`
	Source     string `json:"source"`
	AppVersion string `json:"app_version"`
}

// DownloadRequest starts a download
type DownloadRequest struct {
	URL     string `json:"url" binding:"required"`
	Quality string `json:"quality"`
}

// DownloadResponse reports how a download ended
type DownloadResponse struct {
	Message   string `json:"message"`
	Cancelled bool   `json:"cancelled,omitempty"`
}

// DownloadStatus reports whether a download is running
type DownloadStatus struct {
	Active bool   `json:"active"`
	URL    string `json:"url,omitempty"`
}

// activeDownloader is implemented by bridges that know which download runs
type activeDownloader interface {
	ActiveDownload() (string, bool)
}

var _ activeDownloader = (*backend.Service)(nil)

// LocationRequest changes the download location
type LocationRequest struct {
	Path string `json:"path" binding:"required"`
}

// LocationResponse reports the download location
type LocationResponse struct {
	Path string `json:"path"`
}

func (s *Server) handleVersion() gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := s.bridge.YtdlpVersion(c.Request.Context())
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, VersionResponse{
			Version:    info.Version,
			Source:     string(info.Source),
			AppVersion: s.bridge.AppVersion(),
		})
	}
}

func (s *Server) handleInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		url, ok := videoURL(c)
		if !ok {
			return
		}
		info, err := s.bridge.VideoInfo(c.Request.Context(), url)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func (s *Server) handleFormats() gin.HandlerFunc {
	return func(c *gin.Context) {
		url, ok := videoURL(c)
		if !ok {
			return
		}
		formats, err := s.bridge.VideoFormats(c.Request.Context(), url)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, formats)
	}
}

// handleDownload blocks until the download ends. Output is streamed over the websocket.
func (s *Server) handleDownload() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DownloadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		req.URL = strings.TrimSpace(req.URL)
		if !validate.IsValidVideoURL(req.URL) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: store.MsgInvalidURL})
			return
		}

		if !s.beginDownload() {
			c.JSON(http.StatusConflict, ErrorResponse{Error: backend.ErrDownloadInProgress.Error()})
			return
		}
		defer s.endDownload()

		// the download outlives a closed browser tab; use /api/cancel to stop it
		ctx := context.WithoutCancel(c.Request.Context())
		msg, err := s.bridge.Download(ctx, req.URL, req.Quality)
		switch {
		case err == nil:
			s.metrics.downloads.WithLabelValues(resultSuccess).Inc()
			c.JSON(http.StatusOK, DownloadResponse{Message: msg})
		case errors.Is(err, backend.ErrDownloadCancelled):
			s.metrics.downloads.WithLabelValues(resultCancelled).Inc()
			c.JSON(http.StatusOK, DownloadResponse{Message: store.StatusCancelled, Cancelled: true})
		default:
			s.metrics.downloads.WithLabelValues(resultFailed).Inc()
			s.fail(c, err)
		}
	}
}

func (s *Server) handleDownloadStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ad, ok := s.bridge.(activeDownloader); ok {
			url, active := ad.ActiveDownload()
			c.JSON(http.StatusOK, DownloadStatus{Active: active, URL: url})
			return
		}
		s.mu.Lock()
		active := s.downloading
		s.mu.Unlock()
		c.JSON(http.StatusOK, DownloadStatus{Active: active})
	}
}

func (s *Server) handleCancel() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.bridge.CancelDownload(); err != nil {
			s.fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) handleGetLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		dir, err := s.bridge.DownloadLocation()
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, LocationResponse{Path: dir})
	}
}

func (s *Server) handleSetLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LocationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if err := s.bridge.SetDownloadLocation(req.Path); err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, LocationResponse{Path: req.Path})
	}
}

// videoURL reads and validates the url query parameter, answering 400 when invalid
func videoURL(c *gin.Context) (string, bool) {
	url := strings.TrimSpace(c.Query("url"))
	if !validate.IsValidVideoURL(url) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: store.MsgInvalidURL})
		return "", false
	}
	return url, true
}

// fail answers with the status matching err
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Backend request failed")
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, backend.ErrDownloadInProgress):
		return http.StatusConflict
	case errors.Is(err, backend.ErrInvalidLocation):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
