// Package server exposes report generation over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/archive"
	"github.com/lvillar/hospreport/backend"
	"github.com/lvillar/hospreport/reports"
	"github.com/lvillar/hospreport/server/middleware"
	"github.com/lvillar/hospreport/server/respond"
	"github.com/lvillar/hospreport/stats"
)

// DefaultMaxBatch caps the equipment batch endpoint when MaxBatch is unset.
const DefaultMaxBatch = 50

// maxBody limits JSON request bodies, photos included.
const maxBody = 20 << 20

// Server holds the collaborators of the HTTP handlers.
type Server struct {
	Source   backend.Source
	Reports  *reports.Generator
	Stats    *stats.Report
	Archive  archive.Store // nil keeps nothing
	Logger   *slog.Logger
	MaxBatch int
	Now      func() time.Time
}

// Router builds the gin engine with middleware and routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(s.logger()),
		middleware.Recovery(s.logger()),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")
	api.POST("/reports/equipment", s.equipmentFromBody)
	api.GET("/reports/equipment/:id", s.equipmentByID)
	api.POST("/reports/equipment/batch", s.equipmentBatch)
	api.POST("/reports/training", s.trainingFromBody)
	api.GET("/reports/training/:id", s.trainingByID)
	api.GET("/reports/technicians/:id", s.technician)
	api.POST("/reports/template", s.template)
	api.POST("/labels", s.labels)
	api.GET("/reports/archive/*key", s.archived)
	return r
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Server) maxBatch() int {
	if s.MaxBatch <= 0 {
		return DefaultMaxBatch
	}
	return s.MaxBatch
}

// backendContext forwards the caller's bearer token to the backend.
func backendContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok && strings.TrimSpace(token) != "" {
		ctx = backend.WithToken(ctx, strings.TrimSpace(token))
	}
	return ctx
}

// backendError maps a record lookup failure to 404 or 502.
func backendError(c *gin.Context, err error) {
	if errors.Is(err, backend.ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
		return
	}
	respond.Error(c, http.StatusBadGateway, "backend_error", "could not load the record from the backend", nil)
}

// generationError maps a rendering failure. Contract violations in the
// caller's document are 400; anything else is a generic 500.
func generationError(c *gin.Context, err error) {
	for _, target := range []error{
		hospreport.ErrColumnMismatch,
		hospreport.ErrTableTooWide,
		hospreport.ErrInvalidColumn,
		hospreport.ErrUnknownContent,
	} {
		if errors.Is(err, target) {
			respond.Error(c, http.StatusBadRequest, "invalid_document", err.Error(), nil)
			return
		}
	}
	respond.Error(c, http.StatusInternalServerError, "generation_failed", "report generation failed", nil)
}

// send archives data when a store is configured and returns it as a download.
// An archive failure is logged; the caller still gets the report.
func (s *Server) send(c *gin.Context, kind, filename, id string, data []byte) {
	if s.Archive != nil {
		key := archive.Key(kind, filename, s.now())
		if _, err := s.Archive.Put(c.Request.Context(), key, "application/pdf", bytes.NewReader(data)); err != nil {
			s.logger().Warn("archive.put",
				"request_id", middleware.RequestIDFromContext(c),
				"key", key,
				"error", err,
			)
		} else {
			c.Header("X-Archive-Key", key)
		}
	}
	if id != "" {
		c.Set("reportId", id)
		c.Header("X-Report-Id", id)
	}
	respond.PDF(c, filename, data)
}

func bindJSON(c *gin.Context, out any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
	if err := c.ShouldBindJSON(out); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return false
	}
	return true
}
