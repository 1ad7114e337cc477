// Package server exposes the parsing pipeline over HTTP. Responses follow
// the envelope the storefront backend has always used:
// {"success": true, "data": ...} on success and
// {"success": false, "message": ...} on caller errors.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studio360/invoice-parser/internal/common"
	"github.com/studio360/invoice-parser/internal/parser"
	"github.com/studio360/invoice-parser/internal/pipeline"
	"github.com/studio360/invoice-parser/internal/schema"
	"github.com/studio360/invoice-parser/internal/sheet"
)

type Server struct {
	pipe   *pipeline.Pipeline
	cfg    common.ServerConfig
	logger *slog.Logger
}

func New(pipe *pipeline.Pipeline, cfg common.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{pipe: pipe, cfg: cfg, logger: logger}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/invoices")
	api.POST("/parse", s.parseText)
	api.POST("/parse-file", s.parseFile)
	return r
}

type parseRequest struct {
	Text       string         `json:"text"`
	Structured map[string]any `json:"structured"`
}

func (s *Server) parseText(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	rec := s.pipe.Parse(req.Text, parser.Payload(req.Structured))
	s.respondRecord(c, rec)
}

func (s *Server) parseFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	if fh.Size > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success": false,
			"message": "file too large",
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.logger.Error("open upload failed", "error", err)
		internalError(c)
		return
	}
	defer f.Close()

	text, err := sheet.FlattenUpload(fh.Filename, f)
	if err != nil {
		s.logger.Warn("flatten upload failed", "filename", fh.Filename, "error", err)
		badRequest(c, "could not read uploaded file")
		return
	}

	// optional upstream structured payload riding along as a form field
	var payload parser.Payload
	if raw := c.PostForm("structured"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			badRequest(c, "invalid structured payload")
			return
		}
	}

	rec := s.pipe.Parse(text, payload)
	s.respondRecord(c, rec)
}

func (s *Server) respondRecord(c *gin.Context, rec parser.Record) {
	if s.cfg.ValidateResponses {
		if b, err := json.Marshal(rec); err == nil {
			if err := schema.ValidateRecordJSON(b); err != nil {
				s.logger.Warn("record failed schema self-check", "error", err)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rec})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "internal server error",
	})
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
