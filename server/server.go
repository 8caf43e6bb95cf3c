// Package server exposes single-image text extraction over HTTP.
package server

import (
	"io"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/papercomputeco/glimpse/pkg/datauri"
	"github.com/papercomputeco/glimpse/pkg/extract"
	"github.com/papercomputeco/glimpse/pkg/llm"
)

// Server accepts one uploaded image per request and answers with the
// model's text for it. It holds no state between requests.
type Server struct {
	config    Config
	extractor *extract.Extractor
	logger    *zap.Logger
	server    *fiber.App
}

// ExtractResponse is the body returned by POST /api/extract.
type ExtractResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

// New creates a new Server.
func New(config Config, extractor *extract.Extractor, logger *zap.Logger) *Server {
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = DefaultMaxUploadBytes
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		BodyLimit:             config.MaxUploadBytes,
	})

	s := &Server{
		config:    config,
		extractor: extractor,
		logger:    logger,
		server:    app,
	}

	app.Post("/api/extract", s.handleExtract)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return s
}

// Run starts the server on the configured listening address.
func (s *Server) Run() error {
	s.logger.Info("starting extract server",
		zap.String("listen", s.config.ListenAddr),
		zap.String("model", s.extractor.Options().Model),
	)

	return s.server.Listen(s.config.ListenAddr)
}

// RunWithListener serves on an already-bound listener.
func (s *Server) RunWithListener(listener net.Listener) error {
	s.logger.Info("starting extract server",
		zap.String("listen", listener.Addr().String()),
		zap.String("model", s.extractor.Options().Model),
	)

	return s.server.Listener(listener)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}

// handleExtract reads the multipart "file" field, encodes it as a data URI
// and runs one completion. An optional "prompt" field replaces the
// instruction for this request only.
func (s *Server) handleExtract(c *fiber.Ctx) error {
	startTime := time.Now()
	requestID := uuid.NewString()
	log := s.logger.With(zap.String("request_id", requestID))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Debug("missing upload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "multipart field \"file\" is required"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		log.Error("failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "could not read upload"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		log.Error("failed to read upload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "could not read upload"})
	}

	uri := datauri.FromBytes(fileHeader.Filename, data)
	log.Debug("received upload",
		zap.String("filename", fileHeader.Filename),
		zap.String("mime", datauri.MIMEType(fileHeader.Filename)),
		zap.Int("bytes", len(data)),
	)

	content, err := s.extractor.RunURIWithPrompt(c.Context(), uri, c.FormValue("prompt"))
	if err != nil {
		log.Error("extraction failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: "upstream request failed"})
	}

	log.Info("extracted text",
		zap.String("filename", fileHeader.Filename),
		zap.Duration("duration", time.Since(startTime)),
	)

	c.Set("X-Request-ID", requestID)
	return c.JSON(ExtractResponse{
		Content: content,
		Model:   s.extractor.Options().Model,
	})
}
