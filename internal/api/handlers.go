// Package api exposes the email classifier over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/gin"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/extract"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/logging"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/textnorm"
)

const (
	fileField      = "file"
	emailTextField = "email_text"
	minTextRunes   = 3
	bytesPerMiB    = 1 << 20
)

// Analyzer classifies one email.
type Analyzer interface {
	Classify(ctx context.Context, text string) (*domain.Analysis, error)
}

// Extractor turns an uploaded file into text.
type Extractor interface {
	Extract(filename string, data []byte) (string, error)
}

// Options configures the handler.
type Options struct {
	MaxUploadBytes   int64
	EmailTypes       []string
	SentimentEnabled bool
}

// Handler handles HTTP requests for the email classifier API
type Handler struct {
	analyzer  Analyzer
	extractor Extractor
	opts      Options
	logger    logging.Logger
}

// NewHandler creates a new API handler
func NewHandler(analyzer Analyzer, extractor Extractor, opts Options, logger logging.Logger) *Handler {
	return &Handler{
		analyzer:  analyzer,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
	}
}

// Analyze handles POST /analyze
func (h *Handler) Analyze(c *gin.Context) {
	text, err := h.readEmail(c)
	if err != nil {
		h.respondInputError(c, err)
		return
	}

	if textnorm.RuneLen(text) < minTextRunes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.MsgTextTooShort})
		return
	}

	analysis, err := h.analyzer.Classify(c.Request.Context(), text)
	if err != nil {
		h.respondInputError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAnalyzeResponse(analysis))
}

// readEmail takes the text from an uploaded file, a JSON body or a form field, in that order.
func (h *Handler) readEmail(c *gin.Context) (string, error) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/") {
		fh, err := c.FormFile(fileField)
		switch {
		case err == nil && fh.Filename != "":
			return h.readUpload(fh)
		case err != nil && !errors.Is(err, http.ErrMissingFile):
			if infragin.IsBodyTooLarge(err) {
				return "", domain.ErrFileTooLarge
			}
			return "", fmt.Errorf("read upload: %w", domain.ErrInvalidRequest)
		}
		return c.PostForm(emailTextField), nil
	}

	if contentType == gin.MIMEJSON {
		var req AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if infragin.IsBodyTooLarge(err) {
				return "", domain.ErrFileTooLarge
			}
			if errors.Is(err, io.EOF) {
				return "", nil
			}
			return "", fmt.Errorf("decode json: %w", domain.ErrInvalidRequest)
		}
		return req.EmailText, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		if infragin.IsBodyTooLarge(err) {
			return "", domain.ErrFileTooLarge
		}
		return "", fmt.Errorf("parse form: %w", domain.ErrInvalidRequest)
	}
	return c.Request.PostForm.Get(emailTextField), nil
}

func (h *Handler) readUpload(fh *multipart.FileHeader) (string, error) {
	if h.opts.MaxUploadBytes > 0 && fh.Size > h.opts.MaxUploadBytes {
		return "", domain.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	h.logger.Debug("Upload received", "filename", fh.Filename, "bytes", len(data))
	return h.extractor.Extract(fh.Filename, data)
}

// respondInputError maps input errors to 400 (413 when oversize) and anything else to a
// redacted 500.
func (h *Handler) respondInputError(c *gin.Context, err error) {
	if inputErr, ok := domain.AsInputError(err); ok {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.logger.Debug("Request rejected", "reason", inputErr.Message)
		c.JSON(status, ErrorResponse{Error: inputErr.Message})
		return
	}

	h.logger.Error("Email analysis failed",
		"error", err,
		"request_id", c.GetString(infragin.RequestIDKey),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: domain.MsgInternalError})
}

// Stats handles GET /api/stats
func (h *Handler) Stats(c *gin.Context) {
	maxMiB := h.opts.MaxUploadBytes / bytesPerMiB
	c.JSON(http.StatusOK, StatsResponse{
		SupportedFormats: extract.SupportedFormats,
		MaxFileSize:      fmt.Sprintf("%dMB", maxMiB),
		Categories:       []string{string(domain.CategoryProductive), string(domain.CategoryUnproductive)},
		EmailTypes:       h.opts.EmailTypes,
		PriorityLevels: []string{
			domain.PriorityHigh.String(), domain.PriorityMedium.String(), domain.PriorityLow.String(),
		},
		AverageProcessingTime: "< 0.5 segundos",
		NLPFeatures: []string{
			"Portuguese language detection",
			"Stop words removal",
			"Pattern matching",
			"Domain-specific classification",
			"Priority assignment",
		},
		SentimentEnabled: h.opts.SentimentEnabled,
	})
}
