package menu

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sales-assistant/internal/shared/server/respond"
)

// multipart framing allowance on top of the file limit
const formOverheadBytes = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches menu routes to the router group. analyzeMW runs
// before the upload handler only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, analyzeMW ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, analyzeMW...), h.analyze)
	rg.POST("/menu/analyze-menu", handlers...)
	rg.GET("/menu/analysis/:id", h.get)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.maxUploadBytes()+formOverheadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusBadRequest, "file_too_large", h.tooLargeDetail())
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required")
		return
	}
	if err := CheckExtension(fileHeader.Filename); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_file_type", fileTypeDetail())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file")
		return
	}
	defer file.Close()

	analysis, err := h.Svc.Analyze(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		var analyzeErr *AnalyzeError
		switch {
		case errors.Is(err, ErrFileType):
			respond.Error(c, http.StatusBadRequest, "invalid_file_type", fileTypeDetail())
		case errors.Is(err, ErrFileTooLarge):
			respond.Error(c, http.StatusBadRequest, "file_too_large", h.tooLargeDetail())
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "file is empty")
		case errors.As(err, &analyzeErr):
			respond.Error(c, http.StatusInternalServerError, "analysis_failed", "Error analyzing menu: "+analyzeErr.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected error: "+err.Error())
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	c.Set("menuItemCount", len(analysis.MenuItems))
	respond.OK(c, toResponse(analysis))
}

func (h *Handler) get(c *gin.Context) {
	analysis, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis")
		return
	}
	c.Set("analysisId", analysis.ID)
	respond.OK(c, toDetailResponse(analysis))
}

func fileTypeDetail() string {
	return fmt.Sprintf("File type not allowed. Allowed types: %v", AllowedExtensions)
}

func (h *Handler) tooLargeDetail() string {
	return fmt.Sprintf("File size exceeds maximum limit of %dMB", h.Svc.maxUploadBytes()/(1024*1024))
}
