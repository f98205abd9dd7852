package recommendations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sales-assistant/internal/shared/metrics"
	"sales-assistant/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations/products", h.list)
	rg.POST("/recommendations/products/filter", h.filter)
	rg.GET("/recommendations/products/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	q := Query{
		Filter: Filter{
			Category: c.Query("category"),
			Tag:      c.Query("tag"),
		},
		AnalysisID: c.Query("analysis_id"),
	}
	var ok bool
	if q.Page, ok = intQuery(c, "page"); !ok {
		return
	}
	if q.PageSize, ok = intQuery(c, "page_size"); !ok {
		return
	}
	h.respondList(c, q)
}

func (h *Handler) filter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	h.respondList(c, Query{
		Filter: Filter{
			Category: req.Category,
			Tag:      req.Tag,
			MinPrice: req.MinPrice,
			MaxPrice: req.MaxPrice,
		},
		AnalysisID: c.Query("analysis_id"),
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
}

func (h *Handler) respondList(c *gin.Context, q Query) {
	metrics.IncRecommendationRequests()

	result, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			respond.Error(c, http.StatusUnprocessableEntity, "validation_error", vErr.Message)
		case errors.Is(err, ErrAnalysisNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list products")
		}
		return
	}
	c.Set("productCount", len(result.Products))
	respond.OK(c, toListResponse(result))
}

func (h *Handler) get(c *gin.Context) {
	product, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Product not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch product")
		return
	}
	respond.OK(c, gin.H{"product": toProductResponse(product)})
}

// intQuery parses an optional integer query parameter. A zero result means absent.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", name+" must be an integer")
		return 0, false
	}
	if v == 0 {
		// explicit zero is out of range, not a request for the default
		v = -1
	}
	return v, true
}
