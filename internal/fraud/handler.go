package fraud

import (
	"github.com/aidmatch/trust-engine/pkg/common"
	"github.com/aidmatch/trust-engine/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for fraud network analysis
type Handler struct {
	service *Service
}

// NewHandler creates a new fraud handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AnalyzeSnapshot analyzes an inline graph
// POST /api/v1/fraud/analyze
func (h *Handler) AnalyzeSnapshot(c *gin.Context) {
	var req AnalyzeRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), &req)
	if err != nil {
		common.HandleServiceError(c, err, "failed to analyze fraud network")
		return
	}

	common.SuccessResponse(c, analysis)
}

// GetNetwork analyzes the stored graph
// GET /api/v1/fraud/network
func (h *Handler) GetNetwork(c *gin.Context) {
	analysis, err := h.service.AnalyzeNetwork(c.Request.Context())
	if err != nil {
		common.HandleServiceError(c, err, "failed to analyze fraud network")
		return
	}

	common.SuccessResponse(c, analysis)
}

// RegisterRoutes registers fraud routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	fraud := r.Group("/fraud")
	{
		fraud.POST("/analyze", h.AnalyzeSnapshot)
		fraud.GET("/network", h.GetNetwork)
	}
}
