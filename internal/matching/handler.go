package matching

import (
	"net/http"
	"strconv"

	"github.com/aidmatch/trust-engine/pkg/common"
	"github.com/aidmatch/trust-engine/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for provider suggestions
type Handler struct {
	service *Service
}

// NewHandler creates a new matching handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Suggest ranks providers from an inline snapshot
// POST /api/v1/matching/suggestions
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	result, err := h.service.Suggest(c.Request.Context(), &req)
	if err != nil {
		common.HandleServiceError(c, err, "failed to suggest providers")
		return
	}

	common.SuccessResponse(c, result)
}

// SuggestForBeneficiary ranks directory providers for a stored beneficiary
// GET /api/v1/matching/beneficiaries/:id/suggestions?top_n=5
func (h *Handler) SuggestForBeneficiary(c *gin.Context) {
	beneficiaryID := c.Param("id")

	topN := 0
	if raw := c.Query("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			common.ErrorResponse(c, http.StatusBadRequest, "top_n must be a non-negative integer")
			return
		}
		topN = n
	}

	result, err := h.service.SuggestForBeneficiary(c.Request.Context(), beneficiaryID, topN)
	if err != nil {
		common.HandleServiceError(c, err, "failed to suggest providers")
		return
	}

	common.SuccessResponse(c, result)
}

// RegisterRoutes registers matching routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	matching := r.Group("/matching")
	{
		matching.POST("/suggestions", h.Suggest)
		matching.GET("/beneficiaries/:id/suggestions", h.SuggestForBeneficiary)
	}
}
