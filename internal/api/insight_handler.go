package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uglybaby/memo-engine/internal/services"
)

// InsightHandler exposes the heuristic insight engine over HTTP
type InsightHandler struct {
	insightService services.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightService services.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// GetDifferentiation returns the differentiation scorecard for a company
func (h *InsightHandler) GetDifferentiation(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	result, err := h.insightService.Differentiation(c.Param("id"), userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"differentiation": result, "timestamp": time.Now()})
}

// GetMomentum returns the traction momentum score for a company
func (h *InsightHandler) GetMomentum(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	result, err := h.insightService.Momentum(c.Param("id"), userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"momentum": result, "timestamp": time.Now()})
}

// GetActionPlan returns the prioritized action plan derived from the memo
func (h *InsightHandler) GetActionPlan(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	result, err := h.insightService.ActionPlan(c.Param("id"), userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"action_plan": result, "timestamp": time.Now()})
}

// ContextMatchRequest carries the free-text insight to ground in memo evidence
type ContextMatchRequest struct {
	Text string `json:"text" binding:"required"`
}

// MatchContext finds the memo section most relevant to a free-text insight.
// A null match means no section clears the relevance bar.
func (h *InsightHandler) MatchContext(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	var req ContextMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	match, err := h.insightService.ContextMatch(c.Param("id"), req.Text, userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": match})
}
