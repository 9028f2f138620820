package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uglybaby/memo-engine/internal/insights"
	"github.com/uglybaby/memo-engine/internal/models"
)

// stubInsightService implements services.InsightService for handler tests
type stubInsightService struct {
	differentiation *insights.DifferentiationResult
	momentum        *insights.MomentumResult
	actionPlan      *insights.ActionPlanData
	match           *insights.InsightMatch
	err             error
}

func (s *stubInsightService) Differentiation(companyID string, requesterID uuid.UUID, requesterRole string) (*insights.DifferentiationResult, error) {
	return s.differentiation, s.err
}

func (s *stubInsightService) Momentum(companyID string, requesterID uuid.UUID, requesterRole string) (*insights.MomentumResult, error) {
	return s.momentum, s.err
}

func (s *stubInsightService) ActionPlan(companyID string, requesterID uuid.UUID, requesterRole string) (*insights.ActionPlanData, error) {
	return s.actionPlan, s.err
}

func (s *stubInsightService) ContextMatch(companyID, text string, requesterID uuid.UUID, requesterRole string) (*insights.InsightMatch, error) {
	return s.match, s.err
}

func insightRouter(svc *stubInsightService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewInsightHandler(svc)

	router := gin.New()
	router.Use(authAs(uuid.New(), string(models.RoleFounder)))
	router.GET("/companies/:id/insights/differentiation", handler.GetDifferentiation)
	router.GET("/companies/:id/insights/momentum", handler.GetMomentum)
	router.GET("/companies/:id/insights/action-plan", handler.GetActionPlan)
	router.POST("/companies/:id/insights/context", handler.MatchContext)
	return router
}

func TestGetDifferentiation(t *testing.T) {
	router := insightRouter(&stubInsightService{
		differentiation: &insights.DifferentiationResult{Score: 72},
	})

	req := httptest.NewRequest("GET", "/companies/"+uuid.New().String()+"/insights/differentiation", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Differentiation insights.DifferentiationResult `json:"differentiation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 72, response.Differentiation.Score)
}

func TestGetMomentum(t *testing.T) {
	router := insightRouter(&stubInsightService{
		momentum: &insights.MomentumResult{Score: 79, Trajectory: insights.TrajectoryStrong},
	})

	req := httptest.NewRequest("GET", "/companies/"+uuid.New().String()+"/insights/momentum", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), insights.TrajectoryStrong)
}

func TestGetActionPlan(t *testing.T) {
	router := insightRouter(&stubInsightService{
		actionPlan: &insights.ActionPlanData{
			Items:          []insights.ActionItem{{Priority: 1, Category: "traction"}},
			OverallUrgency: "moderate",
		},
	})

	req := httptest.NewRequest("GET", "/companies/"+uuid.New().String()+"/insights/action-plan", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "traction")
}

func TestMatchContextNullMatch(t *testing.T) {
	router := insightRouter(&stubInsightService{match: nil})

	body, _ := json.Marshal(ContextMatchRequest{Text: "what about retention"})
	req := httptest.NewRequest("POST", "/companies/"+uuid.New().String()+"/insights/context", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Match *insights.InsightMatch `json:"match"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(t, response.Match)
}

func TestMatchContextMissingText(t *testing.T) {
	router := insightRouter(&stubInsightService{})

	req := httptest.NewRequest("POST", "/companies/"+uuid.New().String()+"/insights/context", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
