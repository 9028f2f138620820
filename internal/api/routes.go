package api

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/uglybaby/memo-engine/internal/auth"
	"github.com/uglybaby/memo-engine/internal/database"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/services"
	"github.com/uglybaby/memo-engine/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config) error {
	dbWrapper := &database.DB{DB: db}

	svcs := services.NewServices(db, cfg)

	authHandler := NewAuthHandler(svcs.Auth)
	companyHandler := NewCompanyHandler(svcs.Company)
	questionnaireHandler := NewQuestionnaireHandler(svcs.Questionnaire)
	memoHandler := NewMemoHandler(svcs.Memo)
	insightHandler := NewInsightHandler(svcs.Insight)
	healthHandler := NewHealthHandler(dbWrapper)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/refresh", authHandler.RefreshToken)
		public.POST("/auth/logout", authHandler.Logout)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	protected.Use(auth.CSRFMiddleware())
	{
		// Company endpoints
		protected.GET("/companies", companyHandler.ListCompanies)
		protected.POST("/companies", companyHandler.CreateCompany)
		protected.GET("/companies/:id", companyHandler.GetCompany)
		protected.PUT("/companies/:id", companyHandler.UpdateCompany)
		protected.DELETE("/companies/:id", companyHandler.DeleteCompany)

		// Questionnaire endpoints
		protected.GET("/companies/:id/questionnaire", questionnaireHandler.GetAnswers)
		protected.PUT("/companies/:id/questionnaire", questionnaireHandler.UpsertAnswer)
		protected.POST("/companies/:id/questionnaire/import", questionnaireHandler.ImportDeck)

		// Memo endpoints
		protected.POST("/companies/:id/memo", memoHandler.GenerateMemo)
		protected.GET("/companies/:id/memo", memoHandler.GetLatestMemo)

		// Insight endpoints
		protected.GET("/companies/:id/insights/differentiation", insightHandler.GetDifferentiation)
		protected.GET("/companies/:id/insights/momentum", insightHandler.GetMomentum)
		protected.GET("/companies/:id/insights/action-plan", insightHandler.GetActionPlan)
		protected.POST("/companies/:id/insights/context", insightHandler.MatchContext)

		// Health monitoring endpoints
		protected.GET("/health", healthHandler.GetSystemHealth)
		protected.GET("/health/database", auth.RequireRole(string(models.RoleAdmin)), healthHandler.GetDatabaseStats)
	}

	return nil
}
