package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/uglybaby/memo-engine/internal/auth"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/repository"
	"github.com/uglybaby/memo-engine/internal/services"
)

// CompanyHandler handles company CRUD operations
type CompanyHandler struct {
	companyService services.CompanyService
}

// NewCompanyHandler creates a new company handler with service injection
func NewCompanyHandler(companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// requester pulls the authenticated user out of the gin context
func requester(c *gin.Context) (uuid.UUID, string, bool) {
	rawID, exists := c.Get(auth.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return uuid.Nil, "", false
	}

	userID, ok := rawID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return uuid.Nil, "", false
	}

	return userID, c.GetString(auth.UserRoleKey), true
}

// ListCompanies returns the requester's companies, or filtered companies
// for investors and admins
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	// Founders only ever see their own companies
	if role == string(models.RoleFounder) {
		companies, err := h.companyService.GetByOwner(userID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"companies": companies, "timestamp": time.Now()})
		return
	}

	filters := repository.CompanyFilters{}
	if stage := c.Query("stage"); stage != "" {
		filters.Stage = []string{stage}
	}
	if category := c.Query("category"); category != "" {
		filters.Category = []string{category}
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filters.Limit = n
		}
	}
	if offset := c.Query("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n > 0 {
			filters.Offset = n
		}
	}

	companies, err := h.companyService.GetAll(filters)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies, "timestamp": time.Now()})
}

// GetCompany returns a single company by ID
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(c.Param("id"), userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// CreateCompany creates a new company owned by the requester
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	userID, _, ok := requester(c)
	if !ok {
		return
	}

	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.Create(&req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// UpdateCompany updates an existing company
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	var req models.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.Update(c.Param("id"), &req, userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// DeleteCompany deletes a company and its dependent data
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Param("id"), userID, role); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}
