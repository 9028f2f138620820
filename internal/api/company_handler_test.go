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

	"github.com/uglybaby/memo-engine/internal/auth"
	apperrors "github.com/uglybaby/memo-engine/internal/errors"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/repository"
)

// stubCompanyService implements services.CompanyService for handler tests
type stubCompanyService struct {
	company *models.Company
	err     error
}

func (s *stubCompanyService) GetByID(id string, requesterID uuid.UUID, requesterRole string) (*models.Company, error) {
	return s.company, s.err
}

func (s *stubCompanyService) GetAll(filters repository.CompanyFilters) ([]models.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Company{*s.company}, nil
}

func (s *stubCompanyService) GetByOwner(ownerID uuid.UUID) ([]models.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Company{*s.company}, nil
}

func (s *stubCompanyService) Create(req *models.CreateCompanyRequest, ownerID uuid.UUID) (*models.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Company{ID: uuid.New(), Name: req.Name, Stage: req.Stage, OwnerID: ownerID}, nil
}

func (s *stubCompanyService) Update(id string, req *models.UpdateCompanyRequest, requesterID uuid.UUID, requesterRole string) (*models.Company, error) {
	return s.company, s.err
}

func (s *stubCompanyService) Delete(id string, requesterID uuid.UUID, requesterRole string) error {
	return s.err
}

// authAs injects an authenticated user into the request context
func authAs(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.UserIDKey, userID)
		c.Set(auth.UserRoleKey, role)
		c.Next()
	}
}

func TestGetCompany(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	company := &models.Company{ID: uuid.New(), Name: "Acme Robotics", Stage: "seed", OwnerID: userID}
	handler := NewCompanyHandler(&stubCompanyService{company: company})

	router := gin.New()
	router.Use(authAs(userID, string(models.RoleFounder)))
	router.GET("/companies/:id", handler.GetCompany)

	req := httptest.NewRequest("GET", "/companies/"+company.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Company models.Company `json:"company"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Acme Robotics", response.Company.Name)
}

func TestGetCompanyForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewCompanyHandler(&stubCompanyService{
		err: apperrors.Forbidden("not authorized for this company", nil),
	})

	router := gin.New()
	router.Use(authAs(uuid.New(), string(models.RoleFounder)))
	router.GET("/companies/:id", handler.GetCompany)

	req := httptest.NewRequest("GET", "/companies/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not authorized")
}

func TestGetCompanyUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewCompanyHandler(&stubCompanyService{})

	router := gin.New()
	router.GET("/companies/:id", handler.GetCompany)

	req := httptest.NewRequest("GET", "/companies/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCompany(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	handler := NewCompanyHandler(&stubCompanyService{})

	router := gin.New()
	router.Use(authAs(userID, string(models.RoleFounder)))
	router.POST("/companies", handler.CreateCompany)

	body, _ := json.Marshal(models.CreateCompanyRequest{Name: "Acme Robotics", Stage: "seed"})
	req := httptest.NewRequest("POST", "/companies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Company models.Company `json:"company"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, userID, response.Company.OwnerID)
}

func TestCreateCompanyValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewCompanyHandler(&stubCompanyService{})

	router := gin.New()
	router.Use(authAs(uuid.New(), string(models.RoleFounder)))
	router.POST("/companies", handler.CreateCompany)

	// Missing required stage field
	req := httptest.NewRequest("POST", "/companies", bytes.NewReader([]byte(`{"name": "Acme"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
