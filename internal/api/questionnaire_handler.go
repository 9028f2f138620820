package api

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/services"
)

// QuestionnaireHandler handles questionnaire answers and deck imports
type QuestionnaireHandler struct {
	questionnaireService services.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(questionnaireService services.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		questionnaireService: questionnaireService,
	}
}

// GetAnswers returns all questionnaire answers for a company
func (h *QuestionnaireHandler) GetAnswers(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	answers, err := h.questionnaireService.GetAnswers(c.Param("id"), userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answers": answers, "timestamp": time.Now()})
}

// UpsertAnswer creates or replaces a single answer
func (h *QuestionnaireHandler) UpsertAnswer(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	var req models.UpsertAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	answer, err := h.questionnaireService.UpsertAnswer(c.Param("id"), &req, userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// ImportDeck accepts an uploaded deck export (HTML or CSV) and maps its
// content onto questionnaire answers
func (h *QuestionnaireHandler) ImportDeck(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("deck")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deck file is required"})
		return
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if format == "htm" {
		format = "html"
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read deck file"})
		return
	}
	defer file.Close()

	result, err := h.questionnaireService.ImportDeck(c.Param("id"), format, file, userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	unmappedHeadings := make([]string, 0, len(result.Unmapped))
	for _, slide := range result.Unmapped {
		unmappedHeadings = append(unmappedHeadings, slide.Heading)
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": len(result.Answers),
		"answers":  result.Answers,
		"unmapped": unmappedHeadings,
	})
}
