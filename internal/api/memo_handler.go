package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uglybaby/memo-engine/internal/services"
)

// MemoHandler handles memo generation and retrieval
type MemoHandler struct {
	memoService services.MemoService
}

// NewMemoHandler creates a new memo handler
func NewMemoHandler(memoService services.MemoService) *MemoHandler {
	return &MemoHandler{
		memoService: memoService,
	}
}

// GenerateMemo runs memo generation through the AI gateway for a company
func (h *MemoHandler) GenerateMemo(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	// Generation calls the external gateway; bound it independently of
	// the client connection
	ctx, cancel := context.WithTimeout(c.Request.Context(), 150*time.Second)
	defer cancel()

	memo, err := h.memoService.Generate(ctx, c.Param("id"), userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"memo": memo})
}

// GetLatestMemo returns the most recent memo for a company
func (h *MemoHandler) GetLatestMemo(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	memo, err := h.memoService.GetLatest(c.Param("id"), userID, role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"memo": memo})
}
