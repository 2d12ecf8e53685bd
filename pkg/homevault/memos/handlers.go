package memos

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles voice memo requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new memos handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateMemoRequest represents the request to record a memo
type CreateMemoRequest struct {
	Title       string `json:"title" binding:"required"`
	DurationSec int    `json:"duration_sec" binding:"omitempty,min=0"`
	StoragePath string `json:"storage_path"`
	Transcript  string `json:"transcript"`
}

// UpdateMemoRequest represents the request to update a memo
type UpdateMemoRequest struct {
	Title      *string `json:"title"`
	Transcript *string `json:"transcript"`
}

// Create creates a new voice memo
// @Summary Create a voice memo
// @Tags memos
// @Accept json
// @Produce json
// @Param request body CreateMemoRequest true "Memo details"
// @Success 201 {object} models.VoiceMemo
// @Security BearerAuth
// @Router /memos [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memo := models.VoiceMemo{
		OwnerID:     userID,
		Title:       req.Title,
		DurationSec: req.DurationSec,
		StoragePath: req.StoragePath,
		Transcript:  req.Transcript,
	}

	if err := h.db.Create(&memo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create memo"})
		return
	}

	c.JSON(http.StatusCreated, memo)
}

// List returns the caller's voice memos
// @Summary List voice memos
// @Tags memos
// @Produce json
// @Param q query string false "Search in title and transcript"
// @Success 200 {array} models.VoiceMemo
// @Security BearerAuth
// @Router /memos [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Where("owner_id = ?", userID).Order("created_at DESC")
	if q := c.Query("q"); q != "" {
		term := "%" + q + "%"
		query = query.Where("title LIKE ? OR transcript LIKE ?", term, term)
	}

	var memos []models.VoiceMemo
	if err := query.Find(&memos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch memos"})
		return
	}

	c.JSON(http.StatusOK, memos)
}

// Update updates a memo's title or transcript
// @Summary Update a voice memo
// @Tags memos
// @Accept json
// @Produce json
// @Param id path int true "Memo ID"
// @Param request body UpdateMemoRequest true "Fields to change"
// @Success 200 {object} models.VoiceMemo
// @Failure 404 {object} map[string]string "Memo not found"
// @Security BearerAuth
// @Router /memos/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid memo ID"})
		return
	}

	var memo models.VoiceMemo
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&memo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Memo not found"})
		return
	}

	var req UpdateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		memo.Title = *req.Title
	}
	if req.Transcript != nil {
		memo.Transcript = *req.Transcript
	}

	if err := h.db.Save(&memo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update memo"})
		return
	}

	c.JSON(http.StatusOK, memo)
}

// Delete deletes a voice memo
// @Summary Delete a voice memo
// @Tags memos
// @Produce json
// @Param id path int true "Memo ID"
// @Success 200 {object} map[string]string "Memo deleted"
// @Failure 404 {object} map[string]string "Memo not found"
// @Security BearerAuth
// @Router /memos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid memo ID"})
		return
	}

	var memo models.VoiceMemo
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&memo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Memo not found"})
		return
	}

	if err := h.db.Delete(&memo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete memo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Memo deleted"})
}

// RegisterRoutes registers memo routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/memos", h.Create)
	rg.GET("/memos", h.List)
	rg.PUT("/memos/:id", h.Update)
	rg.DELETE("/memos/:id", h.Delete)
}
