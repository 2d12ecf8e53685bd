package resumes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles resume requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new resumes handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateResumeRequest represents the request to create a resume
type CreateResumeRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	IsPrimary bool   `json:"is_primary"`
}

// UpdateResumeRequest represents the request to update a resume
type UpdateResumeRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	IsPrimary *bool   `json:"is_primary"`
}

// clearPrimary unsets is_primary on the owner's other resumes. At most
// one resume per user may be primary.
func (h *Handler) clearPrimary(tx *gorm.DB, userID uint, exceptID uint) error {
	return tx.Model(&models.Resume{}).
		Where("owner_id = ? AND id != ?", userID, exceptID).
		Update("is_primary", false).Error
}

// Create creates a new resume
// @Summary Create a resume
// @Tags resumes
// @Accept json
// @Produce json
// @Param request body CreateResumeRequest true "Resume details"
// @Success 201 {object} models.Resume
// @Security BearerAuth
// @Router /resumes [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resume := models.Resume{
		OwnerID:   userID,
		Title:     req.Title,
		Content:   req.Content,
		IsPrimary: req.IsPrimary,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&resume).Error; err != nil {
			return err
		}
		if resume.IsPrimary {
			return h.clearPrimary(tx, userID, resume.ID)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resume"})
		return
	}

	c.JSON(http.StatusCreated, resume)
}

// List returns the caller's resumes, primary first
// @Summary List resumes
// @Tags resumes
// @Produce json
// @Success 200 {array} models.Resume
// @Security BearerAuth
// @Router /resumes [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var resumes []models.Resume
	if err := h.db.Where("owner_id = ?", userID).
		Order("is_primary DESC, updated_at DESC").Find(&resumes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resumes"})
		return
	}

	c.JSON(http.StatusOK, resumes)
}

// Get returns one resume
// @Summary Get a resume
// @Tags resumes
// @Produce json
// @Param id path int true "Resume ID"
// @Success 200 {object} models.Resume
// @Failure 404 {object} map[string]string "Resume not found"
// @Security BearerAuth
// @Router /resumes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume ID"})
		return
	}

	var resume models.Resume
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&resume).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	c.JSON(http.StatusOK, resume)
}

// Update updates a resume
// @Summary Update a resume
// @Tags resumes
// @Accept json
// @Produce json
// @Param id path int true "Resume ID"
// @Param request body UpdateResumeRequest true "Fields to change"
// @Success 200 {object} models.Resume
// @Failure 404 {object} map[string]string "Resume not found"
// @Security BearerAuth
// @Router /resumes/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume ID"})
		return
	}

	var resume models.Resume
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&resume).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	var req UpdateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		resume.Title = *req.Title
	}
	if req.Content != nil {
		resume.Content = *req.Content
	}
	if req.IsPrimary != nil {
		resume.IsPrimary = *req.IsPrimary
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&resume).Error; err != nil {
			return err
		}
		if resume.IsPrimary {
			return h.clearPrimary(tx, userID, resume.ID)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resume"})
		return
	}

	c.JSON(http.StatusOK, resume)
}

// Delete deletes a resume
// @Summary Delete a resume
// @Tags resumes
// @Produce json
// @Param id path int true "Resume ID"
// @Success 200 {object} map[string]string "Resume deleted"
// @Failure 404 {object} map[string]string "Resume not found"
// @Security BearerAuth
// @Router /resumes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume ID"})
		return
	}

	var resume models.Resume
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&resume).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	if err := h.db.Delete(&resume).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resume deleted"})
}

// RegisterRoutes registers resume routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.Create)
	rg.GET("/resumes", h.List)
	rg.GET("/resumes/:id", h.Get)
	rg.PUT("/resumes/:id", h.Update)
	rg.DELETE("/resumes/:id", h.Delete)
}
