package notes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles note requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new notes handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateNoteRequest represents the request to create a note
type CreateNoteRequest struct {
	Title    string   `json:"title" binding:"required"`
	Body     string   `json:"body"`
	IsPinned bool     `json:"is_pinned"`
	Tags     []string `json:"tags"`
}

// UpdateNoteRequest represents the request to update a note
type UpdateNoteRequest struct {
	Title    *string   `json:"title"`
	Body     *string   `json:"body"`
	IsPinned *bool     `json:"is_pinned"`
	Tags     *[]string `json:"tags"`
}

// resolveTags finds or creates the owner's tags by name
func (h *Handler) resolveTags(ownerID uint, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var tag models.Tag
		err := h.db.Where("owner_id = ? AND name = ?", ownerID, name).First(&tag).Error
		if err != nil {
			tag = models.Tag{OwnerID: ownerID, Name: name}
			if err := h.db.Create(&tag).Error; err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Create creates a new note
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Param request body CreateNoteRequest true "Note details"
// @Success 201 {object} models.Note
// @Security BearerAuth
// @Router /notes [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := models.Note{
		OwnerID:  userID,
		Title:    req.Title,
		Body:     req.Body,
		IsPinned: req.IsPinned,
	}

	if err := h.db.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	if len(req.Tags) > 0 {
		tags, err := h.resolveTags(userID, req.Tags)
		if err == nil && len(tags) > 0 {
			h.db.Model(&note).Association("Tags").Append(tags)
			note.Tags = tags
		}
	}

	c.JSON(http.StatusCreated, note)
}

// List returns the caller's notes, pinned first
// @Summary List notes
// @Tags notes
// @Produce json
// @Param q query string false "Search in title and body"
// @Param tag query string false "Filter by tag name"
// @Success 200 {array} models.Note
// @Security BearerAuth
// @Router /notes [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Preload("Tags").Where("notes.owner_id = ?", userID).
		Order("is_pinned DESC, created_at DESC")

	if q := c.Query("q"); q != "" {
		term := "%" + q + "%"
		query = query.Where("title LIKE ? OR body LIKE ?", term, term)
	}
	if tag := c.Query("tag"); tag != "" {
		query = query.Joins("JOIN note_tags ON note_tags.note_id = notes.id").
			Joins("JOIN tags ON tags.id = note_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	var notes []models.Note
	if err := query.Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	c.JSON(http.StatusOK, notes)
}

// Get returns one note
// @Summary Get a note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} models.Note
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID"})
		return
	}

	var note models.Note
	if err := h.db.Preload("Tags").Where("id = ? AND owner_id = ?", id, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	c.JSON(http.StatusOK, note)
}

// Update updates a note
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param request body UpdateNoteRequest true "Fields to change"
// @Success 200 {object} models.Note
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID"})
		return
	}

	var note models.Note
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Body != nil {
		note.Body = *req.Body
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}

	if err := h.db.Save(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
		return
	}

	if req.Tags != nil {
		tags, err := h.resolveTags(userID, *req.Tags)
		if err == nil {
			h.db.Model(&note).Association("Tags").Replace(tags)
			note.Tags = tags
		}
	}

	c.JSON(http.StatusOK, note)
}

// Delete deletes a note
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} map[string]string "Note deleted"
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID"})
		return
	}

	var note models.Note
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	if err := h.db.Delete(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}

// RegisterRoutes registers note routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notes", h.Create)
	rg.GET("/notes", h.List)
	rg.GET("/notes/:id", h.Get)
	rg.PUT("/notes/:id", h.Update)
	rg.DELETE("/notes/:id", h.Delete)
}
