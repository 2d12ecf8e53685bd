package bookmarks

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles bookmark and bookmark folder requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new bookmarks handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateBookmarkRequest represents the request to create a bookmark
type CreateBookmarkRequest struct {
	URL         string `json:"url" binding:"required,url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FolderID    *uint  `json:"folder_id"`
	IsUnread    bool   `json:"is_unread"`
}

// UpdateBookmarkRequest represents the request to update a bookmark
type UpdateBookmarkRequest struct {
	URL         *string `json:"url" binding:"omitempty,url"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	FolderID    *uint   `json:"folder_id"`
	IsUnread    *bool   `json:"is_unread"`
}

// CreateFolderRequest represents the request to create a bookmark folder
type CreateFolderRequest struct {
	Name string `json:"name" binding:"required"`
}

// ownsFolder verifies the folder exists and belongs to the caller
func (h *Handler) ownsFolder(userID, folderID uint) bool {
	var folder models.BookmarkFolder
	return h.db.Where("id = ? AND owner_id = ?", folderID, userID).First(&folder).Error == nil
}

// CreateFolder creates a bookmark folder
// @Summary Create a bookmark folder
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param request body CreateFolderRequest true "Folder details"
// @Success 201 {object} models.BookmarkFolder
// @Security BearerAuth
// @Router /bookmark-folders [post]
func (h *Handler) CreateFolder(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	folder := models.BookmarkFolder{OwnerID: userID, Name: req.Name}
	if err := h.db.Create(&folder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder"})
		return
	}

	c.JSON(http.StatusCreated, folder)
}

// ListFolders returns the caller's bookmark folders
// @Summary List bookmark folders
// @Tags bookmarks
// @Produce json
// @Success 200 {array} models.BookmarkFolder
// @Security BearerAuth
// @Router /bookmark-folders [get]
func (h *Handler) ListFolders(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var folders []models.BookmarkFolder
	if err := h.db.Where("owner_id = ?", userID).Order("name ASC").Find(&folders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folders"})
		return
	}

	c.JSON(http.StatusOK, folders)
}

// Create creates a new bookmark
// @Summary Create a bookmark
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param request body CreateBookmarkRequest true "Bookmark details"
// @Success 201 {object} models.Bookmark
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /bookmarks [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FolderID != nil && !h.ownsFolder(userID, *req.FolderID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	bookmark := models.Bookmark{
		OwnerID:     userID,
		FolderID:    req.FolderID,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		IsUnread:    req.IsUnread,
	}

	if err := h.db.Create(&bookmark).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bookmark"})
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

// List returns the caller's bookmarks
// @Summary List bookmarks
// @Tags bookmarks
// @Produce json
// @Param q query string false "Search in title, description and URL"
// @Param folder_id query int false "Filter by folder"
// @Param is_unread query bool false "Filter by unread status"
// @Success 200 {array} models.Bookmark
// @Security BearerAuth
// @Router /bookmarks [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Where("owner_id = ?", userID).Order("created_at DESC")

	if q := c.Query("q"); q != "" {
		term := "%" + q + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR url LIKE ?", term, term, term)
	}
	if folderID := c.Query("folder_id"); folderID != "" {
		query = query.Where("folder_id = ?", folderID)
	}
	if isUnread := c.Query("is_unread"); isUnread != "" {
		query = query.Where("is_unread = ?", isUnread == "true")
	}

	var bookmarks []models.Bookmark
	if err := query.Find(&bookmarks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookmarks"})
		return
	}

	c.JSON(http.StatusOK, bookmarks)
}

// Update updates a bookmark
// @Summary Update a bookmark
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param id path int true "Bookmark ID"
// @Param request body UpdateBookmarkRequest true "Fields to change"
// @Success 200 {object} models.Bookmark
// @Failure 404 {object} map[string]string "Bookmark not found"
// @Security BearerAuth
// @Router /bookmarks/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookmark ID"})
		return
	}

	var bookmark models.Bookmark
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&bookmark).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}

	var req UpdateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FolderID != nil {
		if !h.ownsFolder(userID, *req.FolderID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		bookmark.FolderID = req.FolderID
	}
	if req.URL != nil {
		bookmark.URL = *req.URL
	}
	if req.Title != nil {
		bookmark.Title = *req.Title
	}
	if req.Description != nil {
		bookmark.Description = *req.Description
	}
	if req.IsUnread != nil {
		bookmark.IsUnread = *req.IsUnread
	}

	if err := h.db.Save(&bookmark).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bookmark"})
		return
	}

	c.JSON(http.StatusOK, bookmark)
}

// Delete deletes a bookmark
// @Summary Delete a bookmark
// @Tags bookmarks
// @Produce json
// @Param id path int true "Bookmark ID"
// @Success 200 {object} map[string]string "Bookmark deleted"
// @Failure 404 {object} map[string]string "Bookmark not found"
// @Security BearerAuth
// @Router /bookmarks/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookmark ID"})
		return
	}

	var bookmark models.Bookmark
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&bookmark).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}

	if err := h.db.Delete(&bookmark).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bookmark"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bookmark deleted"})
}

// RegisterRoutes registers bookmark routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookmark-folders", h.CreateFolder)
	rg.GET("/bookmark-folders", h.ListFolders)
	rg.POST("/bookmarks", h.Create)
	rg.GET("/bookmarks", h.List)
	rg.PUT("/bookmarks/:id", h.Update)
	rg.DELETE("/bookmarks/:id", h.Delete)
}
