package export

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles bookmark import/export in Pinboard JSON format
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// PinboardBookmark represents a bookmark in Pinboard JSON format
type PinboardBookmark struct {
	Href        string `json:"href"`
	Description string `json:"description"`
	Extended    string `json:"extended"`
	Time        string `json:"time"`
	ToRead      string `json:"toread"`
	Meta        string `json:"meta,omitempty"`
	Hash        string `json:"hash,omitempty"`
}

// ImportRequest represents an import request
type ImportRequest struct {
	FolderID  *uint              `json:"folder_id"`
	Bookmarks []PinboardBookmark `json:"bookmarks" binding:"required"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Import imports bookmarks from Pinboard JSON format
// @Summary Import bookmarks
// @Tags export
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Bookmarks in Pinboard format"
// @Success 200 {object} ImportResult
// @Security BearerAuth
// @Router /import [post]
func (h *Handler) Import(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FolderID != nil {
		var folder models.BookmarkFolder
		if err := h.db.Where("id = ? AND owner_id = ?", *req.FolderID, userID).First(&folder).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
	}

	result := ImportResult{Errors: []string{}}

	for i, bookmark := range req.Bookmarks {
		if bookmark.Href == "" {
			result.Errors = append(result.Errors, "bookmark "+strconv.Itoa(i)+": missing href")
			result.Skipped++
			continue
		}

		var createdAt time.Time
		if bookmark.Time != "" {
			parsed, err := time.Parse(time.RFC3339, bookmark.Time)
			if err != nil {
				result.Errors = append(result.Errors, "bookmark "+strconv.Itoa(i)+": invalid time format")
				result.Skipped++
				continue
			}
			createdAt = parsed
		} else {
			createdAt = time.Now()
		}

		entry := models.Bookmark{
			OwnerID:     userID,
			FolderID:    req.FolderID,
			URL:         bookmark.Href,
			Title:       bookmark.Description,
			Description: bookmark.Extended,
			IsUnread:    bookmark.ToRead == "yes",
		}
		entry.CreatedAt = createdAt

		if err := h.db.Create(&entry).Error; err != nil {
			result.Errors = append(result.Errors, "bookmark "+strconv.Itoa(i)+": "+err.Error())
			result.Skipped++
			continue
		}

		result.Imported++
	}

	c.JSON(http.StatusOK, result)
}

// Export exports the caller's bookmarks to Pinboard JSON format
// @Summary Export bookmarks
// @Tags export
// @Produce json
// @Param folder_id query int false "Limit to one folder"
// @Param download query bool false "Set attachment disposition"
// @Success 200 {array} PinboardBookmark
// @Security BearerAuth
// @Router /export [get]
func (h *Handler) Export(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Where("owner_id = ?", userID).Order("created_at DESC")

	if folderIDStr := c.Query("folder_id"); folderIDStr != "" {
		folderID, err := strconv.ParseUint(folderIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder ID"})
			return
		}
		var folder models.BookmarkFolder
		if err := h.db.Where("id = ? AND owner_id = ?", folderID, userID).First(&folder).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		query = query.Where("folder_id = ?", folderID)
	}

	var entries []models.Bookmark
	if err := query.Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookmarks"})
		return
	}

	bookmarks := make([]PinboardBookmark, len(entries))
	for i, entry := range entries {
		toread := "no"
		if entry.IsUnread {
			toread = "yes"
		}

		bookmarks[i] = PinboardBookmark{
			Href:        entry.URL,
			Description: entry.Title,
			Extended:    entry.Description,
			Time:        entry.CreatedAt.Format(time.RFC3339),
			ToRead:      toread,
		}
	}

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment; filename=homevault-bookmarks.json")
	}

	c.JSON(http.StatusOK, bookmarks)
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import", h.Import)
	rg.GET("/export", h.Export)
}
