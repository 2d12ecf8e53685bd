package files

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles folder and file metadata requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new files handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateFolderRequest represents the request to create a folder
type CreateFolderRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// CreateFileRequest represents the request to register a file
type CreateFileRequest struct {
	Name        string `json:"name" binding:"required"`
	FolderID    *uint  `json:"folder_id"`
	Size        int64  `json:"size" binding:"omitempty,min=0"`
	MimeType    string `json:"mime_type"`
	StoragePath string `json:"storage_path"`
}

// ownsFolder verifies the folder exists and belongs to the caller
func (h *Handler) ownsFolder(userID, folderID uint) bool {
	var folder models.Folder
	return h.db.Where("id = ? AND owner_id = ?", folderID, userID).First(&folder).Error == nil
}

// CreateFolder creates a new folder
// @Summary Create a folder
// @Tags files
// @Accept json
// @Produce json
// @Param request body CreateFolderRequest true "Folder details"
// @Success 201 {object} models.Folder
// @Security BearerAuth
// @Router /folders [post]
func (h *Handler) CreateFolder(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ParentID != nil && !h.ownsFolder(userID, *req.ParentID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent folder not found"})
		return
	}

	folder := models.Folder{OwnerID: userID, ParentID: req.ParentID, Name: req.Name}
	if err := h.db.Create(&folder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder"})
		return
	}

	c.JSON(http.StatusCreated, folder)
}

// ListFolders returns the caller's folders
// @Summary List folders
// @Tags files
// @Produce json
// @Param parent_id query int false "Filter by parent folder"
// @Success 200 {array} models.Folder
// @Security BearerAuth
// @Router /folders [get]
func (h *Handler) ListFolders(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Where("owner_id = ?", userID).Order("name ASC")
	if parentID := c.Query("parent_id"); parentID != "" {
		query = query.Where("parent_id = ?", parentID)
	}

	var folders []models.Folder
	if err := query.Find(&folders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folders"})
		return
	}

	c.JSON(http.StatusOK, folders)
}

// DeleteFolder deletes a folder and orphans its contents
// @Summary Delete a folder
// @Tags files
// @Produce json
// @Param id path int true "Folder ID"
// @Success 200 {object} map[string]string "Folder deleted"
// @Security BearerAuth
// @Router /folders/{id} [delete]
func (h *Handler) DeleteFolder(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder ID"})
		return
	}

	var folder models.Folder
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&folder).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	// Contained files move to the root rather than disappearing
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.File{}).Where("folder_id = ?", folder.ID).
			Update("folder_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Folder{}).Where("parent_id = ?", folder.ID).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&folder).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete folder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted"})
}

// CreateFile registers file metadata
// @Summary Register a file
// @Tags files
// @Accept json
// @Produce json
// @Param request body CreateFileRequest true "File metadata"
// @Success 201 {object} models.File
// @Security BearerAuth
// @Router /files [post]
func (h *Handler) CreateFile(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FolderID != nil && !h.ownsFolder(userID, *req.FolderID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	file := models.File{
		OwnerID:     userID,
		FolderID:    req.FolderID,
		Name:        req.Name,
		Size:        req.Size,
		MimeType:    req.MimeType,
		StoragePath: req.StoragePath,
	}

	if err := h.db.Create(&file).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register file"})
		return
	}

	c.JSON(http.StatusCreated, file)
}

// ListFiles returns the caller's files
// @Summary List files
// @Tags files
// @Produce json
// @Param folder_id query int false "Filter by folder"
// @Param q query string false "Search by name"
// @Success 200 {array} models.File
// @Security BearerAuth
// @Router /files [get]
func (h *Handler) ListFiles(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Where("owner_id = ?", userID).Order("name ASC")
	if folderID := c.Query("folder_id"); folderID != "" {
		query = query.Where("folder_id = ?", folderID)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}

	var files []models.File
	if err := query.Find(&files).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	c.JSON(http.StatusOK, files)
}

// DeleteFile removes file metadata
// @Summary Delete a file
// @Tags files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} map[string]string "File deleted"
// @Security BearerAuth
// @Router /files/{id} [delete]
func (h *Handler) DeleteFile(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	var file models.File
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&file).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if err := h.db.Delete(&file).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}

// RegisterRoutes registers folder and file routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/folders", h.CreateFolder)
	rg.GET("/folders", h.ListFolders)
	rg.DELETE("/folders/:id", h.DeleteFolder)
	rg.POST("/files", h.CreateFile)
	rg.GET("/files", h.ListFiles)
	rg.DELETE("/files/:id", h.DeleteFile)
}
