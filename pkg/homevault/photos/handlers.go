package photos

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles album and photo requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new photos handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateAlbumRequest represents the request to create an album
type CreateAlbumRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreatePhotoRequest represents the request to register a photo
type CreatePhotoRequest struct {
	AlbumID     *uint      `json:"album_id"`
	Caption     string     `json:"caption"`
	StoragePath string     `json:"storage_path"`
	TakenAt     *time.Time `json:"taken_at"`
}

// ownsAlbum verifies the album exists and belongs to the caller
func (h *Handler) ownsAlbum(userID, albumID uint) bool {
	var album models.Album
	return h.db.Where("id = ? AND owner_id = ?", albumID, userID).First(&album).Error == nil
}

// CreateAlbum creates a new album
// @Summary Create an album
// @Tags photos
// @Accept json
// @Produce json
// @Param request body CreateAlbumRequest true "Album details"
// @Success 201 {object} models.Album
// @Security BearerAuth
// @Router /albums [post]
func (h *Handler) CreateAlbum(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	album := models.Album{OwnerID: userID, Name: req.Name, Description: req.Description}
	if err := h.db.Create(&album).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create album"})
		return
	}

	c.JSON(http.StatusCreated, album)
}

// ListAlbums returns the caller's albums
// @Summary List albums
// @Tags photos
// @Produce json
// @Success 200 {array} models.Album
// @Security BearerAuth
// @Router /albums [get]
func (h *Handler) ListAlbums(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var albums []models.Album
	if err := h.db.Where("owner_id = ?", userID).Order("name ASC").Find(&albums).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch albums"})
		return
	}

	c.JSON(http.StatusOK, albums)
}

// GetAlbum returns one album with its photos
// @Summary Get an album
// @Tags photos
// @Produce json
// @Param id path int true "Album ID"
// @Success 200 {object} models.Album
// @Failure 404 {object} map[string]string "Album not found"
// @Security BearerAuth
// @Router /albums/{id} [get]
func (h *Handler) GetAlbum(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid album ID"})
		return
	}

	var album models.Album
	if err := h.db.Preload("Photos").Where("id = ? AND owner_id = ?", id, userID).First(&album).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}

	c.JSON(http.StatusOK, album)
}

// DeleteAlbum deletes an album, leaving its photos without an album
// @Summary Delete an album
// @Tags photos
// @Produce json
// @Param id path int true "Album ID"
// @Success 200 {object} map[string]string "Album deleted"
// @Security BearerAuth
// @Router /albums/{id} [delete]
func (h *Handler) DeleteAlbum(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid album ID"})
		return
	}

	var album models.Album
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&album).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Photo{}).Where("album_id = ?", album.ID).
			Update("album_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&album).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete album"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Album deleted"})
}

// CreatePhoto registers photo metadata
// @Summary Register a photo
// @Tags photos
// @Accept json
// @Produce json
// @Param request body CreatePhotoRequest true "Photo metadata"
// @Success 201 {object} models.Photo
// @Security BearerAuth
// @Router /photos [post]
func (h *Handler) CreatePhoto(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.AlbumID != nil && !h.ownsAlbum(userID, *req.AlbumID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}

	photo := models.Photo{
		OwnerID:     userID,
		AlbumID:     req.AlbumID,
		Caption:     req.Caption,
		StoragePath: req.StoragePath,
		TakenAt:     req.TakenAt,
	}

	if err := h.db.Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register photo"})
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// ListPhotos returns the caller's photos
// @Summary List photos
// @Tags photos
// @Produce json
// @Param album_id query int false "Filter by album"
// @Success 200 {array} models.Photo
// @Security BearerAuth
// @Router /photos [get]
func (h *Handler) ListPhotos(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Where("owner_id = ?", userID).Order("created_at DESC")
	if albumID := c.Query("album_id"); albumID != "" {
		query = query.Where("album_id = ?", albumID)
	}

	var photos []models.Photo
	if err := query.Find(&photos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photos"})
		return
	}

	c.JSON(http.StatusOK, photos)
}

// DeletePhoto removes photo metadata
// @Summary Delete a photo
// @Tags photos
// @Produce json
// @Param id path int true "Photo ID"
// @Success 200 {object} map[string]string "Photo deleted"
// @Security BearerAuth
// @Router /photos/{id} [delete]
func (h *Handler) DeletePhoto(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
		return
	}

	var photo models.Photo
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&photo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	if err := h.db.Delete(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}

// RegisterRoutes registers album and photo routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/albums", h.CreateAlbum)
	rg.GET("/albums", h.ListAlbums)
	rg.GET("/albums/:id", h.GetAlbum)
	rg.DELETE("/albums/:id", h.DeleteAlbum)
	rg.POST("/photos", h.CreatePhoto)
	rg.GET("/photos", h.ListPhotos)
	rg.DELETE("/photos/:id", h.DeletePhoto)
}
