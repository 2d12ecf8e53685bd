package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles admin requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new admin handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// UserResponse represents user data in admin responses
type UserResponse struct {
	ID             uint   `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	SystemRole     string `json:"system_role"`
	CreatedAt      string `json:"created_at"`
	NoteCount      int64  `json:"note_count"`
	BookmarkCount  int64  `json:"bookmark_count"`
	ShareLinkCount int64  `json:"share_link_count"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	SystemRole *string `json:"system_role"`
}

// StatsResponse represents system statistics
type StatsResponse struct {
	TotalUsers      int64 `json:"total_users"`
	TotalNotes      int64 `json:"total_notes"`
	TotalBookmarks  int64 `json:"total_bookmarks"`
	TotalFiles      int64 `json:"total_files"`
	TotalPhotos     int64 `json:"total_photos"`
	TotalShareLinks int64 `json:"total_share_links"`
	ActiveShares    int64 `json:"active_shares"`
	RevokedShares   int64 `json:"revoked_shares"`
	TotalShareViews int64 `json:"total_share_views"`
	AdminUsers      int64 `json:"admin_users"`
}

func (h *Handler) userResponse(user models.User) UserResponse {
	var noteCount, bookmarkCount, shareCount int64
	h.db.Model(&models.Note{}).Where("owner_id = ?", user.ID).Count(&noteCount)
	h.db.Model(&models.Bookmark{}).Where("owner_id = ?", user.ID).Count(&bookmarkCount)
	h.db.Model(&models.ShareLink{}).Where("owner_id = ?", user.ID).Count(&shareCount)

	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		SystemRole:     string(user.SystemRole),
		CreatedAt:      user.CreatedAt.Format("2006-01-02T15:04:05Z"),
		NoteCount:      noteCount,
		BookmarkCount:  bookmarkCount,
		ShareLinkCount: shareCount,
	}
}

// ListUsers returns all users (admin only)
// @Summary List users
// @Tags admin
// @Produce json
// @Param q query string false "Search by email or name"
// @Param role query string false "Filter by system role"
// @Success 200 {array} UserResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	var users []models.User

	query := h.db.Order("created_at DESC")

	if search := c.Query("q"); search != "" {
		query = query.Where("email LIKE ? OR name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("system_role = ?", role)
	}

	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = h.userResponse(user)
	}

	c.JSON(http.StatusOK, responses)
}

// GetUser returns a single user by ID (admin only)
// @Summary Get a user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, h.userResponse(user))
}

// UpdateUser updates a user's profile (admin only)
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Prevent admin from demoting themselves
	currentUserID, _ := auth.GetUserID(c)
	if uint(id) == currentUserID && req.SystemRole != nil && *req.SystemRole != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot demote yourself"})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SystemRole != nil {
		if *req.SystemRole != "admin" && *req.SystemRole != "user" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid system role"})
			return
		}
		updates["system_role"] = *req.SystemRole
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
	}

	h.db.First(&user, id)
	c.JSON(http.StatusOK, h.userResponse(user))
}

// DeleteUser deletes a user and all their data (admin only)
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string "User deleted"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	// Prevent admin from deleting themselves
	currentUserID, _ := auth.GetUserID(c)
	if uint(id) == currentUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete yourself"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Delete user and all owned data in a transaction. Share links go
	// first so no capability URL outlives its item.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var links []models.ShareLink
		if err := tx.Where("owner_id = ?", user.ID).Find(&links).Error; err != nil {
			return err
		}
		for _, link := range links {
			if err := tx.Where("share_link_id = ?", link.ID).Delete(&models.AccessEvent{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("owner_id = ?", user.ID).Delete(&models.ShareLink{}).Error; err != nil {
			return err
		}
		owned := []interface{}{
			&models.Note{}, &models.Tag{}, &models.Bookmark{}, &models.BookmarkFolder{},
			&models.PasswordEntry{}, &models.WalletCard{}, &models.VoiceMemo{},
			&models.File{}, &models.Folder{}, &models.Photo{}, &models.Album{},
			&models.Resume{},
		}
		for _, model := range owned {
			if err := tx.Where("owner_id = ?", user.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetStats returns system-wide statistics (admin only)
// @Summary Get instance statistics
// @Tags admin
// @Produce json
// @Success 200 {object} StatsResponse
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	var stats StatsResponse

	h.db.Model(&models.User{}).Count(&stats.TotalUsers)
	h.db.Model(&models.Note{}).Count(&stats.TotalNotes)
	h.db.Model(&models.Bookmark{}).Count(&stats.TotalBookmarks)
	h.db.Model(&models.File{}).Count(&stats.TotalFiles)
	h.db.Model(&models.Photo{}).Count(&stats.TotalPhotos)
	h.db.Model(&models.ShareLink{}).Count(&stats.TotalShareLinks)

	h.db.Model(&models.ShareLink{}).Where("revoked = ?", false).Count(&stats.ActiveShares)
	h.db.Model(&models.ShareLink{}).Where("revoked = ?", true).Count(&stats.RevokedShares)
	h.db.Model(&models.User{}).Where("system_role = ?", "admin").Count(&stats.AdminUsers)

	// Sum of all view counts
	h.db.Model(&models.ShareLink{}).Select("COALESCE(SUM(views), 0)").Scan(&stats.TotalShareViews)

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers admin routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetStats)
	rg.GET("/users", h.ListUsers)
	rg.GET("/users/:id", h.GetUser)
	rg.PUT("/users/:id", h.UpdateUser)
	rg.DELETE("/users/:id", h.DeleteUser)
}
