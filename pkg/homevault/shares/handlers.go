package shares

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles share link management requests
type Handler struct {
	registry  *Registry
	analytics *Analytics
}

// NewHandler creates a share links handler
func NewHandler(db *gorm.DB, baseURL string) *Handler {
	return &Handler{
		registry:  NewRegistry(db, baseURL),
		analytics: NewAnalytics(db),
	}
}

// CreateShareLinkRequest represents the request to create a share link
type CreateShareLinkRequest struct {
	ItemID      uint       `json:"item_id" binding:"required"`
	ItemType    string     `json:"item_type" binding:"required"`
	Expiry      *time.Time `json:"expiry"`
	Password    string     `json:"password"`
	AccessLevel string     `json:"access_level"`
}

// UpdateShareLinkRequest represents a partial update to a share link
type UpdateShareLinkRequest struct {
	Expiry        *time.Time `json:"expiry"`
	ClearExpiry   bool       `json:"clear_expiry"`
	Password      *string    `json:"password"`
	ClearPassword bool       `json:"clear_password"`
	AccessLevel   *string    `json:"access_level"`
}

// ShareLinkResponse represents a share link in API responses
type ShareLinkResponse struct {
	ShareID           string     `json:"share_id"`
	Link              string     `json:"link"`
	ItemID            uint       `json:"item_id"`
	ItemType          string     `json:"item_type"`
	Expiry            *time.Time `json:"expiry,omitempty"`
	PasswordProtected bool       `json:"password_protected"`
	AccessLevel       string     `json:"access_level"`
	Revoked           bool       `json:"revoked"`
	Views             uint       `json:"views"`
	CreatedAt         string     `json:"created_at"`
}

func (h *Handler) toResponse(link *models.ShareLink) ShareLinkResponse {
	return ShareLinkResponse{
		ShareID:           link.ShareID,
		Link:              h.registry.PublicURL(link),
		ItemID:            link.ItemID,
		ItemType:          string(link.ItemType),
		Expiry:            link.Expiry,
		PasswordProtected: link.PasswordProtected,
		AccessLevel:       string(link.AccessLevel),
		Revoked:           link.Revoked,
		Views:             link.Views,
		CreatedAt:         link.CreatedAt.Format(time.RFC3339),
	}
}

// respondError maps the typed registry errors onto HTTP status codes.
// Callers branch on error kind, never on message text.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		forbiddenErr  *ForbiddenError
		conflictErr   *ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found"})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, gin.H{"error": forbiddenErr.Message})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// Create creates a new share link
// @Summary Create a share link
// @Description Create a capability URL for one owned resource
// @Tags share-links
// @Accept json
// @Produce json
// @Param request body CreateShareLinkRequest true "Share link settings"
// @Success 201 {object} ShareLinkResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /share-links [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.registry.Create(userID, req.ItemID, models.ItemType(req.ItemType), CreateOptions{
		Expiry:      req.Expiry,
		Password:    req.Password,
		AccessLevel: models.AccessLevel(req.AccessLevel),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(link))
}

// List returns all of the caller's share links in creation order
// @Summary List share links
// @Description List every share link owned by the caller, revoked included
// @Tags share-links
// @Produce json
// @Success 200 {object} map[string][]ShareLinkResponse
// @Security BearerAuth
// @Router /share-links [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	links, err := h.registry.ListByOwner(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]ShareLinkResponse, len(links))
	for i := range links {
		responses[i] = h.toResponse(&links[i])
	}

	c.JSON(http.StatusOK, gin.H{"shared_links": responses})
}

// Get returns one share link owned by the caller
// @Summary Get a share link
// @Tags share-links
// @Produce json
// @Param id path string true "Share ID"
// @Success 200 {object} ShareLinkResponse
// @Failure 404 {object} map[string]string "Share link not found"
// @Security BearerAuth
// @Router /share-links/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	link, err := h.registry.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Management reads are owner-scoped; hide other owners' links
	if link.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found"})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(link))
}

// Update applies a partial patch to a share link
// @Summary Update a share link
// @Description Change expiry, password protection or access level
// @Tags share-links
// @Accept json
// @Produce json
// @Param id path string true "Share ID"
// @Param request body UpdateShareLinkRequest true "Fields to change"
// @Success 200 {object} ShareLinkResponse
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Share link not found"
// @Failure 409 {object} map[string]string "Link already revoked"
// @Security BearerAuth
// @Router /share-links/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req UpdateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := UpdatePatch{
		Expiry:        req.Expiry,
		ClearExpiry:   req.ClearExpiry,
		Password:      req.Password,
		ClearPassword: req.ClearPassword,
	}
	if req.AccessLevel != nil {
		level := models.AccessLevel(*req.AccessLevel)
		patch.AccessLevel = &level
	}

	link, err := h.registry.Update(c.Param("id"), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(link))
}

// Revoke marks a share link permanently inert
// @Summary Revoke a share link
// @Description Revoke a link (idempotent); the record remains queryable
// @Tags share-links
// @Produce json
// @Param id path string true "Share ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Share link not found"
// @Security BearerAuth
// @Router /share-links/{id} [delete]
func (h *Handler) Revoke(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	if err := h.registry.Revoke(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete hard-removes a share link and its access events
// @Summary Permanently delete a share link
// @Description Hard delete; access events are removed with the link
// @Tags share-links
// @Produce json
// @Param id path string true "Share ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Share link not found"
// @Security BearerAuth
// @Router /share-links/{id}/permanent [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	if err := h.registry.Delete(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Analytics reports access statistics for one share link
// @Summary Share link analytics
// @Description Total views, distinct visitors, last access and the access log
// @Tags share-links
// @Produce json
// @Param id path string true "Share ID"
// @Success 200 {object} Summary
// @Failure 404 {object} map[string]string "Share link not found"
// @Security BearerAuth
// @Router /share-links/{id}/analytics [get]
func (h *Handler) Analytics(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	link, err := h.registry.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if link.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found"})
		return
	}

	summary, err := h.analytics.Summarize(link.ShareID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RegisterRoutes registers share link management routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/share-links", h.Create)
	rg.GET("/share-links", h.List)
	rg.GET("/share-links/:id", h.Get)
	rg.PATCH("/share-links/:id", h.Update)
	rg.DELETE("/share-links/:id", h.Revoke)
	rg.DELETE("/share-links/:id/permanent", h.Delete)
	rg.GET("/share-links/:id/analytics", h.Analytics)
}
