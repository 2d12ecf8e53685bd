package vault

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Handler handles password entry and wallet card requests.
// Secrets arrive as ciphertext produced client-side; the server only
// stores and returns the opaque blobs.
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new vault handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreatePasswordRequest represents the request to store a credential
type CreatePasswordRequest struct {
	Site       string `json:"site" binding:"required"`
	Username   string `json:"username"`
	Ciphertext string `json:"ciphertext" binding:"required"`
	Notes      string `json:"notes"`
}

// CreateWalletCardRequest represents the request to store a card
type CreateWalletCardRequest struct {
	Label      string `json:"label" binding:"required"`
	Holder     string `json:"holder"`
	LastFour   string `json:"last_four" binding:"omitempty,len=4,numeric"`
	Ciphertext string `json:"ciphertext" binding:"required"`
	ExpiresMM  int    `json:"expires_mm" binding:"omitempty,min=1,max=12"`
	ExpiresYY  int    `json:"expires_yy"`
}

// CreatePassword stores a new credential
// @Summary Store a password entry
// @Tags vault
// @Accept json
// @Produce json
// @Param request body CreatePasswordRequest true "Credential"
// @Success 201 {object} models.PasswordEntry
// @Security BearerAuth
// @Router /passwords [post]
func (h *Handler) CreatePassword(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.PasswordEntry{
		OwnerID:    userID,
		Site:       req.Site,
		Username:   req.Username,
		Ciphertext: req.Ciphertext,
		Notes:      req.Notes,
	}

	if err := h.db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store password entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListPasswords returns the caller's stored credentials
// @Summary List password entries
// @Tags vault
// @Produce json
// @Param q query string false "Search by site or username"
// @Success 200 {array} models.PasswordEntry
// @Security BearerAuth
// @Router /passwords [get]
func (h *Handler) ListPasswords(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Where("owner_id = ?", userID).Order("site ASC")
	if q := c.Query("q"); q != "" {
		term := "%" + q + "%"
		query = query.Where("site LIKE ? OR username LIKE ?", term, term)
	}

	var entries []models.PasswordEntry
	if err := query.Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch password entries"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// DeletePassword removes a stored credential
// @Summary Delete a password entry
// @Tags vault
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]string "Entry deleted"
// @Security BearerAuth
// @Router /passwords/{id} [delete]
func (h *Handler) DeletePassword(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return
	}

	var entry models.PasswordEntry
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	if err := h.db.Delete(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// CreateWalletCard stores a new card record
// @Summary Store a wallet card
// @Tags vault
// @Accept json
// @Produce json
// @Param request body CreateWalletCardRequest true "Card details"
// @Success 201 {object} models.WalletCard
// @Security BearerAuth
// @Router /wallet-cards [post]
func (h *Handler) CreateWalletCard(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateWalletCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := models.WalletCard{
		OwnerID:    userID,
		Label:      req.Label,
		Holder:     req.Holder,
		LastFour:   req.LastFour,
		Ciphertext: req.Ciphertext,
		ExpiresMM:  req.ExpiresMM,
		ExpiresYY:  req.ExpiresYY,
	}

	if err := h.db.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store wallet card"})
		return
	}

	c.JSON(http.StatusCreated, card)
}

// ListWalletCards returns the caller's stored cards
// @Summary List wallet cards
// @Tags vault
// @Produce json
// @Success 200 {array} models.WalletCard
// @Security BearerAuth
// @Router /wallet-cards [get]
func (h *Handler) ListWalletCards(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var cards []models.WalletCard
	if err := h.db.Where("owner_id = ?", userID).Order("label ASC").Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallet cards"})
		return
	}

	c.JSON(http.StatusOK, cards)
}

// DeleteWalletCard removes a stored card
// @Summary Delete a wallet card
// @Tags vault
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} map[string]string "Card deleted"
// @Security BearerAuth
// @Router /wallet-cards/{id} [delete]
func (h *Handler) DeleteWalletCard(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID"})
		return
	}

	var card models.WalletCard
	if err := h.db.Where("id = ? AND owner_id = ?", id, userID).First(&card).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	if err := h.db.Delete(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}

// RegisterRoutes registers vault routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/passwords", h.CreatePassword)
	rg.GET("/passwords", h.ListPasswords)
	rg.DELETE("/passwords/:id", h.DeletePassword)
	rg.POST("/wallet-cards", h.CreateWalletCard)
	rg.GET("/wallet-cards", h.ListWalletCards)
	rg.DELETE("/wallet-cards/:id", h.DeleteWalletCard)
}
