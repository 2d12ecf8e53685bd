package access

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homevault/pkg/homevault/models"
	"homevault/pkg/homevault/shares"
)

// Handler serves the public share endpoint. It is the only unauthenticated
// way into a user's data, so everything goes through the policy evaluator
// before anything is returned.
type Handler struct {
	db        *gorm.DB
	evaluator *shares.Evaluator
	analytics *shares.Analytics
	logger    *logrus.Logger
}

// NewHandler creates a public access handler
func NewHandler(db *gorm.DB, logger *logrus.Logger) *Handler {
	return &Handler{
		db:        db,
		evaluator: shares.NewEvaluator(db),
		analytics: shares.NewAnalytics(db),
		logger:    logger,
	}
}

// statusForReason maps denial reasons onto HTTP status codes
func statusForReason(reason shares.Reason) int {
	switch reason {
	case shares.ReasonNotFound:
		return http.StatusNotFound
	case shares.ReasonRevoked, shares.ReasonExpired:
		return http.StatusGone
	case shares.ReasonPasswordRequired, shares.ReasonPasswordIncorrect:
		return http.StatusUnauthorized
	default:
		return http.StatusForbidden
	}
}

// Resolve serves a shared resource through its capability URL
// @Summary Access a shared resource
// @Description Evaluate a share link and, if access is granted, return the shared item
// @Tags shared
// @Produce json
// @Param shareId path string true "Share ID"
// @Param token query string true "Link token"
// @Param password query string false "Link password, when protected"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Password required or incorrect"
// @Failure 404 {object} map[string]string "Unknown link or bad token"
// @Failure 410 {object} map[string]string "Link revoked or expired"
// @Router /shared/{shareId} [get]
func (h *Handler) Resolve(c *gin.Context) {
	shareID := c.Param("shareId")

	decision := h.evaluator.Evaluate(shareID, c.Query("password"))

	// The token is part of the capability URL; a wrong token is treated
	// exactly like an unknown link.
	if decision.Link != nil && decision.Link.Token != c.Query("token") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found", "reason": shares.ReasonNotFound})
		return
	}

	if !decision.Granted {
		c.JSON(statusForReason(decision.Reason), gin.H{
			"error":  "Access denied",
			"reason": decision.Reason,
		})
		return
	}

	item, err := h.loadItem(decision.Link)
	if err != nil {
		h.logger.WithError(err).WithField("share_id", shareID).Error("failed to load shared item")
		c.JSON(http.StatusNotFound, gin.H{"error": "Shared item no longer exists"})
		return
	}

	// Only count accesses that actually reached the item
	if err := h.analytics.RecordAccess(shareID, c.ClientIP(), c.GetHeader("User-Agent")); err != nil {
		h.logger.WithError(err).WithField("share_id", shareID).Warn("failed to record access")
	}

	c.JSON(http.StatusOK, gin.H{
		"item_type":    decision.Link.ItemType,
		"access_level": decision.AccessLevel,
		"item":         item,
	})
}

// loadItem fetches the underlying resource for a granted link
func (h *Handler) loadItem(link *models.ShareLink) (interface{}, error) {
	switch link.ItemType {
	case models.ItemTypeNote:
		var note models.Note
		if err := h.db.Preload("Tags").First(&note, link.ItemID).Error; err != nil {
			return nil, err
		}
		return note, nil
	case models.ItemTypeBookmark:
		var bookmark models.Bookmark
		if err := h.db.First(&bookmark, link.ItemID).Error; err != nil {
			return nil, err
		}
		return bookmark, nil
	case models.ItemTypeFile:
		var file models.File
		if err := h.db.First(&file, link.ItemID).Error; err != nil {
			return nil, err
		}
		return file, nil
	case models.ItemTypePhoto:
		var photo models.Photo
		if err := h.db.First(&photo, link.ItemID).Error; err != nil {
			return nil, err
		}
		return photo, nil
	case models.ItemTypeAlbum:
		var album models.Album
		if err := h.db.Preload("Photos").First(&album, link.ItemID).Error; err != nil {
			return nil, err
		}
		return album, nil
	case models.ItemTypeMemo:
		var memo models.VoiceMemo
		if err := h.db.First(&memo, link.ItemID).Error; err != nil {
			return nil, err
		}
		return memo, nil
	case models.ItemTypeResume:
		var resume models.Resume
		if err := h.db.First(&resume, link.ItemID).Error; err != nil {
			return nil, err
		}
		return resume, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// RegisterRoutes registers the public share route on the root router.
// This should be called AFTER all other routes to avoid conflicts.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/shared/:shareId", h.Resolve)
}
