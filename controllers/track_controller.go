package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/models"
)

// recentTracksLimit caps the global track feed at the most recent entries.
const recentTracksLimit = 200

// ListRecentTracks handles GET /api/v1/tracks - lists the most recent scan
// events across all orders, newest first (admin only). This is the
// operational feed for spotting stalled orders; per-order history stays on
// GET /orders/:id/tracks.
func ListRecentTracks(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	db := config.GetDB()
	var tracks []models.Track
	if err := db.Preload("Worker").
		Order("created_at DESC").
		Limit(recentTracksLimit).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch recent tracks",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tracks,
	})
}
