package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/middleware"
	"github.com/fabzclean/fabzclean-api/models"
)

// CreateServiceRequest represents the request body for creating a service
type CreateServiceRequest struct {
	Name            string          `json:"name" binding:"required"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes *int            `json:"duration_minutes" binding:"omitempty,gt=0"`
}

// UpdateServiceRequest represents the allow-listed request body for editing
// a service. Status may only move between active and inactive.
type UpdateServiceRequest struct {
	Name            *string          `json:"name" binding:"omitempty"`
	Price           *decimal.Decimal `json:"price" binding:"omitempty"`
	DurationMinutes *int             `json:"duration_minutes" binding:"omitempty,gt=0"`
	Status          *string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ListServices handles GET /api/v1/services - lists active services (public)
func ListServices(c *gin.Context) {
	db := config.GetDB()
	var svcs []models.Service
	if err := db.Where("status = ?", models.ServiceStatusActive).Find(&svcs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch services",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    svcs,
	})
}

// GetService handles GET /api/v1/services/:id - gets a single service (public)
func GetService(c *gin.Context) {
	db := config.GetDB()
	var svc models.Service
	if err := db.First(&svc, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    svc,
	})
}

// CreateService handles POST /api/v1/services - creates a service (admin only)
func CreateService(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Price must be greater than zero",
			},
		})
		return
	}

	svc := models.Service{
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Status:          models.ServiceStatusActive,
	}

	db := config.GetDB()
	if err := db.Create(&svc).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "A service with this name already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create service",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    svc,
	})
}

// UpdateService handles PUT /api/v1/services/:id - edits a service (admin only)
func UpdateService(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	db := config.GetDB()
	var svc models.Service
	if err := db.First(&svc, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// Build the allow-listed update set
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Price must be greater than zero",
				},
			})
			return
		}
		updates["price"] = *req.Price
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    svc,
		})
		return
	}

	if err := db.Model(&svc).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "A service with this name already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update service",
			},
		})
		return
	}

	if err := db.First(&svc, svc.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch updated service",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    svc,
	})
}

// requireAdmin checks the authenticated customer against the configured
// admin email and writes a 403 if it does not match. Returns true when the
// caller may proceed.
func requireAdmin(c *gin.Context) bool {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract customer information",
			},
		})
		return false
	}

	if customer.Email != config.GetConfig().AdminEmail {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Admin access required",
			},
		})
		return false
	}

	return true
}

// isUniqueViolation detects uniqueness-constraint errors from both
// PostgreSQL and SQLite
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
