package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/middleware"
	"github.com/fabzclean/fabzclean-api/models"
	"github.com/fabzclean/fabzclean-api/utils"
)

// errIllegalTransition aborts the scan transaction when strict transition
// checking rejects the requested status change
var errIllegalTransition = errors.New("illegal status transition")

// RegisterWorkerRequest represents the request body for registering a worker
type RegisterWorkerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// WorkerLoginRequest represents the request body for worker token rotation
type WorkerLoginRequest struct {
	WorkerID uint `json:"worker_id" binding:"required"`
}

// ScanRequest represents the request body for recording a worker scan
type ScanRequest struct {
	OrderNumber string  `json:"order_number" binding:"required"`
	Action      string  `json:"action" binding:"required"`
	Note        *string `json:"note" binding:"omitempty"`
	Location    *string `json:"location" binding:"omitempty"`
}

// RegisterWorker handles POST /api/v1/workers/register - creates a worker
// with a fresh device token (admin only)
func RegisterWorker(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req RegisterWorkerRequest
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

	token, err := utils.GenerateWorkerToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to generate worker token",
			},
		})
		return
	}

	worker := models.Worker{
		Name:  req.Name,
		Email: req.Email,
		Token: token,
	}

	db := config.GetDB()
	if err := db.Create(&worker).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "A worker with this email already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create worker",
			},
		})
		return
	}

	// The token is returned exactly once, at registration or login
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"worker":       worker,
			"worker_token": token,
		},
	})
}

// WorkerLogin handles POST /api/v1/workers/login - rotates and returns a
// worker's device token (admin only, since tokens grant scan access)
func WorkerLogin(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req WorkerLoginRequest
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

	db := config.GetDB()
	var worker models.Worker
	if err := db.First(&worker, req.WorkerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Worker not found",
			},
		})
		return
	}

	token, err := utils.GenerateWorkerToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to generate worker token",
			},
		})
		return
	}

	// Rotating invalidates any previously issued token
	if err := db.Model(&worker).Update("token", token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to rotate worker token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"worker":       worker,
			"worker_token": token,
		},
	})
}

// Scan handles POST /api/v1/workers/scan - records a scan event against an
// order and drives its status transition.
//
// The track append and the status update commit as a single transaction:
// either both land or neither does. Unrecognized actions still append a
// track but never touch the status.
func Scan(c *gin.Context) {
	worker, err := middleware.GetWorker(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract worker information",
			},
		})
		return
	}

	var req ScanRequest
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

	cfg := config.GetConfig()
	db := config.GetDB()

	var track models.Track
	var order models.Order

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_number = ?", req.OrderNumber).First(&order).Error; err != nil {
			return err
		}

		if newStatus, recognized := models.StatusForAction(req.Action); recognized {
			if cfg.StrictTransitions && !models.CanTransition(order.Status, newStatus) {
				return errIllegalTransition
			}
			if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
				return err
			}
			order.Status = newStatus
		}

		track = models.Track{
			OrderID:  order.ID,
			WorkerID: &worker.ID,
			Action:   req.Action,
			Note:     req.Note,
			Location: req.Location,
		}
		return tx.Create(&track).Error
	})

	if txErr != nil {
		if errors.Is(txErr, errIllegalTransition) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "Action is not a legal transition from the order's current status",
				},
			})
			return
		}

		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to record scan",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"track":        track,
			"order_status": order.Status,
		},
	})
}
