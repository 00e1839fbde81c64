package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/middleware"
	"github.com/fabzclean/fabzclean-api/models"
	"github.com/fabzclean/fabzclean-api/services"
	"github.com/fabzclean/fabzclean-api/utils"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	ServiceID    uint       `json:"service_id" binding:"required"`
	PickupDate   *time.Time `json:"pickup_date" binding:"omitempty"`
	Instructions *string    `json:"instructions" binding:"omitempty"`
}

// UpdateOrderRequest represents the allow-listed request body for editing an
// order. Status is deliberately absent: it only changes through worker scans.
type UpdateOrderRequest struct {
	PickupDate   *time.Time `json:"pickup_date" binding:"omitempty"`
	Instructions *string    `json:"instructions" binding:"omitempty"`
}

// CreateOrder handles POST /api/v1/orders - creates a new order for the
// authenticated customer.
//
// The order row is committed first; the QR label is generated afterwards,
// best-effort. A label failure leaves the order intact and is reported as a
// warning on the 201 response.
func CreateOrder(c *gin.Context) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract customer information",
			},
		})
		return
	}

	var req CreateOrderRequest
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

	orderNumber, err := utils.GenerateOrderNumber()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to generate order number",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	var svc models.Service

	// Service lookup, price snapshot and order insert commit as one unit
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("status = ?", models.ServiceStatusActive).
			First(&svc, req.ServiceID).Error; err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:  orderNumber,
			CustomerID:   customer.ID,
			ServiceID:    svc.ID,
			PickupDate:   req.PickupDate,
			Instructions: req.Instructions,
			TotalCost:    svc.Price,
			Status:       models.OrderStatusCreated,
		}

		return tx.Create(&order).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REFERENCE",
					"message": "Service does not exist or is inactive",
				},
			})
			return
		}

		if isUniqueViolation(txErr) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "Order number collision, please retry",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// Label generation is best-effort: the order already exists and must
	// survive a labeling failure.
	var warnings []string
	labelService := services.GetLabelService()
	labelKey, labelErr := labelService.GenerateLabel(order.OrderNumber, map[string]string{
		"order_number": order.OrderNumber,
		"email":        customer.Email,
		"service":      svc.Name,
	})
	if labelErr != nil {
		log.Printf("Label generation failed for order %s: %v", order.OrderNumber, labelErr)
		warnings = append(warnings, "Label generation failed; the order was created without a label")
	} else {
		if err := db.Model(&order).Update("label_s3_key", labelKey).Error; err != nil {
			log.Printf("Failed to store label key for order %s: %v", order.OrderNumber, err)
			warnings = append(warnings, "Label was generated but could not be attached to the order")
		} else {
			order.LabelS3Key = &labelKey
		}
	}

	// Load the service relationship to return complete data
	if err := db.Preload("Service").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}
	attachLabelURL(&order)

	response := gin.H{
		"success": true,
		"data":    order,
	}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}
	c.JSON(http.StatusCreated, response)
}

// ListOrders handles GET /api/v1/orders - lists the authenticated
// customer's orders
func ListOrders(c *gin.Context) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract customer information",
			},
		})
		return
	}

	db := config.GetDB()
	var orders []models.Order
	if err := db.Where("customer_id = ?", customer.ID).
		Preload("Service").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	for i := range orders {
		attachLabelURL(&orders[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - gets a single order (owner only)
func GetOrder(c *gin.Context) {
	order, ok := fetchOwnedOrder(c)
	if !ok {
		return
	}

	db := config.GetDB()
	if err := db.Preload("Service").First(order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}
	attachLabelURL(order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT /api/v1/orders/:id - updates pickup date and
// instructions (owner only). Status is never settable here.
func UpdateOrder(c *gin.Context) {
	order, ok := fetchOwnedOrder(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
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
	if req.PickupDate != nil {
		updates["pickup_date"] = *req.PickupDate
	}
	if req.Instructions != nil {
		updates["instructions"] = *req.Instructions
	}

	db := config.GetDB()
	if len(updates) > 0 {
		if err := db.Model(order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update order",
				},
			})
			return
		}
	}

	if err := db.Preload("Service").First(order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}
	attachLabelURL(order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - hard-deletes an order and
// its track history in one transaction (owner only)
func DeleteOrder(c *gin.Context) {
	order, ok := fetchOwnedOrder(c)
	if !ok {
		return
	}

	db := config.GetDB()
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.Track{}).Error; err != nil {
			return err
		}
		return tx.Delete(order).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete order",
			},
		})
		return
	}

	// Best-effort label cleanup; the S3 object is orphaned otherwise
	if order.LabelS3Key != nil {
		if err := services.GetLabelService().DeleteLabel(*order.LabelS3Key); err != nil {
			log.Printf("Failed to delete label for order %s: %v", order.OrderNumber, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"deleted": true,
		},
	})
}

// ListOrderTracks handles GET /api/v1/orders/:id/tracks - lists the audit
// history for an order (owner only), oldest first
func ListOrderTracks(c *gin.Context) {
	order, ok := fetchOwnedOrder(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var tracks []models.Track
	if err := db.Where("order_id = ?", order.ID).
		Preload("Worker").
		Order("created_at ASC").
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch track history",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tracks,
	})
}

// fetchOwnedOrder loads the order from the :id parameter and enforces
// ownership. An order that exists but belongs to another customer yields
// 403, never 404, so existence and ownership stay distinguishable.
func fetchOwnedOrder(c *gin.Context) (*models.Order, bool) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract customer information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Order not found",
			},
		})
		return nil, false
	}

	if order.CustomerID != customer.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to access this order",
			},
		})
		return nil, false
	}

	return &order, true
}

// attachLabelURL populates the computed LabelURL field from the stored S3 key
func attachLabelURL(order *models.Order) {
	if order.LabelS3Key == nil || *order.LabelS3Key == "" {
		return
	}

	url, err := services.GetLabelService().GetLabelURL(*order.LabelS3Key)
	if err != nil {
		log.Printf("Failed to generate label URL for order %s: %v", order.OrderNumber, err)
		return
	}
	if url != "" {
		order.LabelURL = &url
	}
}
