package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/middleware"
)

// UpdateCustomerRequest represents the request body for updating a customer
// profile. Only these fields may be changed; anything else in the body is
// ignored.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty"`
	Phone *string `json:"phone" binding:"omitempty"`
}

// GetMyProfile handles GET /api/v1/customers/me - gets current customer's profile
func GetMyProfile(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// UpdateMyProfile handles PUT /api/v1/customers/me - updates current customer's profile
func UpdateMyProfile(c *gin.Context) {
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

	var req UpdateCustomerRequest
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
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	// If no fields to update, return current customer
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    customer,
		})
		return
	}

	db := config.GetDB()
	if err := db.Model(customer).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update customer profile",
			},
		})
		return
	}

	// Fetch updated customer to return
	if err := db.First(customer, customer.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch updated profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}
