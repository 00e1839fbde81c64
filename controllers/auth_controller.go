package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/models"
	"github.com/fabzclean/fabzclean-api/services"
)

// RegisterRequest represents the request body for customer registration
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone" binding:"omitempty"`
	Password string  `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for customer login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register - creates a customer account
// and returns an access/refresh token pair
func Register(c *gin.Context) {
	var req RegisterRequest
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

	passwordHash, err := services.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to process password",
			},
		})
		return
	}

	customer := models.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	db := config.GetDB()
	if err := db.Create(&customer).Error; err != nil {
		// Check for duplicate email (works with both PostgreSQL and SQLite)
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "A customer with this email already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create customer",
			},
		})
		return
	}

	issueTokens(c, http.StatusCreated, &customer)
}

// Login handles POST /api/v1/auth/login - verifies credentials and returns
// an access/refresh token pair
func Login(c *gin.Context) {
	var req LoginRequest
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
	var customer models.Customer
	if err := db.Where("email = ?", req.Email).First(&customer).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid email or password",
			},
		})
		return
	}

	if !services.CheckPassword(customer.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid email or password",
			},
		})
		return
	}

	if !customer.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ACCOUNT_DISABLED",
				"message": "Customer account is disabled",
			},
		})
		return
	}

	issueTokens(c, http.StatusOK, &customer)
}

// issueTokens signs an access/refresh pair for the customer and writes the
// auth response envelope
func issueTokens(c *gin.Context, status int, customer *models.Customer) {
	cfg := config.GetConfig()

	accessToken, err := services.GenerateAccessToken(cfg, customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to issue access token",
			},
		})
		return
	}

	refreshToken, err := services.GenerateRefreshToken(cfg, customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to issue refresh token",
			},
		})
		return
	}

	c.JSON(status, gin.H{
		"success": true,
		"data": gin.H{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"customer":      customer,
		},
	})
}
