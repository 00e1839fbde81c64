package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/models"
	"github.com/fabzclean/fabzclean-api/services"
)

// Principal kinds
const (
	PrincipalCustomer = "customer"
	PrincipalWorker   = "worker"
)

// Principal is the authenticated identity attached to a request. Kind
// discriminates between the two credential paths: customer JWTs and
// worker device tokens.
type Principal struct {
	Kind     string
	Customer *models.Customer
	Worker   *models.Worker
}

const principalContextKey = "principal"

// RequireCustomer is a middleware that validates a customer JWT from the
// Authorization header and loads the matching customer row. The request is
// aborted with 401 on any failure.
func RequireCustomer(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "MISSING_TOKEN", "Authorization header with Bearer token is required")
			return
		}

		claims, err := services.ValidateToken(cfg, token)
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Failed to validate token")
			return
		}

		db := config.GetDB()
		var customer models.Customer
		if err := db.First(&customer, claims.CustomerID).Error; err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Token does not match a known customer")
			return
		}

		if !customer.IsActive {
			abortUnauthorized(c, "ACCOUNT_DISABLED", "Customer account is disabled")
			return
		}

		c.Set(principalContextKey, &Principal{Kind: PrincipalCustomer, Customer: &customer})
		c.Next()
	}
}

// RequireWorker is a middleware that authenticates a worker by exact match
// of the opaque bearer token against stored worker tokens.
func RequireWorker() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "MISSING_TOKEN", "Authorization header with Bearer token is required")
			return
		}

		db := config.GetDB()
		var worker models.Worker
		if err := db.Where("token = ?", token).First(&worker).Error; err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid worker token")
			return
		}

		c.Set(principalContextKey, &Principal{Kind: PrincipalWorker, Worker: &worker})
		c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from the Gin context
func GetPrincipal(c *gin.Context) (*Principal, error) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_PRINCIPAL", Message: "No authenticated principal in context"}
	}

	principal, ok := value.(*Principal)
	if !ok {
		return nil, &AuthError{Code: "INVALID_PRINCIPAL", Message: "Principal is not in the expected format"}
	}

	return principal, nil
}

// GetCustomer extracts the authenticated customer from the Gin context
func GetCustomer(c *gin.Context) (*models.Customer, error) {
	principal, err := GetPrincipal(c)
	if err != nil {
		return nil, err
	}

	if principal.Kind != PrincipalCustomer || principal.Customer == nil {
		return nil, &AuthError{Code: "WRONG_PRINCIPAL_KIND", Message: "Request is not authenticated as a customer"}
	}

	return principal.Customer, nil
}

// GetWorker extracts the authenticated worker from the Gin context
func GetWorker(c *gin.Context) (*models.Worker, error) {
	principal, err := GetPrincipal(c)
	if err != nil {
		return nil, err
	}

	if principal.Kind != PrincipalWorker || principal.Worker == nil {
		return nil, &AuthError{Code: "WRONG_PRINCIPAL_KIND", Message: "Request is not authenticated as a worker"}
	}

	return principal.Worker, nil
}

// SetPrincipal stores a principal in the Gin context (primarily for testing)
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(principalContextKey, p)
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", false
	}

	return token, true
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
