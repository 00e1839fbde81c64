package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/models"
	"github.com/fabzclean/fabzclean-api/services"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Customer{}, &models.Worker{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "middleware-test-secret",
		AccessTokenMinutes: 60,
		RefreshTokenDays:   7,
	}
}

func TestRequireCustomer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAuthTestDB(t)
	config.SetDB(db)
	cfg := authTestConfig()

	customer := models.Customer{
		Name:         "Test Customer",
		Email:        "customer@example.com",
		PasswordHash: "irrelevant",
		IsActive:     true,
	}
	db.Create(&customer)

	disabled := models.Customer{
		Name:         "Disabled Customer",
		Email:        "disabled@example.com",
		PasswordHash: "irrelevant",
		IsActive:     false,
	}
	db.Create(&disabled)

	validToken, err := services.GenerateAccessToken(cfg, customer.ID)
	assert.NoError(t, err)
	disabledToken, err := services.GenerateAccessToken(cfg, disabled.ID)
	assert.NoError(t, err)
	unknownToken, err := services.GenerateAccessToken(cfg, 9999)
	assert.NoError(t, err)

	otherSecret := authTestConfig()
	otherSecret.JWTSecret = "a-different-secret"
	forgedToken, err := services.GenerateAccessToken(otherSecret, customer.ID)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Valid token",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "MISSING_TOKEN",
		},
		{
			name:           "Not a bearer header",
			authHeader:     "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "MISSING_TOKEN",
		},
		{
			name:           "Empty bearer token",
			authHeader:     "Bearer ",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "MISSING_TOKEN",
		},
		{
			name:           "Garbage token",
			authHeader:     "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:           "Token signed with wrong secret",
			authHeader:     "Bearer " + forgedToken,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:           "Token for unknown customer",
			authHeader:     "Bearer " + unknownToken,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:           "Token for disabled customer",
			authHeader:     "Bearer " + disabledToken,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "ACCOUNT_DISABLED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/protected", RequireCustomer(cfg), func(c *gin.Context) {
				got, err := GetCustomer(c)
				assert.NoError(t, err)
				c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": got.ID}})
			})

			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				errorData, ok := response["error"].(map[string]interface{})
				if assert.True(t, ok, "Response should carry an error envelope") {
					assert.Equal(t, tt.expectedCode, errorData["code"])
				}
			}
		})
	}
}

func TestRequireWorker(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAuthTestDB(t)
	config.SetDB(db)

	worker := models.Worker{
		Name:  "Scanner One",
		Token: "0123456789abcdef0123456789abcdef",
	}
	db.Create(&worker)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Valid worker token",
			authHeader:     "Bearer " + worker.Token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "MISSING_TOKEN",
		},
		{
			name:           "Unknown token",
			authHeader:     "Bearer ffffffffffffffffffffffffffffffff",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/scan", RequireWorker(), func(c *gin.Context) {
				got, err := GetWorker(c)
				assert.NoError(t, err)
				c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": got.ID}})
			})

			req, _ := http.NewRequest(http.MethodPost, "/scan", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				errorData, ok := response["error"].(map[string]interface{})
				if assert.True(t, ok, "Response should carry an error envelope") {
					assert.Equal(t, tt.expectedCode, errorData["code"])
				}
			}
		})
	}
}

func TestPrincipalKindMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// No principal at all
	_, err := GetPrincipal(c)
	assert.Error(t, err)
	_, err = GetCustomer(c)
	assert.Error(t, err)

	// Worker principal does not satisfy GetCustomer and vice versa
	SetPrincipal(c, &Principal{Kind: PrincipalWorker, Worker: &models.Worker{Name: "w"}})
	_, err = GetCustomer(c)
	assert.Error(t, err)

	worker, err := GetWorker(c)
	assert.NoError(t, err)
	assert.Equal(t, "w", worker.Name)

	SetPrincipal(c, &Principal{Kind: PrincipalCustomer, Customer: &models.Customer{Name: "c"}})
	_, err = GetWorker(c)
	assert.Error(t, err)

	customer, err := GetCustomer(c)
	assert.NoError(t, err)
	assert.Equal(t, "c", customer.Name)
}
