package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/models"
)

func TestGetMyProfile(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	phone := "+15551234567"
	customer := &models.Customer{
		Name:         "Alice",
		Email:        "a@x.com",
		Phone:        &phone,
		PasswordHash: "secret-hash",
		IsActive:     true,
	}
	db.Create(customer)

	router := setupTestRouter()
	router.GET("/customers/me", mockCustomerMiddleware(customer), GetMyProfile)

	w, response := performJSON(t, router, http.MethodGet, "/customers/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Alice", data["name"])
	assert.Equal(t, "a@x.com", data["email"])
	assert.Equal(t, phone, data["phone"])
	assert.NotContains(t, data, "password_hash", "Password hash must never be serialized")
}

func TestUpdateMyProfile(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	customer := &models.Customer{
		Name:         "Alice",
		Email:        "a@x.com",
		PasswordHash: "secret-hash",
		IsActive:     true,
	}
	db.Create(customer)

	router := setupTestRouter()
	router.PUT("/customers/me", mockCustomerMiddleware(customer), UpdateMyProfile)

	t.Run("Name and phone update", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPut, "/customers/me", map[string]interface{}{
			"name":  "Alice Cooper",
			"phone": "+15559876543",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := response["data"].(map[string]interface{})
		assert.Equal(t, "Alice Cooper", data["name"])
		assert.Equal(t, "+15559876543", data["phone"])

		var fresh models.Customer
		assert.NoError(t, db.First(&fresh, customer.ID).Error)
		assert.Equal(t, "Alice Cooper", fresh.Name)
	})

	t.Run("Email cannot be changed through the profile", func(t *testing.T) {
		w, _ := performJSON(t, router, http.MethodPut, "/customers/me", map[string]interface{}{
			"email": "hijacked@x.com",
			"name":  "Alice C.",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var fresh models.Customer
		assert.NoError(t, db.First(&fresh, customer.ID).Error)
		assert.Equal(t, "a@x.com", fresh.Email, "Email is not in the allow-list")
		assert.Equal(t, "Alice C.", fresh.Name)
	})

	t.Run("Empty body returns current profile", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPut, "/customers/me", map[string]interface{}{})
		assert.Equal(t, http.StatusOK, w.Code)

		data := response["data"].(map[string]interface{})
		assert.Equal(t, "a@x.com", data["email"])
	})
}
