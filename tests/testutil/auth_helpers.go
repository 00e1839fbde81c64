package testutil

import (
	"testing"

	"gorm.io/gorm"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/models"
	"github.com/fabzclean/fabzclean-api/services"
	"github.com/fabzclean/fabzclean-api/utils"
)

// CreateCustomer inserts a customer with a bcrypt-hashed password.
func CreateCustomer(t *testing.T, db *gorm.DB, name, email, password string) *models.Customer {
	t.Helper()

	hash, err := services.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	customer := &models.Customer{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to create customer: %v", err)
	}
	return customer
}

// IssueCustomerToken signs a real access token for the customer, the same
// way the login endpoint does.
func IssueCustomerToken(t *testing.T, cfg *config.Config, customer *models.Customer) string {
	t.Helper()

	token, err := services.GenerateAccessToken(cfg, customer.ID)
	if err != nil {
		t.Fatalf("Failed to issue access token: %v", err)
	}
	return token
}

// CreateWorker inserts a worker with a freshly generated device token.
func CreateWorker(t *testing.T, db *gorm.DB, name string) *models.Worker {
	t.Helper()

	token, err := utils.GenerateWorkerToken()
	if err != nil {
		t.Fatalf("Failed to generate worker token: %v", err)
	}

	worker := &models.Worker{Name: name, Token: token}
	if err := db.Create(worker).Error; err != nil {
		t.Fatalf("Failed to create worker: %v", err)
	}
	return worker
}
