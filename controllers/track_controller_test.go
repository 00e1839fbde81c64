package controllers

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/models"
)

func TestListRecentTracks(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := adminCustomer(t, db)
	regular := &models.Customer{Name: "Alice", Email: "a@x.com", PasswordHash: "x", IsActive: true}
	db.Create(regular)

	svc := &models.Service{Name: "Dry Cleaning", Price: decimal.RequireFromString("12.25"), Status: models.ServiceStatusActive}
	db.Create(svc)

	worker := &models.Worker{Name: "Scanner One", Token: "0123456789abcdef0123456789abcdef"}
	db.Create(worker)

	orderA := &models.Order{OrderNumber: "aaaabbbbcccc", CustomerID: regular.ID, ServiceID: svc.ID, TotalCost: svc.Price, Status: models.OrderStatusCreated}
	db.Create(orderA)
	orderB := &models.Order{OrderNumber: "ddddeeeeffff", CustomerID: regular.ID, ServiceID: svc.ID, TotalCost: svc.Price, Status: models.OrderStatusCreated}
	db.Create(orderB)

	db.Create(&models.Track{OrderID: orderA.ID, WorkerID: &worker.ID, Action: "picked_up"})
	db.Create(&models.Track{OrderID: orderB.ID, WorkerID: &worker.ID, Action: "picked_up"})
	db.Create(&models.Track{OrderID: orderA.ID, WorkerID: &worker.ID, Action: "processing"})

	t.Run("Non-admin customer is forbidden", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/tracks", mockCustomerMiddleware(regular), ListRecentTracks)

		w, response := performJSON(t, router, http.MethodGet, "/tracks", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assertErrorCode(t, response, "FORBIDDEN")
	})

	t.Run("Admin sees the feed across orders, newest first", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/tracks", mockCustomerMiddleware(admin), ListRecentTracks)

		w, response := performJSON(t, router, http.MethodGet, "/tracks", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		tracks := response["data"].([]interface{})
		assert.Len(t, tracks, 3)

		newest := tracks[0].(map[string]interface{})
		assert.Equal(t, "processing", newest["action"])
		assert.Equal(t, float64(orderA.ID), newest["order_id"])

		oldest := tracks[2].(map[string]interface{})
		assert.Equal(t, "picked_up", oldest["action"])
		assert.Equal(t, float64(orderA.ID), oldest["order_id"])
	})
}
