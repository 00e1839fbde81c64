package services

import (
	"fmt"
	"sync"
)

// MockLabelService is a mock implementation of LabelService for testing
type MockLabelService struct {
	labels       map[string]map[string]string // map of label key to payload
	failGenerate bool
	mu           sync.RWMutex
}

// NewMockLabelService creates a new mock label service
func NewMockLabelService() *MockLabelService {
	return &MockLabelService{
		labels: make(map[string]map[string]string),
	}
}

// SetAsMockForTesting sets this mock as the global label service instance for testing
func (m *MockLabelService) SetAsMockForTesting() {
	SetLabelService(m)
}

// FailGeneration makes subsequent GenerateLabel calls fail (for testing assertions)
func (m *MockLabelService) FailGeneration(fail bool) {
	m.mu.Lock()
	m.failGenerate = fail
	m.mu.Unlock()
}

// GenerateLabel simulates rendering and storing a QR label
func (m *MockLabelService) GenerateLabel(orderNumber string, payload map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failGenerate {
		return "", fmt.Errorf("mock label generation failure for order %s", orderNumber)
	}

	key := fmt.Sprintf("labels/%s.png", orderNumber)
	m.labels[key] = payload
	return key, nil
}

// GetLabelURL simulates generating a URL for a label
func (m *MockLabelService) GetLabelURL(labelKey string) (string, error) {
	if labelKey == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.labels[labelKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("label not found in mock storage: %s", labelKey)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", labelKey), nil
}

// DeleteLabel simulates deleting a label
func (m *MockLabelService) DeleteLabel(labelKey string) error {
	if labelKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.labels, labelKey)
	m.mu.Unlock()

	return nil
}

// LabelExists checks if a label exists in mock storage (for testing assertions)
func (m *MockLabelService) LabelExists(labelKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.labels[labelKey]
	return exists
}

// GetLabelPayload returns the payload recorded for a label key (for testing assertions)
func (m *MockLabelService) GetLabelPayload(labelKey string) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.labels[labelKey]
}

// Clear removes all labels from mock storage
func (m *MockLabelService) Clear() {
	m.mu.Lock()
	m.labels = make(map[string]map[string]string)
	m.mu.Unlock()
}
