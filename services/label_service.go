package services

import (
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const labelImageSize = 256 // pixels, square PNG

// LabelService handles generation and retrieval of scannable order labels
type LabelService interface {
	// GenerateLabel renders a QR label for an order and stores it,
	// returning the storage key
	GenerateLabel(orderNumber string, payload map[string]string) (string, error)

	// GetLabelURL generates a URL for accessing a stored label
	GetLabelURL(labelKey string) (string, error)

	// DeleteLabel removes a label from storage
	DeleteLabel(labelKey string) error
}

// QRLabelService implements LabelService by encoding the payload as a QR
// PNG and storing it through the S3 layer
type QRLabelService struct {
	s3Service S3Interface
}

var labelServiceInstance LabelService

// InitLabelService initializes the label service with S3 backend
func InitLabelService(s3Service S3Interface) LabelService {
	labelServiceInstance = &QRLabelService{
		s3Service: s3Service,
	}
	return labelServiceInstance
}

// GetLabelService returns the initialized label service instance
func GetLabelService() LabelService {
	return labelServiceInstance
}

// SetLabelService sets the label service instance (primarily for testing)
func SetLabelService(service LabelService) {
	labelServiceInstance = service
}

// GenerateLabel encodes the payload as a QR PNG and uploads it to S3.
// The key is derived from the order number so regenerating a label for the
// same order overwrites the previous image.
func (s *QRLabelService) GenerateLabel(orderNumber string, payload map[string]string) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode label payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, labelImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to render QR code: %w", err)
	}

	key := fmt.Sprintf("labels/%s.png", orderNumber)
	if err := s.s3Service.UploadBytes(key, png, "image/png"); err != nil {
		return "", fmt.Errorf("failed to store label: %w", err)
	}

	return key, nil
}

// GetLabelURL generates a presigned URL for accessing a label
func (s *QRLabelService) GetLabelURL(labelKey string) (string, error) {
	if labelKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(labelKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate label URL: %w", err)
	}

	return url, nil
}

// DeleteLabel deletes a label from S3
func (s *QRLabelService) DeleteLabel(labelKey string) error {
	if labelKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(labelKey); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}

	return nil
}
