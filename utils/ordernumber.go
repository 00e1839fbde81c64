package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// orderNumberBytes gives 12 hex characters, a 2^48 identifier space.
	orderNumberBytes = 6
	// workerTokenBytes gives 32 hex characters for worker device tokens.
	workerTokenBytes = 16
)

// GenerateOrderNumber returns a new opaque order number: 12 lowercase hex
// characters drawn from crypto/rand. Collisions are negligible at this
// space, but callers still enforce the unique index on orders.order_number.
func GenerateOrderNumber() (string, error) {
	return randomHex(orderNumberBytes)
}

// GenerateWorkerToken returns a new opaque bearer token for a worker device.
func GenerateWorkerToken() (string, error) {
	return randomHex(workerTokenBytes)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
