package utils

import "github.com/google/uuid"

// GetToken returns a random token.
func GetToken() string {
	return uuid.NewString()
}

// GenOrderRef returns a short order reference for a purchase.
func GenOrderRef() string {
	id := uuid.NewString()
	return "ord-" + id[:8]
}
