package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is low because the stub server only holds throwaway accounts
const BcryptCost = bcrypt.MinCost

// MinPasswordLength matches the backend's reset-password rule
const MinPasswordLength = 6

// HashPassword hashes a plaintext password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a hash with a plaintext password
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
