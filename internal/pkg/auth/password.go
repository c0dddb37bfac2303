package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt work factor; 12 puts a single hash north of 100ms
// on commodity hardware.
const BcryptCost = 12

// HashPassword hashes a plaintext password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a stored hash. A nil or
// malformed hash fails closed: the answer is false, never an error or panic.
// Placeholder accounts provisioned without a password can therefore never be
// signed into.
func CheckPassword(hashedPassword *string, password string) bool {
	if hashedPassword == nil || *hashedPassword == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(*hashedPassword), []byte(password))
	return err == nil
}
