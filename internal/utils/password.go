package utils

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is the bcrypt work factor for stored credentials, one step
// above the library default.
const passwordHashCost = 12

// HashPassword derives a bcrypt hash from a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
// The cost embedded in the hash is honored, so hashes created at an older
// cost keep verifying after a cost bump.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
