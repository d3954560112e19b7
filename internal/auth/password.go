package auth

import "golang.org/x/crypto/bcrypt"

// PasswordManager hashes and verifies credentials with bcrypt.
type PasswordManager struct {
	cost int
}

func NewPasswordManager(cost int) *PasswordManager {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordManager{cost: cost}
}

// VerifyPassword reports whether plaintext matches the stored hash. A
// malformed or empty hash counts as a mismatch, never an error: a caller
// must not be able to tell a corrupt hash from a wrong password.
func (p *PasswordManager) VerifyPassword(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// HashPassword creates a bcrypt hash of the password.
func (p *PasswordManager) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
