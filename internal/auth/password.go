package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash of plain at the given work factor.
func HashPassword(plain string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// ComparePassword reports whether plain matches the stored bcrypt hash,
// returning bcrypt's mismatch error when it does not.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
