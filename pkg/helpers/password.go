package helpers

import "golang.org/x/crypto/bcrypt"

// ErrPasswordTooLong is returned by HashPassword for inputs over 72 bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the bcrypt hash
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// dummyHash is compared against when a login names an unknown user so both
// failure paths pay the same bcrypt cost.
var dummyHash, _ = HashPassword("recipe-platform-dummy-password")

// DummyCompare burns one bcrypt comparison and always reports false.
func DummyCompare(plain string) bool {
	_ = CompareHashAndPassword(dummyHash, plain)
	return false
}
