package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sipas-org/sipas-api/internal/crud"
	"github.com/sipas-org/sipas-api/internal/storage"
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// MaxPasswordLength is the longest password bcrypt accepts, in bytes.
const MaxPasswordLength = 72

// PrepareUserRecord replaces a plain "password" field with "password_hash"
// and normalizes the email before a user row is written. A password bcrypt
// cannot hash is reported as a crud.ValidationError.
func PrepareUserRecord(_ context.Context, rec storage.Record) error {
	if raw, ok := rec["password"]; ok {
		delete(rec, "password")
		password, _ := raw.(string)
		if password == "" {
			return nil
		}
		hash, err := HashPassword(password)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return &crud.ValidationError{Msg: fmt.Sprintf("password must be at most %d bytes", MaxPasswordLength)}
		}
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		rec["password_hash"] = hash
	}
	if email, ok := rec["email"].(string); ok {
		rec["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	return nil
}
