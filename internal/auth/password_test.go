package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sipas-org/sipas-api/internal/crud"
	"github.com/sipas-org/sipas-api/internal/storage"
)

func TestPrepareUserRecordHashesPassword(t *testing.T) {
	rec := storage.Record{"name": "Ana", "email": "  Ana@Example.com ", "password": "s3cret-pass"}

	require.NoError(t, PrepareUserRecord(context.Background(), rec))

	assert.NotContains(t, rec, "password")
	assert.Equal(t, "ana@example.com", rec["email"])
	hash, ok := rec["password_hash"].(string)
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-pass")))
}

func TestPrepareUserRecordRejectsLongPassword(t *testing.T) {
	rec := storage.Record{"email": "ana@example.com", "password": strings.Repeat("p", MaxPasswordLength+8)}

	err := PrepareUserRecord(context.Background(), rec)
	require.Error(t, err)
	assert.True(t, crud.IsValidation(err))
	assert.Equal(t, "password must be at most 72 bytes", err.Error())
	assert.NotContains(t, rec, "password_hash")
}

func TestPrepareUserRecordWithoutPassword(t *testing.T) {
	rec := storage.Record{"name": "Ana"}
	require.NoError(t, PrepareUserRecord(context.Background(), rec))
	assert.Equal(t, storage.Record{"name": "Ana"}, rec)
}
