package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sipas-org/sipas-api/internal/auth"
	"github.com/sipas-org/sipas-api/internal/middleware"
	"github.com/sipas-org/sipas-api/internal/models"
	"github.com/sipas-org/sipas-api/internal/storage"
)

// memSessions is a single-user session store.
type memSessions struct {
	creds models.UserCredentials
	units []models.Unit
}

func (m *memSessions) FindUserByEmail(_ context.Context, email string) (models.UserCredentials, error) {
	if !strings.EqualFold(email, m.creds.Email) {
		return models.UserCredentials{}, storage.ErrNotFound
	}
	return m.creds, nil
}

func (m *memSessions) FirstUnit(context.Context, int64) (models.Unit, error) {
	if len(m.units) == 0 {
		return models.Unit{}, storage.ErrNotFound
	}
	return m.units[0], nil
}

func (m *memSessions) FirstDepartment(context.Context, int64, int64) (models.Department, error) {
	return models.Department{}, storage.ErrNotFound
}

func (m *memSessions) FirstRole(context.Context, int64) (models.Role, error) {
	return models.Role{ID: 3, Name: "Manager"}, nil
}

func (m *memSessions) AssignedUnit(_ context.Context, _ int64, unitID int64) (models.Unit, error) {
	for _, u := range m.units {
		if u.ID == unitID {
			return u, nil
		}
	}
	return models.Unit{}, storage.ErrNotFound
}

func (m *memSessions) TouchLastLogin(context.Context, int64) error { return nil }

func authServer(t *testing.T) http.Handler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	store := &memSessions{
		creds: models.UserCredentials{
			User:         models.User{ID: 1, Name: "Ana", Email: "ana@example.com", Active: true},
			PasswordHash: string(hash),
		},
		units: []models.Unit{{ID: 10, Name: "Headquarters", UnitType: "hq"}, {ID: 11, Name: "Branch", UnitType: "branch"}},
	}
	tokens := auth.NewTokenManager("secret", "sipas-api", time.Hour)
	h := NewAuthHandler(auth.NewService(store, tokens), NewValidator())
	return h.Routes(middleware.Authenticate(tokens), nil)
}

func login(t *testing.T, h http.Handler) auth.LoginResult {
	t.Helper()
	rec := serve(h, http.MethodPost, "/login", `{"email":"ana@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result auth.LoginResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	return result
}

func withBearer(h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	h := authServer(t)
	result := login(t, h)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.EqualValues(t, 3600, result.ExpiresIn)
	assert.Equal(t, "Headquarters", result.User.Unit.Name)
	assert.Equal(t, "Unknown Department", result.User.Department.Name)
	assert.Equal(t, "Manager", result.User.Role.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := authServer(t)

	rec := serve(h, http.MethodPost, "/login", `{"email":"ana@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeEnvelope(t, rec).Message)

	rec = serve(h, http.MethodPost, "/login", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email address", decodeEnvelope(t, rec).Message)
}

func TestValidateAndRefresh(t *testing.T) {
	h := authServer(t)
	token := login(t, h).Token

	rec := serve(h, http.MethodPost, "/validate", `{"token":"`+token+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Valid   bool           `json:"valid"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "ana@example.com", resp.Payload["email"])

	rec = serve(h, http.MethodPost, "/validate", `{"token":"garbage"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":false,"payload":null}`, string(decodeEnvelope(t, rec).Data))

	rec = withBearer(h, http.MethodPost, "/refresh-token", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var refreshed map[string]string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &refreshed))
	assert.NotEmpty(t, refreshed["token"])
	assert.NotEqual(t, token, refreshed["token"])

	rec = serve(h, http.MethodPost, "/refresh-token", `{"token":"garbage"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodPost, "/refresh-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelectUnit(t *testing.T) {
	h := authServer(t)
	token := login(t, h).Token

	rec := withBearer(h, http.MethodPost, "/select-unit", token, `{"unitId":11}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result auth.LoginResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	assert.EqualValues(t, 11, result.User.Unit.ID)
	assert.Equal(t, "branch", result.User.Unit.Type)

	rec = withBearer(h, http.MethodPost, "/select-unit", token, `{"unitId":99}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(h, http.MethodPost, "/select-unit", `{"unitId":11}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeAndLogout(t *testing.T) {
	h := authServer(t)
	token := login(t, h).Token

	rec := withBearer(h, http.MethodGet, "/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sc models.SessionContext
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &sc))
	assert.EqualValues(t, 1, sc.UserID)
	assert.EqualValues(t, 10, sc.UnitID)

	rec = serve(h, http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
