package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/sipas-org/sipas-api/internal/auth"
	"github.com/sipas-org/sipas-api/internal/http/respond"
	"github.com/sipas-org/sipas-api/internal/middleware"
	"github.com/sipas-org/sipas-api/internal/models"
	"github.com/sipas-org/sipas-api/internal/models/dto"
)

// SessionService issues and checks session tokens. *auth.Service satisfies it.
type SessionService interface {
	ValidateUser(ctx context.Context, email, password string) *models.SessionContext
	Login(sc models.SessionContext) (auth.LoginResult, error)
	RefreshToken(token string) (string, error)
	ValidateToken(token string) *auth.Claims
	SelectUnit(ctx context.Context, claims *auth.Claims, unitID int64) (auth.LoginResult, error)
}

// AuthHandler owns the login, token and unit selection endpoints.
type AuthHandler struct {
	sessions SessionService
	validate *validator.Validate
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(sessions SessionService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{sessions: sessions, validate: validate}
}

// Routes mounts the auth endpoints. authenticate guards the endpoints that
// need a session; loginLimit, when non-nil, wraps the login endpoint.
func (h *AuthHandler) Routes(authenticate, loginLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		if loginLimit != nil {
			r.Use(loginLimit)
		}
		r.Post("/login", h.login)
	})
	r.Post("/refresh-token", h.refresh)
	r.Post("/validate", h.validateToken)
	r.Post("/logout", h.logout)
	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/select-unit", h.selectUnit)
		r.Get("/me", h.me)
	})
	return r
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sc := h.sessions.ValidateUser(r.Context(), req.Email, req.Password)
	if sc == nil {
		respond.Error(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}
	result, err := h.sessions.Login(*sc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, "login successful", result)
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := h.tokenFrom(w, r)
	if !ok {
		return
	}
	refreshed, err := h.sessions.RefreshToken(token)
	if err != nil {
		respond.Error(w, r, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	respond.JSON(w, r, http.StatusOK, "token refreshed", map[string]string{
		"token":     refreshed,
		"tokenType": "Bearer",
	})
}

func (h *AuthHandler) validateToken(w http.ResponseWriter, r *http.Request) {
	token, ok := h.tokenFrom(w, r)
	if !ok {
		return
	}
	resp := dto.ValidateResponse{}
	if claims := h.sessions.ValidateToken(token); claims != nil {
		resp.Valid = true
		resp.Payload = claims
	}
	respond.JSON(w, r, http.StatusOK, "token checked", resp)
}

// logout is acknowledged only; tokens stay valid until they expire.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) selectUnit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "invalid or missing token")
		return
	}
	var req dto.SelectUnitRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.sessions.SelectUnit(r.Context(), claims, req.UnitID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, "unit selected", result)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "invalid or missing token")
		return
	}
	respond.JSON(w, r, http.StatusOK, "session retrieved", claims.SessionContext)
}

// tokenFrom reads the token from the JSON body, falling back to the
// Authorization header. An empty body is allowed.
func (h *AuthHandler) tokenFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req dto.TokenRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, errInvalidPayload)
		return "", false
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		token, _ = middleware.BearerToken(r)
	}
	if token == "" {
		respond.Error(w, r, http.StatusBadRequest, "token is required")
		return "", false
	}
	return token, true
}
