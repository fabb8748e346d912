package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sipas-org/sipas-api/internal/models"
	"github.com/sipas-org/sipas-api/internal/storage"
)

// Placeholders used when a user has no unit, department or role.
const (
	DefaultUnitName       = "Unknown Unit"
	DefaultUnitType       = "unknown"
	DefaultDepartmentName = "Unknown Department"
	DefaultRoleName       = "User"
)

// ErrUnitNotAllowed is returned by SelectUnit when the user is not assigned
// to the requested unit.
var ErrUnitNotAllowed = errors.New("user is not assigned to this unit")

// SessionStore is what the session service needs from persistence.
type SessionStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.UserCredentials, error)
	FirstUnit(ctx context.Context, userID int64) (models.Unit, error)
	FirstDepartment(ctx context.Context, userID, unitID int64) (models.Department, error)
	FirstRole(ctx context.Context, userID int64) (models.Role, error)
	AssignedUnit(ctx context.Context, userID, unitID int64) (models.Unit, error)
	TouchLastLogin(ctx context.Context, userID int64) error
}

// LoginResult is returned by login, select-unit and refresh.
type LoginResult struct {
	Token     string      `json:"token"`
	TokenType string      `json:"tokenType"`
	ExpiresIn int64       `json:"expiresIn"`
	User      UserSummary `json:"user"`
}

type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UnitRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// UserSummary is the fixed-shape user description returned next to a token.
type UserSummary struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	IsAdmin    bool     `json:"isAdmin"`
	Unit       UnitRef  `json:"unit"`
	Department NamedRef `json:"department"`
	Role       NamedRef `json:"role"`
}

func summarize(sc models.SessionContext) UserSummary {
	return UserSummary{
		ID:         sc.UserID,
		Name:       sc.Name,
		Email:      sc.Email,
		IsAdmin:    sc.IsAdmin,
		Unit:       UnitRef{ID: sc.UnitID, Name: sc.UnitName, Type: sc.UnitType},
		Department: NamedRef{ID: sc.DepartmentID, Name: sc.DepartmentName},
		Role:       NamedRef{ID: sc.RoleID, Name: sc.RoleName},
	}
}

// Service validates credentials and issues session tokens.
type Service struct {
	store  SessionStore
	tokens *TokenManager
}

func NewService(store SessionStore, tokens *TokenManager) *Service {
	return &Service{store: store, tokens: tokens}
}

// ValidateUser checks credentials and assembles the session context. It
// returns nil for unknown emails, inactive accounts, wrong passwords and
// store failures; failures are logged, never returned.
func (s *Service) ValidateUser(ctx context.Context, email, password string) *models.SessionContext {
	email = strings.TrimSpace(email)
	creds, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("validate user: lookup failed", "email", email, "error", err)
		}
		return nil
	}
	if !creds.Active {
		slog.Info("validate user: inactive account", "userId", creds.ID)
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil
	}

	sc := s.assemble(ctx, creds.User, nil)
	if err := s.store.TouchLastLogin(ctx, creds.ID); err != nil {
		slog.Warn("validate user: update last login", "userId", creds.ID, "error", err)
	}
	return &sc
}

// Login signs a token for sc.
func (s *Service) Login(sc models.SessionContext) (LoginResult, error) {
	token, _, err := s.tokens.Generate(sc)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		User:      summarize(sc),
	}, nil
}

// RefreshToken verifies token and returns a newly signed one.
func (s *Service) RefreshToken(token string) (string, error) {
	refreshed, _, err := s.tokens.Refresh(token)
	return refreshed, err
}

// ValidateToken returns the claims of a valid token, or nil.
func (s *Service) ValidateToken(token string) *Claims {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	return claims
}

// SelectUnit re-issues a token whose context points at unitID.
func (s *Service) SelectUnit(ctx context.Context, claims *Claims, unitID int64) (LoginResult, error) {
	unit, err := s.store.AssignedUnit(ctx, claims.UserID, unitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return LoginResult{}, ErrUnitNotAllowed
		}
		return LoginResult{}, err
	}
	user := models.User{
		ID:      claims.UserID,
		Name:    claims.Name,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
		Active:  claims.Active,
	}
	return s.Login(s.assemble(ctx, user, &unit))
}

// assemble builds the session context for user. When unit is nil the user's
// first unit is used. Lookup failures fall back to placeholders.
func (s *Service) assemble(ctx context.Context, user models.User, unit *models.Unit) models.SessionContext {
	sc := models.SessionContext{
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.Name,
		IsAdmin:        user.IsAdmin,
		Active:         user.Active,
		UnitName:       DefaultUnitName,
		UnitType:       DefaultUnitType,
		DepartmentName: DefaultDepartmentName,
		RoleName:       DefaultRoleName,
	}

	if unit == nil {
		u, err := s.store.FirstUnit(ctx, user.ID)
		if err == nil {
			unit = &u
		} else {
			logLookup("unit", user.ID, err)
		}
	}
	if unit != nil {
		sc.UnitID = unit.ID
		sc.UnitName = unit.Name
		sc.UnitType = unit.UnitType
		sc.City = unit.City
		sc.State = unit.State
	}

	if dept, err := s.store.FirstDepartment(ctx, user.ID, sc.UnitID); err == nil {
		sc.DepartmentID = dept.ID
		sc.DepartmentName = dept.Name
	} else {
		logLookup("department", user.ID, err)
	}

	if role, err := s.store.FirstRole(ctx, user.ID); err == nil {
		sc.RoleID = role.ID
		sc.RoleName = role.Name
	} else {
		logLookup("role", user.ID, err)
	}
	return sc
}

func logLookup(what string, userID int64, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		slog.Debug("session: no "+what+" assigned", "userId", userID)
		return
	}
	slog.Warn("session: "+what+" lookup failed", "userId", userID, "error", err)
}
