package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sipas-org/sipas-api/internal/catalog"
	"github.com/sipas-org/sipas-api/internal/models"
	"github.com/sipas-org/sipas-api/internal/storage"
)

// SessionStore answers the lookups needed to assemble a session context.
// The "first" unit, department and role are those with the lowest junction
// row id, so repeated logins resolve the same context.
type SessionStore struct {
	db querier
}

func NewSessionStore(s *Store) *SessionStore {
	return &SessionStore{db: s.pool}
}

func qualified(alias string, cols []string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + ident(c)
	}
	return strings.Join(out, ", ")
}

// FindUserByEmail loads a user and their password hash. Emails match
// case-insensitively.
func (s *SessionStore) FindUserByEmail(ctx context.Context, email string) (models.UserCredentials, error) {
	query := `SELECT ` + qualified("u", catalog.Users.Columns) + `, u.password_hash
		FROM users u
		WHERE lower(u.email) = lower($1)
		ORDER BY u.id
		LIMIT 1`
	return one[models.UserCredentials](ctx, s.db, query, email)
}

func (s *SessionStore) FirstUnit(ctx context.Context, userID int64) (models.Unit, error) {
	query := `SELECT ` + qualified("u", catalog.Units.Columns) + `
		FROM user_units uu
		JOIN units u ON u.id = uu.unit_id
		WHERE uu.user_id = $1 AND u.active
		ORDER BY uu.id
		LIMIT 1`
	return one[models.Unit](ctx, s.db, query, userID)
}

// FirstDepartment returns the user's first department, restricted to unitID
// when it is non-zero.
func (s *SessionStore) FirstDepartment(ctx context.Context, userID, unitID int64) (models.Department, error) {
	query := `SELECT ` + qualified("d", catalog.Departments.Columns) + `
		FROM user_departments ud
		JOIN departments d ON d.id = ud.department_id
		WHERE ud.user_id = $1 AND d.active AND ($2::bigint = 0 OR d.unit_id = $2::bigint)
		ORDER BY ud.id
		LIMIT 1`
	return one[models.Department](ctx, s.db, query, userID, unitID)
}

func (s *SessionStore) FirstRole(ctx context.Context, userID int64) (models.Role, error) {
	query := `SELECT ` + qualified("r", catalog.Roles.Columns) + `
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY ur.id
		LIMIT 1`
	return one[models.Role](ctx, s.db, query, userID)
}

// AssignedUnit returns unitID if the user is assigned to it and it is active.
func (s *SessionStore) AssignedUnit(ctx context.Context, userID, unitID int64) (models.Unit, error) {
	query := `SELECT ` + qualified("u", catalog.Units.Columns) + `
		FROM user_units uu
		JOIN units u ON u.id = uu.unit_id
		WHERE uu.user_id = $1 AND uu.unit_id = $2 AND u.active
		LIMIT 1`
	return one[models.Unit](ctx, s.db, query, userID, unitID)
}

func (s *SessionStore) TouchLastLogin(ctx context.Context, userID int64) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return wrapErr(storage.OpUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func one[T any](ctx context.Context, db querier, query string, args ...any) (T, error) {
	var zero T
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, wrapErr(storage.OpSelect, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, storage.ErrNotFound
		}
		return zero, wrapErr(storage.OpSelect, err)
	}
	return item, nil
}
