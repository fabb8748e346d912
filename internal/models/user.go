package models

import "time"

// User is the application account projection. The password hash is never
// part of it; see UserCredentials.
type User struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Email       string     `db:"email" json:"email"`
	IsAdmin     bool       `db:"is_admin" json:"isAdmin"`
	Active      bool       `db:"active" json:"active"`
	LastLoginAt *time.Time `db:"last_login_at" json:"lastLoginAt"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// UserCredentials is a user row together with its password hash, used only
// while authenticating.
type UserCredentials struct {
	User
	PasswordHash string `db:"password_hash" json:"-"`
}

// UserUnit assigns a user to a unit.
type UserUnit struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	UnitID    int64     `db:"unit_id" json:"unitId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// UserDepartment assigns a user to a department.
type UserDepartment struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"userId"`
	DepartmentID int64     `db:"department_id" json:"departmentId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// UserRole grants a role to a user.
type UserRole struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	RoleID    int64     `db:"role_id" json:"roleId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
