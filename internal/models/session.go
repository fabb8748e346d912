package models

// SessionContext is the snapshot of a user's organizational context carried
// inside their access token.
type SessionContext struct {
	UserID         int64   `json:"userId"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	UnitID         int64   `json:"unitId"`
	UnitName       string  `json:"unitName"`
	UnitType       string  `json:"unitType"`
	DepartmentID   int64   `json:"departmentId"`
	DepartmentName string  `json:"departmentName"`
	RoleID         int64   `json:"roleId"`
	RoleName       string  `json:"roleName"`
	IsAdmin        bool    `json:"isAdmin"`
	Active         bool    `json:"active"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
}
