package models

import "time"

// Unit is an organizational unit (office, branch, headquarters).
type Unit struct {
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	UnitType  string    `db:"unit_type" json:"unitType"`
	City      *string   `db:"city" json:"city"`
	State     *string   `db:"state" json:"state"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type Department struct {
	ID          int64     `db:"id" json:"id"`
	UnitID      int64     `db:"unit_id" json:"unitId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type Role struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Employee links a person to the unit, department and role they work in.
type Employee struct {
	ID                 int64      `db:"id" json:"id"`
	PersonID           int64      `db:"person_id" json:"personId"`
	UnitID             int64      `db:"unit_id" json:"unitId"`
	DepartmentID       *int64     `db:"department_id" json:"departmentId"`
	RoleID             *int64     `db:"role_id" json:"roleId"`
	RegistrationNumber string     `db:"registration_number" json:"registrationNumber"`
	HireDate           *time.Time `db:"hire_date" json:"hireDate"`
	Active             bool       `db:"active" json:"active"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}
