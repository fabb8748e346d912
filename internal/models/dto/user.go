package dto

type CreateUser struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	IsAdmin  *bool  `json:"isAdmin"`
	Active   *bool  `json:"active"`
}

type UpdateUser struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	IsAdmin  *bool   `json:"isAdmin"`
	Active   *bool   `json:"active"`
}

type CreateUserUnit struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
	UnitID int64 `json:"unitId" validate:"required,gt=0"`
}

type UpdateUserUnit struct {
	UnitID *int64 `json:"unitId" validate:"omitempty,gt=0"`
}

type CreateUserDepartment struct {
	UserID       int64 `json:"userId" validate:"required,gt=0"`
	DepartmentID int64 `json:"departmentId" validate:"required,gt=0"`
}

type UpdateUserDepartment struct {
	DepartmentID *int64 `json:"departmentId" validate:"omitempty,gt=0"`
}

type CreateUserRole struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
	RoleID int64 `json:"roleId" validate:"required,gt=0"`
}

type UpdateUserRole struct {
	RoleID *int64 `json:"roleId" validate:"omitempty,gt=0"`
}
