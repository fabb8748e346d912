package dto

type CreateUnit struct {
	Code     string  `json:"code" validate:"required,max=32"`
	Name     string  `json:"name" validate:"required,max=255"`
	UnitType string  `json:"unitType" validate:"required,max=64"`
	City     *string `json:"city" validate:"omitempty,max=128"`
	State    *string `json:"state" validate:"omitempty,uf"`
	Active   *bool   `json:"active"`
}

type UpdateUnit struct {
	Code     *string `json:"code" validate:"omitempty,max=32"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	UnitType *string `json:"unitType" validate:"omitempty,max=64"`
	City     *string `json:"city" validate:"omitempty,max=128"`
	State    *string `json:"state" validate:"omitempty,uf"`
	Active   *bool   `json:"active"`
}

type CreateDepartment struct {
	UnitID      int64   `json:"unitId" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type UpdateDepartment struct {
	UnitID      *int64  `json:"unitId" validate:"omitempty,gt=0"`
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type CreateRole struct {
	Name        string  `json:"name" validate:"required,max=128"`
	Description *string `json:"description"`
}

type UpdateRole struct {
	Name        *string `json:"name" validate:"omitempty,max=128"`
	Description *string `json:"description"`
}

type CreateEmployee struct {
	PersonID           int64   `json:"personId" validate:"required,gt=0"`
	UnitID             int64   `json:"unitId" validate:"required,gt=0"`
	DepartmentID       *int64  `json:"departmentId" validate:"omitempty,gt=0"`
	RoleID             *int64  `json:"roleId" validate:"omitempty,gt=0"`
	RegistrationNumber string  `json:"registrationNumber" validate:"required,max=64"`
	HireDate           *string `json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
	Active             *bool   `json:"active"`
}

type UpdateEmployee struct {
	PersonID           *int64  `json:"personId" validate:"omitempty,gt=0"`
	UnitID             *int64  `json:"unitId" validate:"omitempty,gt=0"`
	DepartmentID       *int64  `json:"departmentId" validate:"omitempty,gt=0"`
	RoleID             *int64  `json:"roleId" validate:"omitempty,gt=0"`
	RegistrationNumber *string `json:"registrationNumber" validate:"omitempty,max=64"`
	HireDate           *string `json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
	Active             *bool   `json:"active"`
}
