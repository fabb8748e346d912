package dto

type CreatePerson struct {
	FullName         string  `json:"fullName" validate:"required,max=255"`
	DocumentNumber   string  `json:"documentNumber" validate:"required,max=32"`
	BirthDate        *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string `json:"gender" validate:"omitempty,oneof=M F O"`
	MaritalStatusID  *int64  `json:"maritalStatusId" validate:"omitempty,gt=0"`
	EducationLevelID *int64  `json:"educationLevelId" validate:"omitempty,gt=0"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone" validate:"omitempty,max=32"`
	Address          *string `json:"address" validate:"omitempty,max=255"`
	City             *string `json:"city" validate:"omitempty,max=128"`
	State            *string `json:"state" validate:"omitempty,uf"`
}

type UpdatePerson struct {
	FullName         *string `json:"fullName" validate:"omitempty,max=255"`
	DocumentNumber   *string `json:"documentNumber" validate:"omitempty,max=32"`
	BirthDate        *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string `json:"gender" validate:"omitempty,oneof=M F O"`
	MaritalStatusID  *int64  `json:"maritalStatusId" validate:"omitempty,gt=0"`
	EducationLevelID *int64  `json:"educationLevelId" validate:"omitempty,gt=0"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone" validate:"omitempty,max=32"`
	Address          *string `json:"address" validate:"omitempty,max=255"`
	City             *string `json:"city" validate:"omitempty,max=128"`
	State            *string `json:"state" validate:"omitempty,uf"`
}

type CreateFamilyComposition struct {
	PersonID       int64 `json:"personId" validate:"required,gt=0"`
	MemberPersonID int64 `json:"memberPersonId" validate:"required,gt=0,nefield=PersonID"`
	KinshipTypeID  int64 `json:"kinshipTypeId" validate:"required,gt=0"`
	Dependent      *bool `json:"dependent"`
}

type UpdateFamilyComposition struct {
	KinshipTypeID *int64 `json:"kinshipTypeId" validate:"omitempty,gt=0"`
	Dependent     *bool  `json:"dependent"`
}

// CreateLookup and UpdateLookup serve every reference table.
type CreateLookup struct {
	Name        string  `json:"name" validate:"required,max=128"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type UpdateLookup struct {
	Name        *string `json:"name" validate:"omitempty,max=128"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}
