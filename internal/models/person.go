package models

import "time"

// Person is an individual known to the organization. DocumentNumber is the
// natural key.
type Person struct {
	ID               int64      `db:"id" json:"id"`
	FullName         string     `db:"full_name" json:"fullName"`
	DocumentNumber   string     `db:"document_number" json:"documentNumber"`
	BirthDate        *time.Time `db:"birth_date" json:"birthDate"`
	Gender           *string    `db:"gender" json:"gender"`
	MaritalStatusID  *int64     `db:"marital_status_id" json:"maritalStatusId"`
	EducationLevelID *int64     `db:"education_level_id" json:"educationLevelId"`
	Email            *string    `db:"email" json:"email"`
	Phone            *string    `db:"phone" json:"phone"`
	Address          *string    `db:"address" json:"address"`
	City             *string    `db:"city" json:"city"`
	State            *string    `db:"state" json:"state"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// FamilyComposition records that MemberPersonID belongs to PersonID's family.
// A pair may appear at most once.
type FamilyComposition struct {
	ID             int64     `db:"id" json:"id"`
	PersonID       int64     `db:"person_id" json:"personId"`
	MemberPersonID int64     `db:"member_person_id" json:"memberPersonId"`
	KinshipTypeID  int64     `db:"kinship_type_id" json:"kinshipTypeId"`
	Dependent      bool      `db:"dependent" json:"dependent"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// Lookup is a row of one of the reference tables (kinship types, marital
// statuses, education levels).
type Lookup struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
