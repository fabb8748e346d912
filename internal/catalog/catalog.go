// Package catalog describes every table exposed through the generic CRUD
// layer.
package catalog

import (
	"github.com/sipas-org/sipas-api/internal/models"
	"github.com/sipas-org/sipas-api/internal/storage"
)

var (
	Units = storage.Descriptor{
		Name:        "units",
		Resource:    "unit",
		Columns:     storage.ColumnsOf[models.Unit](),
		Writable:    []string{"code", "name", "unit_type", "city", "state", "active"},
		Searchable:  []string{"code", "name", "city"},
		Unique:      [][]string{{"code"}},
		DefaultSort: "id",
	}

	Departments = storage.Descriptor{
		Name:        "departments",
		Resource:    "department",
		Columns:     storage.ColumnsOf[models.Department](),
		Writable:    []string{"unit_id", "name", "description", "active"},
		Searchable:  []string{"name"},
		Unique:      [][]string{{"unit_id", "name"}},
		DefaultSort: "id",
	}

	Roles = storage.Descriptor{
		Name:        "roles",
		Resource:    "role",
		Columns:     storage.ColumnsOf[models.Role](),
		Writable:    []string{"name", "description"},
		Searchable:  []string{"name"},
		Unique:      [][]string{{"name"}},
		DefaultSort: "id",
	}

	Persons = storage.Descriptor{
		Name:     "persons",
		Resource: "person",
		Columns:  storage.ColumnsOf[models.Person](),
		Writable: []string{
			"full_name", "document_number", "birth_date", "gender", "marital_status_id",
			"education_level_id", "email", "phone", "address", "city", "state",
		},
		Searchable:  []string{"full_name", "document_number", "email"},
		Unique:      [][]string{{"document_number"}},
		DefaultSort: "id",
	}

	Employees = storage.Descriptor{
		Name:     "employees",
		Resource: "employee",
		Columns:  storage.ColumnsOf[models.Employee](),
		Writable: []string{
			"person_id", "unit_id", "department_id", "role_id", "registration_number", "hire_date", "active",
		},
		Searchable:  []string{"registration_number"},
		Unique:      [][]string{{"registration_number"}},
		DefaultSort: "id",
	}

	FamilyCompositions = storage.Descriptor{
		Name:        "family_compositions",
		Resource:    "family composition",
		Columns:     storage.ColumnsOf[models.FamilyComposition](),
		Writable:    []string{"person_id", "member_person_id", "kinship_type_id", "dependent"},
		Unique:      [][]string{{"person_id", "member_person_id"}},
		DefaultSort: "id",
	}

	Users = storage.Descriptor{
		Name:        "users",
		Resource:    "user",
		Columns:     storage.ColumnsOf[models.User](),
		Writable:    []string{"name", "email", "password_hash", "is_admin", "active"},
		Searchable:  []string{"name", "email"},
		Unique:      [][]string{{"email"}},
		DefaultSort: "id",
	}

	UserUnits = storage.Descriptor{
		Name:        "user_units",
		Resource:    "user unit",
		Columns:     storage.ColumnsOf[models.UserUnit](),
		Writable:    []string{"user_id", "unit_id"},
		Unique:      [][]string{{"user_id", "unit_id"}},
		DefaultSort: "id",
	}

	UserDepartments = storage.Descriptor{
		Name:        "user_departments",
		Resource:    "user department",
		Columns:     storage.ColumnsOf[models.UserDepartment](),
		Writable:    []string{"user_id", "department_id"},
		Unique:      [][]string{{"user_id", "department_id"}},
		DefaultSort: "id",
	}

	UserRoles = storage.Descriptor{
		Name:        "user_roles",
		Resource:    "user role",
		Columns:     storage.ColumnsOf[models.UserRole](),
		Writable:    []string{"user_id", "role_id"},
		Unique:      [][]string{{"user_id", "role_id"}},
		DefaultSort: "id",
	}

	KinshipTypes    = lookup("kinship_types", "kinship type")
	MaritalStatuses = lookup("marital_statuses", "marital status")
	EducationLevels = lookup("education_levels", "education level")
)

func lookup(table, resource string) storage.Descriptor {
	return storage.Descriptor{
		Name:        table,
		Resource:    resource,
		Columns:     storage.ColumnsOf[models.Lookup](),
		Writable:    []string{"name", "description", "active"},
		Searchable:  []string{"name"},
		Unique:      [][]string{{"name"}},
		DefaultSort: "name",
	}
}

// All lists every descriptor, in migration order.
func All() []storage.Descriptor {
	return []storage.Descriptor{
		KinshipTypes, MaritalStatuses, EducationLevels,
		Units, Departments, Roles, Persons, Employees, FamilyCompositions,
		Users, UserUnits, UserDepartments, UserRoles,
	}
}
