package models

// SemanticRole is the inferred purpose of a form field.
type SemanticRole int

const (
	RoleUnclassified SemanticRole = iota
	RoleEmail
	RoleFirstName
	RoleLastName
	RoleFullName
	RolePhone
	RoleAddress
	RoleCity
	RoleCompany
)

var roleNames = map[SemanticRole]string{
	RoleUnclassified: "unclassified",
	RoleEmail:        "email",
	RoleFirstName:    "first_name",
	RoleLastName:     "last_name",
	RoleFullName:     "full_name",
	RolePhone:        "phone",
	RoleAddress:      "address",
	RoleCity:         "city",
	RoleCompany:      "company",
}

func (r SemanticRole) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsIdentity reports whether the role is filled from the iteration's Identity.
func (r SemanticRole) IsIdentity() bool {
	switch r {
	case RoleEmail, RoleFirstName, RoleLastName, RoleFullName:
		return true
	}
	return false
}
