package models

// Identity is the synthetic respondent used for one form pass.
type Identity struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

// ValueFor returns the identity component that fills a field of the given role.
// The boolean is false for roles that are not backed by the identity.
func (i Identity) ValueFor(role SemanticRole) (string, bool) {
	switch role {
	case RoleEmail:
		return i.Email, true
	case RoleFirstName:
		return i.FirstName, true
	case RoleLastName:
		return i.LastName, true
	case RoleFullName:
		return i.FullName, true
	}
	return "", false
}
