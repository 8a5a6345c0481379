package users

// Role is the closed set of authorization roles carried in session tokens.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleAdmin):
		return true
	default:
		return false
	}
}

func (r Role) Valid() bool {
	return IsValidRole(string(r))
}
