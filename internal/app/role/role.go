package role

// Role is the access level stored on a user row and carried in JWT claims.
type Role string

const (
	User  Role = "user"
	Admin Role = "admin"
)

func (r Role) Valid() bool {
	return r == User || r == Admin
}
