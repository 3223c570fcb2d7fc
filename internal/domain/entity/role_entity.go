package entity

// Role is the closed set of authorization roles. Free-form role strings are
// rejected at the boundary; only these two values ever reach the database.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string { return string(r) }
