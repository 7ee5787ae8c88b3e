package domain

// Role enumerates the membership tiers a portal participant can hold.
type Role string

const (
	RoleLawyer          Role = "lawyer"
	RoleClient          Role = "client"
	RoleCorporateClient Role = "corporate_client"
	RoleBasic           Role = "basic"
	RoleAdmin           Role = "admin"
)

// User is the acting participant as seen by the engine. Identity is owned by
// the external identity service; the engine treats it as read-only reference data.
type User struct {
	ID       string
	Email    string
	FullName string
	Role     Role
}

// IsLawyer reports whether the user holds the lawyer role.
func (u User) IsLawyer() bool {
	return u.Role == RoleLawyer
}
