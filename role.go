package yoga

// Role is the authorization role the backend assigns to an account.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)
