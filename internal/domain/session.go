package domain

type Role string

const (
	RolePublic Role = "PUBLIC"
	RoleUser   Role = "USER"
	RoleAdmin  Role = "ADMIN"
)

// Session is derived from the bearer token on every read, never stored.
type Session struct {
	Subject string `json:"email"`
	Role    Role   `json:"role"`
}
