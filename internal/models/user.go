package models

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is the authenticated principal resolved from a Supabase access token.
type User struct {
	ID    string   `json:"id"` // uuid, token "sub"
	Email string   `json:"email,omitempty"`
	Role  UserRole `json:"role"`
}
