// Package types holds the wire types exchanged with the academy backend.
// JSON field names are owned by the backend and kept verbatim, Spanish
// included.
package types

// User is the authenticated identity record returned by /auth/me and /users
type User struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Active     bool   `json:"activo"`
	LastAccess string `json:"ultimo_acceso"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	PhotoURL   string `json:"foto_url,omitempty"`
}

// CreateUserRequest is the payload for creating a backend user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Active   *bool  `json:"activo,omitempty"`
}

// UpdateUserRequest is the partial-update payload for a backend user
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"activo,omitempty"`
}
