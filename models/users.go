package models

// Role is the access level of a CRM user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleSalesRep Role = "sales_rep"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesRep:
		return true
	}
	return false
}

// User represents an authenticated CRM user.
type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Avatar      *string  `json:"avatar,omitempty"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the user was granted a permission.
func (u User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ProfileUpdate is a partial user record. Nil fields are left unchanged.
// There is no Role field: role changes are never sent from the client.
type ProfileUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
