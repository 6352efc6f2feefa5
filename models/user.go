package models

import "time"

// Role is the authorization role assigned to every user account.
// Roles are immutable from the user's point of view: only the admin
// user-management path may change them after registration.
type Role string

const (
	// RoleStudent may submit meal feedback and view menus.
	RoleStudent Role = "STUDENT"

	// RoleMessStaff records consumption and waste in addition to viewing menus.
	RoleMessStaff Role = "MESS_STAFF"

	// RoleAdmin manages users, menus, and the suggestion workflow.
	RoleAdmin Role = "ADMIN"
)

// AllRoles returns every known role. Used as the default allowed-role set
// for routes that declare none ("any authenticated user").
func AllRoles() []Role {
	return []Role{RoleStudent, RoleMessStaff, RoleAdmin}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleMessStaff, RoleAdmin:
		return true
	}
	return false
}

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the globally unique login identifier.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Role determines which route groups the user may access.
	Role Role `json:"role"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a derived value, never plaintext, and is
	// excluded from JSON serialization.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last admin-side modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// AdminDashboard is the aggregate snapshot served to administrators:
// account counts per role and the overall number of consumption records.
type AdminDashboard struct {
	AdminCount       int64 `json:"admin_count"`
	StaffCount       int64 `json:"staff_count"`
	StudentCount     int64 `json:"student_count"`
	TotalConsumption int64 `json:"total_consumption"`
}
