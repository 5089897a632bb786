package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the sole authorization attribute of a user
type Role string

// Roles
const (
	RoleUser  Role = "user"  // Default for every account
	RoleAdmin Role = "admin" // Catalog and account management
)

// Permission names a capability checked by the authorization gate
type Permission int

// Permissions
const (
	PermManageCatalog Permission = iota // Create and delete parts
	PermManageUsers                     // Promote and delete accounts
	PermViewAnyOrder                    // Read or delete orders owned by others
)

// ParseRole maps a stored role value onto a Role; anything but "admin" is a plain user
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Can reports whether the role grants p
func (r Role) Can(p Permission) bool {
	switch p {
	case PermManageCatalog, PermManageUsers, PermViewAnyOrder:
		return r == RoleAdmin
	default:
		return false
	}
}

// User Model
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`             // Primary key
	Email string             `bson:"email" json:"email"`                   // Natural key used for upsert
	Name  string             `bson:"name,omitempty" json:"name,omitempty"` // Display name
	Role  string             `bson:"role,omitempty" json:"role,omitempty"` // Stored role, may be absent
}

// EffectiveRole returns the role the gate enforces for u
func (u *User) EffectiveRole() Role {
	return ParseRole(u.Role)
}
