package identity

import "time"

// Roles assignable to user accounts.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
)

var validRoles = map[string]bool{
	RoleAdmin:        true,
	RoleDoctor:       true,
	RoleReceptionist: true,
}

// ValidRole reports whether r is an assignable account role.
func ValidRole(r string) bool { return validRoles[r] }

// User is a staff account able to sign in.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Doctor is the clinical profile backing a user with role doctor. Name
// and Email are joined from the user row.
type Doctor struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Specialty string  `json:"specialty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// DoctorInput carries the fields accepted when creating or updating a
// doctor; Password is only used at creation.
type DoctorInput struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password,omitempty"`
	Specialty string  `json:"specialty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// Filter narrows doctor listings. Term matches name or specialty.
type Filter struct {
	Term string
}
