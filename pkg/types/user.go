package types

import "time"

type UserRole string

const (
	UserRoleHR            UserRole = "HR"
	UserRoleHiringManager UserRole = "Hiring Manager"
	UserRoleEmployee      UserRole = "Employee"
	UserRoleOther         UserRole = "Other"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleHR, UserRoleHiringManager, UserRoleEmployee, UserRoleOther:
		return true
	}
	return false
}

// CanEditStructure reports whether the role may write jobs, interview
// structure and candidates.
func (r UserRole) CanEditStructure() bool {
	return r == UserRoleHR || r == UserRoleHiringManager
}

type User struct {
	ID             string    `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	Role           UserRole  `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type SignupInput struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// LoginInput is accepted as JSON or as an OAuth2 password form.
type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Token is returned from a successful login.
type Token struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Role        UserRole `json:"role"`
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID   string
	Username string
	Role     UserRole
}
