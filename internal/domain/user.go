package domain

// Role enumerates the three actor kinds in the support workflow.
type Role string

const (
	RoleFacultyMember   Role = "FACULTY_MEMBER"
	RoleTechnicalMember Role = "TECHNICAL_MEMBER"
	RoleSupervisor      Role = "SUPERVISOR"
)

// User is an account identified by university id.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Role         Role
	Email        string
	PasswordHash string
}

// Public returns the externally safe subset of user fields.
func (u *User) Public() User {
	return User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Email:     u.Email,
	}
}
