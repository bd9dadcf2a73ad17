package users

// Role is a user's permission level
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account from the users table.
// The forum only reads accounts; registration and passwords live elsewhere.
type User struct {
	Username     string `json:"username" dynamodbav:"username" db:"username"`
	Email        string `json:"-" dynamodbav:"email" db:"email"`
	Role         Role   `json:"role" dynamodbav:"role" db:"role"`
	AboutMe      string `json:"about_me,omitempty" dynamodbav:"about_me,omitempty" db:"about_me"`
	ProfilePic   string `json:"profile_pic,omitempty" dynamodbav:"profile_pic,omitempty" db:"profile_pic"`
	CreationTime string `json:"creation_time,omitempty" dynamodbav:"creation_time,omitempty" db:"creation_time"`
}

// Profile is the public view of a user
type Profile struct {
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	AboutMe      string `json:"about_me,omitempty"`
	ProfilePic   string `json:"profile_pic,omitempty"`
	CreationTime string `json:"creation_time,omitempty"`
}

// Profile returns the public view of u
func (u *User) Profile() *Profile {
	return &Profile{
		Username:     u.Username,
		Role:         u.Role,
		AboutMe:      u.AboutMe,
		ProfilePic:   u.ProfilePic,
		CreationTime: u.CreationTime,
	}
}
