package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

/*

Profile is the application side of an auth identity

Id: primary key, equals the auth identity id
CreatedAt: time when the profile is created on first authenticated request

Username: unique, nil until the user finishes profile setup
Gender, Age: filled by profile setup
TotalScore: number of likes received on the user's arguments and comments
ArgumentCount: number of arguments the user currently has
Role: "user" or "admin", changed only by admins

Profiles are never deleted by the application.

*/
type Profile struct {
	Id            string    `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Username      *string   `gorm:"uniqueIndex" json:"username"`
	Gender        *Gender   `json:"gender,omitempty"`
	Age           *int      `json:"age,omitempty"`
	TotalScore    int       `gorm:"not null;default:0;index" json:"total_score"`
	ArgumentCount int       `gorm:"not null;default:0" json:"argument_count"`
	Role          Role      `gorm:"not null;default:'user'" json:"role"`
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// PublicProfile is the part of a profile shown next to content and in the
// ranking.
type PublicProfile struct {
	Id            string  `json:"id"`
	Username      *string `json:"username"`
	TotalScore    int     `json:"total_score"`
	ArgumentCount int     `json:"argument_count"`
}

// Identity is an authenticated caller as resolved by the auth collaborator.
// A nil *Identity is an anonymous caller.
type Identity struct {
	Id    string
	Email string
}
