package users

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

// Role is the single privilege level assigned to every user.
type Role string

const (
	RoleUser     Role = "User"
	RolePlayer   Role = "Player"
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

var moderators = mapset.NewSet(RoleEmployee, RoleAdmin)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RolePlayer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// Moderator reports whether the role may approve and import content.
func (r Role) Moderator() bool {
	return moderators.Contains(r)
}

type User struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Role          Role
	Bio           string
	ProfileImage  string
	OAuthProvider string
	OAuthID       string
	RegisteredAt  time.Time
	LastLogin     time.Time
}

func (u User) IsZero() bool {
	return u.ID == uuid.Nil
}

type Secret struct {
	PasswordHash []byte
	Salt         []byte
}
