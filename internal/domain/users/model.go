package users

import (
	"strings"

	"gallery-admin/internal/domain/record"
)

const (
	RoleUser   = "user"
	RoleArtist = "artist"
	RoleAdmin  = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `gorm:"index" json:"email,omitempty"`
	Password string `json:"password,omitempty"` // bcrypt hash; empty for Google-only accounts

	Role        string `json:"role,omitempty"`
	UserRole    string `gorm:"column:user_role" json:"user_role,omitempty"` // legacy key, read only
	AccountType string `json:"account_type,omitempty"`
	Status      string `json:"status,omitempty"`

	ProfileImg string `gorm:"column:profile_img" json:"profile_img,omitempty"`
	CreatedAt  string `gorm:"column:created_at" json:"created_at,omitempty"`

	Extra record.Fields `gorm:"column:extra;serializer:json" json:"-"`
}

type userJSON User

func (u *User) UnmarshalJSON(b []byte) error {
	var plain userJSON
	extra, err := record.Decode(b, &plain)
	if err != nil {
		return err
	}
	*u = User(plain)
	u.Extra = extra
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	return record.Encode(userJSON(u), u.Extra)
}

func (User) TableName() string { return "users" }

// EffectiveRole prefers role, then the legacy user_role key, then "user".
func (u User) EffectiveRole() string {
	if u.Role != "" {
		return u.Role
	}
	if u.UserRole != "" {
		return u.UserRole
	}
	return RoleUser
}

// IsActive reports false only for accounts explicitly deactivated.
func (u User) IsActive() bool {
	return u.Status != StatusInactive
}

// Public strips the password hash.
func (u User) Public() User {
	u.Password = ""
	u.Extra = u.Extra.Without("password")
	return u
}

func (u User) MatchesLogin(login string) bool {
	login = strings.TrimSpace(login)
	if login == "" {
		return false
	}
	return strings.EqualFold(u.Email, login) || strings.EqualFold(u.Username, login)
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleArtist, RoleAdmin:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

// FindByID returns the index of the user with id, or -1.
func FindByID(list []User, id int) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// NextID is one past the highest id in use.
func NextID(list []User) int {
	highest := 0
	for _, u := range list {
		if u.ID > highest {
			highest = u.ID
		}
	}
	return highest + 1
}
