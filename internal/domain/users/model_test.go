package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, User{Role: RoleAdmin, UserRole: RoleUser}.EffectiveRole())
	assert.Equal(t, RoleAdmin, User{UserRole: RoleAdmin}.EffectiveRole())
	assert.Equal(t, RoleUser, User{}.EffectiveRole())
}

func TestIsActive(t *testing.T) {
	assert.True(t, User{}.IsActive())
	assert.True(t, User{Status: StatusActive}.IsActive())
	assert.False(t, User{Status: StatusInactive}.IsActive())
}

func TestPublicDropsPassword(t *testing.T) {
	u := User{ID: 3, Email: "a@b.c", Password: "$2a$10$hash"}
	p := u.Public()
	assert.Empty(t, p.Password)
	assert.Equal(t, "$2a$10$hash", u.Password)
}

func TestMatchesLogin(t *testing.T) {
	u := User{Email: "Admin@Gallery.test", Username: "curator"}
	assert.True(t, u.MatchesLogin("admin@gallery.test"))
	assert.True(t, u.MatchesLogin(" CURATOR "))
	assert.False(t, u.MatchesLogin(""))
	assert.False(t, User{}.MatchesLogin(" "))
}

func TestFindByID(t *testing.T) {
	list := []User{{ID: 1}, {ID: 7}}
	assert.Equal(t, 1, FindByID(list, 7))
	assert.Equal(t, -1, FindByID(list, 2))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 8, NextID([]User{{ID: 7}, {ID: 3}}))
}
