package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("admin"))
	assert.True(t, IsValidRole("user"))
	assert.False(t, IsValidRole("superadmin"))
	assert.False(t, IsValidRole("ADMIN"))
	assert.False(t, IsValidRole(""))
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("guest").Valid())
}
