package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole(""))
	assert.Equal(t, RoleUser, ParseRole("Admin"))
	assert.Equal(t, RoleUser, ParseRole("superuser"))
}

func TestRoleCan(t *testing.T) {
	for _, p := range []Permission{PermManageCatalog, PermManageUsers, PermViewAnyOrder} {
		assert.True(t, RoleAdmin.Can(p))
		assert.False(t, RoleUser.Can(p))
	}
	assert.False(t, RoleAdmin.Can(Permission(99)))
}

func TestOrderOwnedBy(t *testing.T) {
	o := Order{Email: "a@x.io"}
	assert.True(t, o.OwnedBy("a@x.io"))
	assert.False(t, o.OwnedBy("b@x.io"))
	assert.False(t, (&Order{}).OwnedBy(""))
}
