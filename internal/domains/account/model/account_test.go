package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusWaitlisted.Valid())
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusBanned.Valid())
	assert.False(t, Status("suspended").Valid())
	assert.False(t, Status("").Valid())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleListener.Valid())
	assert.True(t, RoleCreator.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("moderator").Valid())
	assert.False(t, Role("").Valid())
}
