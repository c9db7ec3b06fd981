package common

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func member(userID string, roles ...string) *discordgo.Member {
	return &discordgo.Member{
		User:  &discordgo.User{ID: userID},
		Roles: roles,
	}
}

func TestAuthorizer_IsManager(t *testing.T) {
	auth := Authorizer{
		ManagerRoleID: "100",
		StaffRoleID:   "200",
		DeveloperIDs:  []int64{999},
	}

	assert.True(t, auth.IsManager(member("1", "100")), "manager role holder")
	assert.True(t, auth.IsManager(member("1", "50", "100", "200")), "manager among other roles")
	assert.True(t, auth.IsManager(member("999")), "developer without roles")
	assert.False(t, auth.IsManager(member("1", "200")), "staff role is not manager")
	assert.False(t, auth.IsManager(member("1")), "no roles")
	assert.False(t, auth.IsManager(nil), "nil member")
}

func TestAuthorizer_IsStaff(t *testing.T) {
	auth := Authorizer{
		ManagerRoleID: "100",
		StaffRoleID:   "200",
	}

	assert.True(t, auth.IsStaff(member("1", "200")), "staff role holder")
	assert.True(t, auth.IsStaff(member("1", "100")), "managers count as staff")
	assert.False(t, auth.IsStaff(member("1", "300")), "unrelated role")
	assert.False(t, auth.IsStaff(nil), "nil member")
}

func TestAuthorizer_UnconfiguredRolesDenyEveryone(t *testing.T) {
	auth := Authorizer{}

	assert.False(t, auth.IsManager(member("1", "100")))
	assert.False(t, auth.IsStaff(member("1", "200")))
}
