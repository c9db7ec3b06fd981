package common

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Authorizer answers permission checks for command handlers based on
// configured role and developer IDs.
type Authorizer struct {
	ManagerRoleID string
	StaffRoleID   string
	DeveloperIDs  []int64
}

// IsDeveloper reports whether the Discord ID belongs to a configured developer
func (a Authorizer) IsDeveloper(discordID int64) bool {
	for _, id := range a.DeveloperIDs {
		if id == discordID {
			return true
		}
	}
	return false
}

// IsManager reports whether the member may run admin commands.
// Developers always pass.
func (a Authorizer) IsManager(member *discordgo.Member) bool {
	if member == nil || member.User == nil {
		return false
	}
	if id, err := ParseUserID(member.User.ID); err == nil && a.IsDeveloper(id) {
		return true
	}
	return a.ManagerRoleID != "" && hasRole(member, a.ManagerRoleID)
}

// IsStaff reports whether the member may clock shifts. Managers count as staff.
func (a Authorizer) IsStaff(member *discordgo.Member) bool {
	if a.IsManager(member) {
		return true
	}
	return member != nil && a.StaffRoleID != "" && hasRole(member, a.StaffRoleID)
}

func hasRole(member *discordgo.Member, roleID string) bool {
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// RequireManager gates an interaction on the manager role, answering the
// caller with an ephemeral error when the check fails.
func (a Authorizer) RequireManager(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if a.IsManager(i.Member) {
		return true
	}

	log.WithFields(log.Fields{
		"user_id": i.Member.User.ID,
		"command": i.ApplicationCommandData().Name,
	}).Warn("Denied admin command for non-manager")

	RespondWithError(s, i, "You need the manager role to use this command.")
	return false
}

// RequireStaff gates an interaction on the staff role
func (a Authorizer) RequireStaff(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if a.IsStaff(i.Member) {
		return true
	}

	log.WithFields(log.Fields{
		"user_id": i.Member.User.ID,
		"command": i.ApplicationCommandData().Name,
	}).Warn("Denied staff command for non-staff")

	RespondWithError(s, i, "You need the staff role to use this command.")
	return false
}
