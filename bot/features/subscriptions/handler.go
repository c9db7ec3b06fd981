package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pitboss/bot/common"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleGrant handles /subscription grant
func (f *Feature) handleGrant(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var target *discordgo.User
	var role *discordgo.Role
	var tier, durationText string
	for _, opt := range options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		case "tier":
			tier = opt.StringValue()
		case "duration":
			durationText = opt.StringValue()
		}
	}

	if target == nil || role == nil || tier == "" {
		common.RespondWithError(s, i, "Please provide user, role and tier.")
		return
	}

	duration, err := common.ParseCompactDuration(durationText)
	if err != nil || duration <= 0 {
		common.RespondWithError(s, i, "Invalid duration. Use a form like `30d`, `2h` or `1d12h`.")
		return
	}

	actorID, _ := common.ParseUserID(i.Member.User.ID)
	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, _ := common.ParseUserID(i.GuildID)
	roleID, _ := common.ParseUserID(role.ID)

	sub, err := f.subscriptionService.Grant(ctx, actorID, targetID, guildID, roleID, tier, duration)
	if err != nil {
		log.Errorf("Error granting subscription to user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to grant the subscription. Please try again.")
		return
	}

	// Assign the tier role; the row is already committed, so a role failure
	// is reported but does not undo the grant
	if err := s.GuildMemberRoleAdd(i.GuildID, target.ID, role.ID); err != nil {
		log.Errorf("Error adding subscription role %s to user %s: %v", role.ID, target.ID, err)
		common.RespondWithError(s, i, "Subscription saved but the role could not be assigned. Assign it manually.")
		return
	}

	message := fmt.Sprintf("Granted **%s** subscription to %s until %s.",
		sub.Tier, common.GetUserMention(targetID), common.FormatDiscordTimestamp(sub.ExpiresAt, "f"))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to grant command: %v", err)
	}
}

// handleRevoke handles /subscription revoke
func (f *Feature) handleRevoke(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var target *discordgo.User
	for _, opt := range options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "Please specify a user.")
		return
	}

	actorID, _ := common.ParseUserID(i.Member.User.ID)
	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, _ := common.ParseUserID(i.GuildID)

	sub, err := f.subscriptionService.Revoke(ctx, actorID, targetID, guildID)
	if err != nil {
		if errors.Is(err, service.ErrNoSubscription) {
			common.RespondWithError(s, i, "That user has no active subscription.")
			return
		}
		log.Errorf("Error revoking subscription of user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to revoke the subscription. Please try again.")
		return
	}

	if err := s.GuildMemberRoleRemove(i.GuildID, target.ID, common.FormatUserID(sub.RoleID)); err != nil {
		log.Errorf("Error removing subscription role %d from user %s: %v", sub.RoleID, target.ID, err)
	}

	message := fmt.Sprintf("Revoked the **%s** subscription of %s.", sub.Tier, common.GetUserMention(targetID))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to revoke command: %v", err)
	}
}

// handleCheck handles /subscription check
func (f *Feature) handleCheck(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	// Default to the caller; managers may check anyone
	target := i.Member.User
	for _, opt := range options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	if target.ID != i.Member.User.ID && !f.auth.RequireManager(s, i) {
		return
	}

	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, _ := common.ParseUserID(i.GuildID)

	sub, err := f.subscriptionService.Get(ctx, targetID, guildID)
	if err != nil {
		log.Errorf("Error checking subscription of user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to check the subscription. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, target.ID)

	if sub == nil || !sub.Active {
		embed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Subscription for %s", displayName),
			Description: "No active subscription.",
			Color:       common.ColorWarning,
		}
		if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
			log.Errorf("Error responding to check command: %v", err)
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Subscription for %s", displayName),
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tier", Value: sub.Tier, Inline: true},
			{Name: "Expires", Value: common.FormatDiscordTimestamp(sub.ExpiresAt, "f"), Inline: true},
		},
	}
	if sub.Expired(time.Now()) {
		embed.Color = common.ColorWarning
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Past due, pending expiry sweep"}
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to check command: %v", err)
	}
}

// SweepExpired deactivates past-due subscriptions and strips their roles.
// Called by the background ticker.
func (f *Feature) SweepExpired(ctx context.Context, s *discordgo.Session) {
	expired, err := f.subscriptionService.ExpireDue(ctx, time.Now())
	if err != nil {
		log.Errorf("Subscription expiry sweep failed: %v", err)
		return
	}

	for _, sub := range expired {
		guildID := common.FormatUserID(sub.GuildID)
		userID := common.FormatUserID(sub.DiscordID)
		roleID := common.FormatUserID(sub.RoleID)

		if err := s.GuildMemberRoleRemove(guildID, userID, roleID); err != nil {
			log.Errorf("Error removing expired subscription role %s from user %s: %v", roleID, userID, err)
			continue
		}
		log.WithFields(log.Fields{
			"user_id": userID,
			"tier":    sub.Tier,
		}).Info("Expired subscription, role removed")
	}
}
