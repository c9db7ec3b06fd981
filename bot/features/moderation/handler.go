package moderation

import (
	"context"
	"fmt"
	"time"

	"pitboss/bot/common"
	"pitboss/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleTimeout handles /timeout
func (f *Feature) handleTimeout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	var target *discordgo.User
	var durationText, reason string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "duration":
			durationText = opt.StringValue()
		case "reason":
			reason = opt.StringValue()
		}
	}

	if target == nil {
		common.RespondWithError(s, i, "Please specify a user.")
		return
	}

	duration, err := common.ParseCompactDuration(durationText)
	if err != nil || duration <= 0 {
		common.RespondWithError(s, i, "Invalid duration. Use a form like `45m`, `2h` or `1d`.")
		return
	}
	if duration > common.MaxTimeoutDuration*time.Second {
		common.RespondWithError(s, i, "Timeouts cannot exceed 28 days.")
		return
	}

	until := time.Now().Add(duration)
	if err := s.GuildMemberTimeout(i.GuildID, target.ID, &until); err != nil {
		log.Errorf("Error timing out user %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to time out that member. Check role hierarchy.")
		return
	}

	actorID, _ := common.ParseUserID(i.Member.User.ID)
	targetID, _ := common.ParseUserID(target.ID)
	guildID, _ := common.ParseUserID(i.GuildID)
	f.eventBus.Emit(context.Background(), events.MemberTimedOutEvent{
		ActorID:  actorID,
		TargetID: targetID,
		GuildID:  guildID,
		Duration: duration,
		Reason:   reason,
	})

	message := fmt.Sprintf("Timed out %s for **%s**.", common.GetUserMention(targetID), common.FormatDuration(duration))
	if reason != "" {
		message += fmt.Sprintf(" Reason: %s", reason)
	}
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to timeout command: %v", err)
	}
}

// handleUntimeout handles /untimeout
func (f *Feature) handleUntimeout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	var target *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "Please specify a user.")
		return
	}

	// A nil until clears the timeout
	if err := s.GuildMemberTimeout(i.GuildID, target.ID, nil); err != nil {
		log.Errorf("Error clearing timeout for user %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to clear the timeout. Please try again.")
		return
	}

	actorID, _ := common.ParseUserID(i.Member.User.ID)
	targetID, _ := common.ParseUserID(target.ID)
	guildID, _ := common.ParseUserID(i.GuildID)
	f.eventBus.Emit(context.Background(), events.MemberTimedOutEvent{
		ActorID:  actorID,
		TargetID: targetID,
		GuildID:  guildID,
		Removed:  true,
	})

	message := fmt.Sprintf("Removed the timeout from %s.", common.GetUserMention(targetID))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to untimeout command: %v", err)
	}
}
