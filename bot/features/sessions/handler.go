package sessions

import (
	"context"
	"errors"
	"fmt"

	"pitboss/bot/common"
	"pitboss/casino"
	"pitboss/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleStop handles /casino stop
func (f *Feature) handleStop(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	_, targetID, ok := extractTarget(s, i, options)
	if !ok {
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring casino stop response: %v", err)
		return
	}

	if err := f.casinoClient.StopSession(ctx, targetID); err != nil {
		if errors.Is(err, casino.ErrSessionNotFound) {
			common.FollowUpWithError(s, i, "That user has no active casino session.")
			return
		}
		log.Errorf("Error stopping casino session for user %d: %v", targetID, err)
		common.FollowUpWithError(s, i, "The casino bot rejected the request. Try again later.")
		return
	}

	f.emitIntervention(i, targetID, "stopped session")
	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Stopped the casino session of %s.", common.GetUserMention(targetID)), true)
}

// handleRelease handles /casino release
func (f *Feature) handleRelease(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	_, targetID, ok := extractTarget(s, i, options)
	if !ok {
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring casino release response: %v", err)
		return
	}

	if err := f.casinoClient.ReleaseSession(ctx, targetID); err != nil {
		if errors.Is(err, casino.ErrSessionNotFound) {
			common.FollowUpWithError(s, i, "That user has no session lock to release.")
			return
		}
		log.Errorf("Error releasing casino session for user %d: %v", targetID, err)
		common.FollowUpWithError(s, i, "The casino bot rejected the request. Try again later.")
		return
	}

	f.emitIntervention(i, targetID, "released session lock")
	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Released the session lock of %s.", common.GetUserMention(targetID)), true)
}

// handleStats handles /casino stats
func (f *Feature) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	target, targetID, ok := extractTarget(s, i, options)
	if !ok {
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring casino stats response: %v", err)
		return
	}

	stats, err := f.casinoClient.SessionStats(ctx, targetID)
	if err != nil {
		if errors.Is(err, casino.ErrSessionNotFound) {
			common.FollowUpWithError(s, i, "That user has no casino session on record.")
			return
		}
		log.Errorf("Error fetching casino stats for user %d: %v", targetID, err)
		common.FollowUpWithError(s, i, "The casino bot rejected the request. Try again later.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, target.ID)
	if _, err := common.FollowUpWithEmbed(s, i, buildStatsEmbed(displayName, stats), nil, true); err != nil {
		log.Errorf("Error sending casino stats embed: %v", err)
	}
}

// handleCleanup handles /casino cleanup, the bulk emergency stop
func (f *Feature) handleCleanup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring casino cleanup response: %v", err)
		return
	}

	result, err := f.casinoClient.EmergencyCleanup(ctx)
	if err != nil {
		log.Errorf("Error running casino emergency cleanup: %v", err)
		common.FollowUpWithError(s, i, "The casino bot rejected the cleanup. Try again later.")
		return
	}

	f.emitIntervention(i, 0, fmt.Sprintf("emergency cleanup: %d stopped, %d released",
		result.SessionsStopped, result.SessionsReleased))

	message := fmt.Sprintf("Emergency cleanup done: **%d** session(s) stopped, **%d** lock(s) released.",
		result.SessionsStopped, result.SessionsReleased)
	common.FollowUpWithSuccess(s, i, message, true)
}

// emitIntervention publishes the audit event for a casino admin action
func (f *Feature) emitIntervention(i *discordgo.InteractionCreate, targetID int64, action string) {
	actorID, _ := common.ParseUserID(i.Member.User.ID)
	guildID, _ := common.ParseUserID(i.GuildID)
	f.eventBus.Emit(context.Background(), events.CasinoInterventionEvent{
		ActorID:  actorID,
		GuildID:  guildID,
		TargetID: targetID,
		Action:   action,
	})
}

// extractTarget pulls the user option and parses its ID
func extractTarget(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.User, int64, bool) {
	var target *discordgo.User
	for _, opt := range options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "Please specify a user.")
		return nil, 0, false
	}

	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return nil, 0, false
	}
	return target, targetID, true
}
