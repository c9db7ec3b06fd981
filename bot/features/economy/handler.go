package economy

import (
	"context"
	"errors"
	"fmt"

	"pitboss/bot/common"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleBalance handles /economy balance
func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
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

	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := f.economyService.GetOrCreateUser(ctx, targetID, guildID, target.Username)
	if err != nil {
		log.Errorf("Error getting user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, target.ID)
	if err := common.RespondWithEmbed(s, i, buildBalanceEmbed(displayName, user), nil, true); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

// handleAdjust handles /economy adjust
func (f *Feature) handleAdjust(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var target *discordgo.User
	var walletDelta, bankDelta int64
	var reason string
	for _, opt := range options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "wallet":
			walletDelta = opt.IntValue()
		case "bank":
			bankDelta = opt.IntValue()
		case "reason":
			reason = opt.StringValue()
		}
	}

	if target == nil {
		common.RespondWithError(s, i, "Please specify a user.")
		return
	}
	if walletDelta == 0 && bankDelta == 0 {
		common.RespondWithError(s, i, "Provide a non-zero wallet or bank delta.")
		return
	}

	actorID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, _ := common.ParseUserID(i.GuildID)

	// Make sure a row exists before adjusting
	if _, err := f.economyService.GetOrCreateUser(ctx, targetID, guildID, target.Username); err != nil {
		log.Errorf("Error getting/creating user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := f.economyService.AdjustBalances(ctx, actorID, targetID, guildID, walletDelta, bankDelta, reason)
	if err != nil {
		if errors.Is(err, service.ErrNegativeBalance) {
			common.RespondWithError(s, i, "That adjustment would leave a negative balance.")
			return
		}
		log.Errorf("Error adjusting balances for user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to adjust balances. Please try again.")
		return
	}

	message := fmt.Sprintf("Adjusted %s: wallet %s, bank %s. New balance: **%s** wallet / **%s** bank.",
		common.GetUserMention(targetID),
		formatDelta(walletDelta), formatDelta(bankDelta),
		common.FormatChips(user.Wallet), common.FormatChips(user.Bank))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to adjust command: %v", err)
	}
}

// handleToggleExempt handles /economy toggle-exempt
func (f *Feature) handleToggleExempt(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var target *discordgo.User
	var offEconomy bool
	for _, opt := range options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "exempt":
			offEconomy = opt.BoolValue()
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

	if _, err := f.economyService.GetOrCreateUser(ctx, targetID, guildID, target.Username); err != nil {
		log.Errorf("Error getting/creating user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := f.economyService.SetOffEconomy(ctx, actorID, targetID, guildID, offEconomy)
	if err != nil {
		log.Errorf("Error toggling off-economy flag for user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to update the flag. Please try again.")
		return
	}

	state := "back on the economy leaderboards"
	if user.OffEconomy {
		state = "off the economy leaderboards"
	}
	message := fmt.Sprintf("%s is now %s. Balances untouched: **%s** wallet / **%s** bank.",
		common.GetUserMention(targetID), state,
		common.FormatChips(user.Wallet), common.FormatChips(user.Bank))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to toggle-exempt command: %v", err)
	}
}

// handleAnalyze handles /economy analyze, combining casino stats with
// local aggregates. The casino call can be slow, so the response is deferred.
func (f *Feature) handleAnalyze(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring analyze response: %v", err)
		return
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		common.FollowUpWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	summary, err := f.economyService.Summarize(ctx, guildID)
	if err != nil {
		log.Errorf("Error summarizing economy for guild %d: %v", guildID, err)
		common.FollowUpWithError(s, i, "Unable to aggregate economy figures. Please try again.")
		return
	}

	// A casino outage still produces a report, just without the live figures
	overview, casinoErr := f.casinoClient.Overview(ctx)
	if casinoErr != nil {
		log.Warnf("Casino overview unavailable for analyze: %v", casinoErr)
	}

	embed := buildAnalyzeEmbed(summary, overview)
	if err := common.UpdateMessage(s, i, embed, nil); err != nil {
		log.Errorf("Error sending analyze report: %v", err)
	}
}
