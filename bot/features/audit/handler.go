package audit

import (
	"context"

	"pitboss/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleRecent handles /audit recent
func (f *Feature) handleRecent(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	limit := 10
	for _, opt := range options {
		if opt.Name == "count" {
			limit = int(opt.IntValue())
		}
	}
	if limit < 1 || limit > common.MaxAuditEntries {
		common.RespondWithError(s, i, "Count must be between 1 and 25.")
		return
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	entries, err := f.auditService.Recent(ctx, guildID, limit)
	if err != nil {
		log.Errorf("Error fetching recent audit entries for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to fetch the audit log. Please try again.")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildRecentEmbed(entries), nil, true); err != nil {
		log.Errorf("Error responding to audit recent: %v", err)
	}
}
