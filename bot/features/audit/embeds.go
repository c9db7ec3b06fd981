package audit

import (
	"fmt"
	"strings"
	"time"

	"pitboss/bot/common"
	"pitboss/models"

	"github.com/bwmarrin/discordgo"
)

func categoryEmoji(category models.AuditCategory) string {
	switch category {
	case models.AuditCategoryEconomy:
		return "💰"
	case models.AuditCategorySubscription:
		return "⭐"
	case models.AuditCategoryGiveaway:
		return "🎉"
	case models.AuditCategoryShift:
		return "⏱️"
	case models.AuditCategoryModeration:
		return "🔨"
	case models.AuditCategoryShop:
		return "🛒"
	case models.AuditCategoryCasino:
		return "🎰"
	default:
		return "📋"
	}
}

// buildEntryEmbed renders a single entry for the audit channel
func buildEntryEmbed(entry *models.AuditEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("%s %s", categoryEmoji(entry.Category), entry.Detail),
		Color:       common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: string(entry.Category),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if entry.ActorID != 0 {
		embed.Description += fmt.Sprintf("\nby %s", common.GetUserMention(entry.ActorID))
	}
	return embed
}

// buildRecentEmbed renders the /audit recent listing, newest first
func buildRecentEmbed(entries []*models.AuditEntry) *discordgo.MessageEmbed {
	if len(entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "📋 Audit Log",
			Description: "No audit entries yet.",
			Color:       common.ColorInfo,
		}
	}

	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			common.FormatDiscordTimestamp(entry.CreatedAt, "R"),
			categoryEmoji(entry.Category),
			entry.Detail))
	}

	return &discordgo.MessageEmbed{
		Title:       "📋 Audit Log",
		Description: sb.String(),
		Color:       common.ColorPrimary,
	}
}
