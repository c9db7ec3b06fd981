package suggestions

import (
	"fmt"

	"pitboss/bot/common"
	"pitboss/models"

	"github.com/bwmarrin/discordgo"
)

func statusColor(status models.SubmissionStatus) int {
	switch status {
	case models.StatusApproved:
		return common.ColorSuccess
	case models.StatusDenied:
		return common.ColorDanger
	case models.StatusResolved:
		return common.ColorPrimary
	default:
		return common.ColorWarning
	}
}

// buildSuggestionEmbed renders a suggestion for the suggestion channel
func buildSuggestionEmbed(s *models.Suggestion) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("💡 Suggestion #%d: %s", s.ID, s.Title),
		Description: s.Description,
		Color:       statusColor(s.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: string(s.Status), Inline: true},
			{Name: "Submitted by", Value: common.GetUserMention(s.AuthorID), Inline: true},
		},
	}
}

// buildBugReportEmbed renders a bug report for the bug report channel
func buildBugReportEmbed(b *models.BugReport) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🐛 Bug #%d: %s", b.ID, b.Title),
		Description: b.Description,
		Color:       statusColor(b.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: string(b.Status), Inline: true},
			{Name: "Reported by", Value: common.GetUserMention(b.AuthorID), Inline: true},
		},
	}
}
