package economy

import (
	"fmt"

	"pitboss/bot/common"
	"pitboss/casino"
	"pitboss/models"

	"github.com/bwmarrin/discordgo"
)

// formatDelta renders a signed chip delta for adjustment messages
func formatDelta(delta int64) string {
	if delta >= 0 {
		return "+" + common.FormatChips(delta)
	}
	return common.FormatChips(delta)
}

// buildBalanceEmbed renders a user's economy record
func buildBalanceEmbed(displayName string, user *models.User) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("💰 Balance for %s", displayName),
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Wallet", Value: common.FormatChips(user.Wallet) + " chips", Inline: true},
			{Name: "Bank", Value: common.FormatChips(user.Bank) + " chips", Inline: true},
			{Name: "Total", Value: common.FormatChips(user.Total()) + " chips", Inline: true},
		},
	}

	if user.OffEconomy {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Excluded from economy leaderboards",
		}
	}

	return embed
}

// buildAnalyzeEmbed renders the economy report. overview is nil when the
// casino bot could not be reached.
func buildAnalyzeEmbed(summary *models.EconomySummary, overview *casino.Overview) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📊 Economy Report",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tracked Users", Value: fmt.Sprintf("%d", summary.UserCount), Inline: true},
			{Name: "Total Wallet", Value: common.FormatChips(summary.TotalWallet) + " chips", Inline: true},
			{Name: "Total Bank", Value: common.FormatChips(summary.TotalBank) + " chips", Inline: true},
			{Name: "In Circulation", Value: common.FormatChips(summary.TotalWallet+summary.TotalBank) + " chips", Inline: true},
			{Name: "Off-Economy Users", Value: fmt.Sprintf("%d", summary.OffEconomyCount), Inline: true},
		},
	}

	if overview != nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Live Casino Sessions", Value: fmt.Sprintf("%d", overview.ActiveSessions), Inline: true},
			&discordgo.MessageEmbedField{Name: "Live Wagered", Value: common.FormatChips(overview.TotalWagered) + " chips", Inline: true},
			&discordgo.MessageEmbedField{Name: "House Net", Value: common.FormatChips(overview.NetHouseResult) + " chips", Inline: true},
		)
	} else {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Casino bot unreachable, live session figures omitted",
		}
	}

	return embed
}
