package sessions

import (
	"fmt"

	"pitboss/bot/common"
	"pitboss/casino"

	"github.com/bwmarrin/discordgo"
)

// buildStatsEmbed renders the casino bot's view of a user's session
func buildStatsEmbed(displayName string, stats *casino.SessionStats) *discordgo.MessageEmbed {
	state := "inactive"
	color := common.ColorInfo
	if stats.Active {
		state = "active"
		color = common.ColorSuccess
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎰 Casino session for %s", displayName),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Game", Value: stats.Game, Inline: true},
			{Name: "State", Value: state, Inline: true},
			{Name: "Started", Value: common.FormatDiscordTimestamp(stats.StartedAt, "R"), Inline: true},
			{Name: "Hands Played", Value: fmt.Sprintf("%d", stats.HandsPlayed), Inline: true},
			{Name: "Wagered", Value: common.FormatChips(stats.AmountWagered) + " chips", Inline: true},
			{Name: "Net Result", Value: common.FormatChips(stats.NetResult) + " chips", Inline: true},
		},
	}
}
