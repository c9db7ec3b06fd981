package giveaways

import (
	"github.com/bwmarrin/discordgo"
)

// The component interaction carries its message, so the custom ID needs no
// embedded giveaway key.
const entryButtonPrefix = "giveaway_enter"

// BuildEntryComponents creates the enter button for a giveaway message
func BuildEntryComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "🎟️ Enter",
					Style:    discordgo.PrimaryButton,
					CustomID: entryButtonPrefix,
				},
			},
		},
	}
}
