package shop

import (
	"fmt"
	"strings"

	"pitboss/bot/common"
	"pitboss/models"

	"github.com/bwmarrin/discordgo"
)

// buildShopEmbed renders the full item table, disabled items included,
// since this is the admin view
func buildShopEmbed(items []*models.ShopItem) *discordgo.MessageEmbed {
	if len(items) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "🛒 Shop Items",
			Description: "The shop is empty.",
			Color:       common.ColorInfo,
		}
	}

	var sb strings.Builder
	for _, item := range items {
		marker := "🟢"
		if !item.Enabled {
			marker = "🔴"
		}
		sb.WriteString(fmt.Sprintf("%s **%s**: %s chips", marker, item.Name, common.FormatChips(item.Price)))
		if item.RoleID != 0 {
			sb.WriteString(fmt.Sprintf(" (grants <@&%d>)", item.RoleID))
		}
		sb.WriteString("\n")
		if item.Description != "" {
			sb.WriteString("　" + item.Description + "\n")
		}
	}

	return &discordgo.MessageEmbed{
		Title:       "🛒 Shop Items",
		Description: sb.String(),
		Color:       common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "🟢 enabled · 🔴 disabled",
		},
	}
}
