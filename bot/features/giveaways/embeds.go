package giveaways

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pitboss/bot/common"
	"pitboss/models"

	"github.com/bwmarrin/discordgo"
)

const giveawayTitlePrefix = "🎉 Giveaway: "

// The end time survives restarts only inside the posted embed, so recovery
// parses it back out of the Discord timestamp markup.
var (
	endsAtPattern  = regexp.MustCompile(`<t:(\d+):[a-zA-Z]>`)
	winnersPattern = regexp.MustCompile(`(\d+)`)
)

// BuildGiveawayEmbed renders the giveaway announcement message
func BuildGiveawayEmbed(g *models.Giveaway) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: giveawayTitlePrefix + g.Prize,
		Description: fmt.Sprintf("Press the button below to enter!\n\nEnds %s (%s)",
			common.FormatDiscordTimestamp(g.EndsAt, "R"),
			common.FormatDiscordTimestamp(g.EndsAt, "f")),
		Color: common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Winners", Value: strconv.Itoa(g.WinnerCount), Inline: true},
			{Name: "Hosted by", Value: common.GetUserMention(g.CreatorID), Inline: true},
		},
	}
}

// BuildConcludedEmbed renders the edited message after a giveaway ends
func BuildConcludedEmbed(prize string, winnerIDs []int64, participants int) *discordgo.MessageEmbed {
	description := "No valid entries, nobody won."
	if len(winnerIDs) > 0 {
		mentions := make([]string, len(winnerIDs))
		for idx, id := range winnerIDs {
			mentions[idx] = common.GetUserMention(id)
		}
		description = fmt.Sprintf("Won by %s out of %d entries.", strings.Join(mentions, ", "), participants)
	}

	return &discordgo.MessageEmbed{
		Title:       "🏁 Giveaway ended: " + prize,
		Description: description,
		Color:       common.ColorPrimary,
	}
}

// ParseGiveawayEmbed reconstructs giveaway fields from a posted message.
// Used by /giveaway recover after a restart wiped the runtime state and
// the database row is missing.
func ParseGiveawayEmbed(msg *discordgo.Message) (prize string, endsAt time.Time, winnerCount int, err error) {
	if len(msg.Embeds) == 0 {
		return "", time.Time{}, 0, fmt.Errorf("message has no embed")
	}
	embed := msg.Embeds[0]

	if !strings.HasPrefix(embed.Title, giveawayTitlePrefix) {
		return "", time.Time{}, 0, fmt.Errorf("message is not a giveaway announcement")
	}
	prize = strings.TrimPrefix(embed.Title, giveawayTitlePrefix)

	match := endsAtPattern.FindStringSubmatch(embed.Description)
	if match == nil {
		return "", time.Time{}, 0, fmt.Errorf("no end timestamp in embed")
	}
	unix, parseErr := strconv.ParseInt(match[1], 10, 64)
	if parseErr != nil {
		return "", time.Time{}, 0, fmt.Errorf("invalid end timestamp: %w", parseErr)
	}
	endsAt = time.Unix(unix, 0)

	winnerCount = 1
	for _, field := range embed.Fields {
		if field.Name != "Winners" {
			continue
		}
		if m := winnersPattern.FindString(field.Value); m != "" {
			if n, convErr := strconv.Atoi(m); convErr == nil {
				winnerCount = n
			}
		}
	}

	return prize, endsAt, winnerCount, nil
}
