package giveaways

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pitboss/bot/common"
	"pitboss/events"
	"pitboss/models"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleStart handles /giveaway start
func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var prize, durationText string
	winnerCount := 1
	for _, opt := range options {
		switch opt.Name {
		case "prize":
			prize = opt.StringValue()
		case "duration":
			durationText = opt.StringValue()
		case "winners":
			winnerCount = int(opt.IntValue())
		}
	}

	if prize == "" {
		common.RespondWithError(s, i, "Please provide a prize.")
		return
	}
	if winnerCount < 1 || winnerCount > common.MaxGiveawayWinners {
		common.RespondWithError(s, i, fmt.Sprintf("Winner count must be between 1 and %d.", common.MaxGiveawayWinners))
		return
	}

	duration, err := common.ParseCompactDuration(durationText)
	if err != nil {
		common.RespondWithError(s, i, "Invalid duration. Use a form like `30m`, `2h` or `1d`.")
		return
	}
	if duration < common.MinGiveawayDuration*time.Second || duration > common.MaxGiveawayDuration*time.Second {
		common.RespondWithError(s, i, "Giveaway duration must be between 1 minute and 30 days.")
		return
	}

	creatorID, _ := common.ParseUserID(i.Member.User.ID)
	guildID, _ := common.ParseUserID(i.GuildID)
	channelID, _ := common.ParseUserID(i.ChannelID)

	g := &models.Giveaway{
		ChannelID:   channelID,
		GuildID:     guildID,
		Prize:       prize,
		CreatorID:   creatorID,
		WinnerCount: winnerCount,
		EndsAt:      time.Now().Add(duration),
	}

	// Post the announcement first; its message ID keys the giveaway
	msg, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{BuildGiveawayEmbed(g)},
		Components: BuildEntryComponents(),
	})
	if err != nil {
		log.Errorf("Error posting giveaway announcement: %v", err)
		common.RespondWithError(s, i, "Unable to post the giveaway. Please try again.")
		return
	}

	g.MessageID, err = common.ParseUserID(msg.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := f.giveawayService.Start(ctx, g); err != nil {
		log.Errorf("Error starting giveaway %d: %v", g.MessageID, err)
		// The announcement is orphaned without a row behind it
		if delErr := s.ChannelMessageDelete(i.ChannelID, msg.ID); delErr != nil {
			log.Errorf("Error deleting orphaned giveaway message %s: %v", msg.ID, delErr)
		}
		common.RespondWithError(s, i, "Unable to start the giveaway. Please try again.")
		return
	}

	message := fmt.Sprintf("Giveaway for **%s** started, ending %s.",
		prize, common.FormatDiscordTimestamp(g.EndsAt, "R"))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to giveaway start: %v", err)
	}
}

// handleEnd handles /giveaway end, concluding a giveaway ahead of schedule.
// The announcement itself is driven by the concluded event.
func (f *Feature) handleEnd(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var messageIDText string
	for _, opt := range options {
		if opt.Name == "message_id" {
			messageIDText = opt.StringValue()
		}
	}

	messageID, err := common.ParseUserID(messageIDText)
	if err != nil {
		common.RespondWithError(s, i, "Invalid message ID.")
		return
	}

	result, err := f.giveawayService.Conclude(ctx, messageID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGiveawayNotFound):
			common.RespondWithError(s, i, "No giveaway found for that message.")
		case errors.Is(err, service.ErrGiveawayConcluded):
			common.RespondWithError(s, i, "That giveaway has already ended.")
		default:
			log.Errorf("Error concluding giveaway %d: %v", messageID, err)
			common.RespondWithError(s, i, "Unable to end the giveaway. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("Ended the giveaway for **%s** with %d entrant(s).",
		result.Giveaway.Prize, result.Participants)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to giveaway end: %v", err)
	}
}

// handleRecover handles /giveaway recover, re-arming a giveaway from a
// surviving announcement message after a restart lost the database row.
func (f *Feature) handleRecover(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var messageIDText string
	for _, opt := range options {
		if opt.Name == "message_id" {
			messageIDText = opt.StringValue()
		}
	}

	messageID, err := common.ParseUserID(messageIDText)
	if err != nil {
		common.RespondWithError(s, i, "Invalid message ID.")
		return
	}

	msg, err := s.ChannelMessage(i.ChannelID, messageIDText)
	if err != nil {
		log.Errorf("Error fetching giveaway message %s: %v", messageIDText, err)
		common.RespondWithError(s, i, "Could not fetch that message in this channel.")
		return
	}

	prize, endsAt, winnerCount, err := ParseGiveawayEmbed(msg)
	if err != nil {
		common.RespondWithError(s, i, fmt.Sprintf("Could not recover giveaway: %v", err))
		return
	}

	creatorID, _ := common.ParseUserID(i.Member.User.ID)
	guildID, _ := common.ParseUserID(i.GuildID)
	channelID, _ := common.ParseUserID(i.ChannelID)

	g := &models.Giveaway{
		MessageID:   messageID,
		ChannelID:   channelID,
		GuildID:     guildID,
		Prize:       prize,
		CreatorID:   creatorID,
		WinnerCount: winnerCount,
		EndsAt:      endsAt,
	}

	if err := f.giveawayService.Recover(ctx, g); err != nil {
		if errors.Is(err, service.ErrGiveawayExists) {
			common.RespondWithError(s, i, "That giveaway is already tracked, nothing to recover.")
			return
		}
		log.Errorf("Error recovering giveaway %d: %v", messageID, err)
		common.RespondWithError(s, i, "Unable to recover the giveaway. Please try again.")
		return
	}

	message := fmt.Sprintf("Recovered the giveaway for **%s**, ending %s. Previous entries were lost.",
		prize, common.FormatDiscordTimestamp(endsAt, "R"))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to giveaway recover: %v", err)
	}
}

// handleList handles /giveaway list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	active := f.giveawayService.Active()

	if len(active) == 0 {
		embed := &discordgo.MessageEmbed{
			Title:       "🎉 Active Giveaways",
			Description: "No giveaways are currently running.",
			Color:       common.ColorInfo,
		}
		if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
			log.Errorf("Error responding to giveaway list: %v", err)
		}
		return
	}

	description := ""
	for _, id := range active {
		description += fmt.Sprintf("• message `%d`\n", id)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎉 Active Giveaways",
		Description: description,
		Color:       common.ColorGold,
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to giveaway list: %v", err)
	}
}

// handleEntry handles the enter button on a giveaway message
func (f *Feature) handleEntry(s *discordgo.Session, i *discordgo.InteractionCreate, _ string) {
	messageID, err := common.ParseUserID(i.Message.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := f.giveawayService.Enter(messageID, discordID); err != nil {
		switch {
		case errors.Is(err, service.ErrGiveawayNotFound), errors.Is(err, service.ErrGiveawayConcluded):
			common.RespondWithError(s, i, "This giveaway is no longer running.")
		default:
			log.Errorf("Error entering giveaway %d for user %d: %v", messageID, discordID, err)
			common.RespondWithError(s, i, "Unable to enter the giveaway. Please try again.")
		}
		return
	}

	if err := common.RespondWithSuccess(s, i, "You're in! Good luck. 🎟️", true); err != nil {
		log.Errorf("Error responding to giveaway entry: %v", err)
	}
}

// AnnounceConcluded edits the giveaway message and posts the winners.
// Subscribed to the concluded event so timer-driven and manual endings
// announce the same way.
func (f *Feature) AnnounceConcluded(s *discordgo.Session) events.Handler {
	return func(ctx context.Context, event events.Event) {
		e, ok := event.(events.GiveawayConcludedEvent)
		if !ok {
			return
		}

		channelID := common.FormatUserID(e.ChannelID)
		messageID := common.FormatUserID(e.MessageID)

		embed := BuildConcludedEmbed(e.Prize, e.WinnerIDs, e.Participants)
		empty := []discordgo.MessageComponent{}
		if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    channelID,
			ID:         messageID,
			Embeds:     &[]*discordgo.MessageEmbed{embed},
			Components: &empty,
		}); err != nil {
			log.Errorf("Error editing concluded giveaway message %s: %v", messageID, err)
		}

		content := fmt.Sprintf("🏁 The giveaway for **%s** has ended with no valid entries.", e.Prize)
		if len(e.WinnerIDs) > 0 {
			mentions := make([]string, len(e.WinnerIDs))
			for idx, id := range e.WinnerIDs {
				mentions[idx] = common.GetUserMention(id)
			}
			content = fmt.Sprintf("🎉 Congratulations %s! You won **%s**!",
				joinMentions(mentions), e.Prize)
		}
		if _, err := s.ChannelMessageSend(channelID, content); err != nil {
			log.Errorf("Error announcing giveaway winners for %s: %v", messageID, err)
		}
	}
}

func joinMentions(mentions []string) string {
	switch len(mentions) {
	case 1:
		return mentions[0]
	case 2:
		return mentions[0] + " and " + mentions[1]
	default:
		out := ""
		for idx, m := range mentions {
			switch idx {
			case 0:
				out = m
			case len(mentions) - 1:
				out += " and " + m
			default:
				out += ", " + m
			}
		}
		return out
	}
}
