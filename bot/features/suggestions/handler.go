package suggestions

import (
	"context"
	"fmt"

	"pitboss/bot/common"
	"pitboss/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleSuggest handles /suggest
func (f *Feature) handleSuggest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	title, description, ok := extractSubmission(s, i)
	if !ok {
		return
	}

	authorID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, _ := common.ParseUserID(i.GuildID)

	suggestion, err := f.suggestionService.SubmitSuggestion(ctx, authorID, guildID, title, description)
	if err != nil {
		log.Errorf("Error submitting suggestion from user %d: %v", authorID, err)
		common.RespondWithError(s, i, "Unable to submit the suggestion. Please try again.")
		return
	}

	msg, err := s.ChannelMessageSendEmbed(f.suggestionChannelID, buildSuggestionEmbed(suggestion))
	if err != nil {
		log.Errorf("Error posting suggestion %d: %v", suggestion.ID, err)
		common.RespondWithError(s, i, "Suggestion saved, but it could not be posted to the channel.")
		return
	}

	// Open a discussion thread on the posted suggestion
	var threadID int64
	thread, err := s.MessageThreadStartComplex(f.suggestionChannelID, msg.ID, &discordgo.ThreadStart{
		Name:                fmt.Sprintf("Suggestion #%d: %s", suggestion.ID, truncate(title, 80)),
		AutoArchiveDuration: 10080,
	})
	if err != nil {
		log.Errorf("Error creating thread for suggestion %d: %v", suggestion.ID, err)
	} else {
		threadID, _ = common.ParseUserID(thread.ID)
	}

	messageID, _ := common.ParseUserID(msg.ID)
	if err := f.suggestionService.AttachSuggestionMessage(ctx, suggestion.ID, messageID, threadID); err != nil {
		log.Errorf("Error attaching message to suggestion %d: %v", suggestion.ID, err)
	}

	message := fmt.Sprintf("Suggestion **#%d** submitted. Discuss it in <#%s>.", suggestion.ID, f.suggestionChannelID)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to suggest command: %v", err)
	}
}

// handleBugReport handles /bugreport
func (f *Feature) handleBugReport(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	title, description, ok := extractSubmission(s, i)
	if !ok {
		return
	}

	authorID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, _ := common.ParseUserID(i.GuildID)

	report, err := f.suggestionService.SubmitBugReport(ctx, authorID, guildID, title, description)
	if err != nil {
		log.Errorf("Error submitting bug report from user %d: %v", authorID, err)
		common.RespondWithError(s, i, "Unable to submit the bug report. Please try again.")
		return
	}

	msg, err := s.ChannelMessageSendEmbed(f.bugReportChannelID, buildBugReportEmbed(report))
	if err != nil {
		log.Errorf("Error posting bug report %d: %v", report.ID, err)
		common.RespondWithError(s, i, "Report saved, but it could not be posted to the channel.")
		return
	}

	messageID, _ := common.ParseUserID(msg.ID)
	if err := f.suggestionService.AttachBugReportMessage(ctx, report.ID, messageID); err != nil {
		log.Errorf("Error attaching message to bug report %d: %v", report.ID, err)
	}

	message := fmt.Sprintf("Bug report **#%d** filed. Thank you!", report.ID)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to bugreport command: %v", err)
	}
}

// handleResolveSuggestion handles /suggestion resolve
func (f *Feature) handleResolveSuggestion(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	id, status, ok := extractResolution(s, i, options)
	if !ok {
		return
	}

	suggestion, err := f.suggestionService.ResolveSuggestion(ctx, id, status)
	if err != nil {
		log.Errorf("Error resolving suggestion %d: %v", id, err)
		common.RespondWithError(s, i, "Unable to resolve that suggestion. Check the ID.")
		return
	}

	// Reflect the new status on the posted message
	if suggestion.MessageID != 0 {
		_, err := s.ChannelMessageEditEmbed(f.suggestionChannelID,
			common.FormatUserID(suggestion.MessageID), buildSuggestionEmbed(suggestion))
		if err != nil {
			log.Errorf("Error updating suggestion message %d: %v", suggestion.MessageID, err)
		}
	}

	message := fmt.Sprintf("Suggestion **#%d** marked as **%s**.", suggestion.ID, suggestion.Status)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to suggestion resolve: %v", err)
	}
}

// handleResolveBugReport handles /suggestion resolve-bug
func (f *Feature) handleResolveBugReport(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	id, status, ok := extractResolution(s, i, options)
	if !ok {
		return
	}

	report, err := f.suggestionService.ResolveBugReport(ctx, id, status)
	if err != nil {
		log.Errorf("Error resolving bug report %d: %v", id, err)
		common.RespondWithError(s, i, "Unable to resolve that bug report. Check the ID.")
		return
	}

	if report.MessageID != 0 {
		_, err := s.ChannelMessageEditEmbed(f.bugReportChannelID,
			common.FormatUserID(report.MessageID), buildBugReportEmbed(report))
		if err != nil {
			log.Errorf("Error updating bug report message %d: %v", report.MessageID, err)
		}
	}

	message := fmt.Sprintf("Bug report **#%d** marked as **%s**.", report.ID, report.Status)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to bug report resolve: %v", err)
	}
}

// extractSubmission pulls title and description out of a submit command
func extractSubmission(s *discordgo.Session, i *discordgo.InteractionCreate) (title, description string, ok bool) {
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "title":
			title = opt.StringValue()
		case "description":
			description = opt.StringValue()
		}
	}
	if title == "" || description == "" {
		common.RespondWithError(s, i, "Please provide both a title and a description.")
		return "", "", false
	}
	return title, description, true
}

// extractResolution pulls id and status out of a resolve subcommand
func extractResolution(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) (int64, models.SubmissionStatus, bool) {
	var id int64
	var statusText string
	for _, opt := range options {
		switch opt.Name {
		case "id":
			id = opt.IntValue()
		case "status":
			statusText = opt.StringValue()
		}
	}

	if !models.ValidStatus(statusText) {
		common.RespondWithError(s, i, "Invalid status. Use approved, denied or resolved.")
		return 0, "", false
	}
	return id, models.SubmissionStatus(statusText), true
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
