package suggestions

import (
	"pitboss/bot/common"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	suggestionService   service.SuggestionService
	auth                common.Authorizer
	suggestionChannelID string
	bugReportChannelID  string
}

func New(suggestionService service.SuggestionService, auth common.Authorizer, suggestionChannelID, bugReportChannelID string) *Feature {
	return &Feature{
		suggestionService:   suggestionService,
		auth:                auth,
		suggestionChannelID: suggestionChannelID,
		bugReportChannelID:  bugReportChannelID,
	}
}

// HandleSuggest handles the /suggest command
func (f *Feature) HandleSuggest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSuggest(s, i)
}

// HandleBugReport handles the /bugreport command
func (f *Feature) HandleBugReport(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBugReport(s, i)
}

// HandleResolve handles the /suggestion command and its subcommands
func (f *Feature) HandleResolve(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "resolve":
		f.handleResolveSuggestion(s, i, options[0].Options)
	case "resolve-bug":
		f.handleResolveBugReport(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}
