package economy

import (
	"pitboss/bot/common"
	"pitboss/casino"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	economyService service.EconomyService
	casinoClient   *casino.Client
	auth           common.Authorizer
}

func New(economyService service.EconomyService, casinoClient *casino.Client, auth common.Authorizer) *Feature {
	return &Feature{
		economyService: economyService,
		casinoClient:   casinoClient,
		auth:           auth,
	}
}

// HandleCommand dispatches the /economy subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "balance":
		f.handleBalance(s, i, options[0].Options)
	case "adjust":
		f.handleAdjust(s, i, options[0].Options)
	case "toggle-exempt":
		f.handleToggleExempt(s, i, options[0].Options)
	case "analyze":
		f.handleAnalyze(s, i)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}
