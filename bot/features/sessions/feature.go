package sessions

import (
	"pitboss/bot/common"
	"pitboss/casino"
	"pitboss/events"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	casinoClient *casino.Client
	auth         common.Authorizer
	eventBus     *events.Bus
}

func New(casinoClient *casino.Client, auth common.Authorizer, eventBus *events.Bus) *Feature {
	return &Feature{
		casinoClient: casinoClient,
		auth:         auth,
		eventBus:     eventBus,
	}
}

// HandleCommand dispatches the /casino subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "stop":
		f.handleStop(s, i, options[0].Options)
	case "release":
		f.handleRelease(s, i, options[0].Options)
	case "stats":
		f.handleStats(s, i, options[0].Options)
	case "cleanup":
		f.handleCleanup(s, i)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}
