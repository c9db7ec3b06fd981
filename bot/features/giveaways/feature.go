package giveaways

import (
	"strings"

	"pitboss/bot/common"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	giveawayService service.GiveawayService
	auth            common.Authorizer
}

func New(giveawayService service.GiveawayService, auth common.Authorizer) *Feature {
	return &Feature{
		giveawayService: giveawayService,
		auth:            auth,
	}
}

// HandleCommand dispatches the /giveaway subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "start":
		f.handleStart(s, i, options[0].Options)
	case "end":
		f.handleEnd(s, i, options[0].Options)
	case "recover":
		f.handleRecover(s, i, options[0].Options)
	case "list":
		f.handleList(s, i)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}

// HandleComponent handles giveaway entry button presses
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if strings.HasPrefix(customID, entryButtonPrefix) {
		f.handleEntry(s, i, customID)
	}
}
