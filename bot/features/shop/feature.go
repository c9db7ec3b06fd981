package shop

import (
	"pitboss/bot/common"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	shopService service.ShopService
	auth        common.Authorizer
}

func New(shopService service.ShopService, auth common.Authorizer) *Feature {
	return &Feature{
		shopService: shopService,
		auth:        auth,
	}
}

// HandleCommand dispatches the /shop subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "add":
		f.handleAdd(s, i, options[0].Options)
	case "remove":
		f.handleRemove(s, i, options[0].Options)
	case "toggle":
		f.handleToggle(s, i, options[0].Options)
	case "list":
		f.handleList(s, i)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}
