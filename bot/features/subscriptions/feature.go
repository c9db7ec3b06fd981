package subscriptions

import (
	"pitboss/bot/common"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	subscriptionService service.SubscriptionService
	auth                common.Authorizer
}

func New(subscriptionService service.SubscriptionService, auth common.Authorizer) *Feature {
	return &Feature{
		subscriptionService: subscriptionService,
		auth:                auth,
	}
}

// HandleCommand dispatches the /subscription subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "grant":
		f.handleGrant(s, i, options[0].Options)
	case "revoke":
		f.handleRevoke(s, i, options[0].Options)
	case "check":
		f.handleCheck(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}
