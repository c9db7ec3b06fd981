package shifts

import (
	"pitboss/bot/common"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	shiftService service.ShiftService
	auth         common.Authorizer
	payRates     map[string]int64
}

func New(shiftService service.ShiftService, auth common.Authorizer, payRates map[string]int64) *Feature {
	return &Feature{
		shiftService: shiftService,
		auth:         auth,
		payRates:     payRates,
	}
}

// HandleCommand dispatches the /shift subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "clockin":
		f.handleClockIn(s, i, options[0].Options)
	case "clockout":
		f.handleClockOut(s, i)
	case "status":
		f.handleStatus(s, i)
	case "earnings":
		f.handleEarnings(s, i)
	case "endday":
		f.handleEndDay(s, i)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}
