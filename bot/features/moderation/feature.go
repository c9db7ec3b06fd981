package moderation

import (
	"pitboss/bot/common"
	"pitboss/events"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	auth     common.Authorizer
	eventBus *events.Bus
}

func New(auth common.Authorizer, eventBus *events.Bus) *Feature {
	return &Feature{
		auth:     auth,
		eventBus: eventBus,
	}
}

// HandleTimeout handles the /timeout command
func (f *Feature) HandleTimeout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleTimeout(s, i)
}

// HandleUntimeout handles the /untimeout command
func (f *Feature) HandleUntimeout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleUntimeout(s, i)
}
