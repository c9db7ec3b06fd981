package audit

import (
	"context"

	"pitboss/bot/common"
	"pitboss/events"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type Feature struct {
	auditService   service.AuditService
	auth           common.Authorizer
	auditChannelID string
}

func New(auditService service.AuditService, auth common.Authorizer, auditChannelID string) *Feature {
	return &Feature{
		auditService:   auditService,
		auth:           auth,
		auditChannelID: auditChannelID,
	}
}

// HandleCommand dispatches the /audit subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "recent":
		f.handleRecent(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}

// EventHandler persists an audit row for every auditable domain event and
// mirrors it to the audit channel. Registered via SubscribeAll.
func (f *Feature) EventHandler(s *discordgo.Session) events.Handler {
	return func(ctx context.Context, event events.Event) {
		entry := service.RenderAuditEntry(event)
		if entry == nil {
			return
		}

		if err := f.auditService.Record(ctx, entry); err != nil {
			log.Errorf("Error recording audit entry for %s: %v", event.Type(), err)
		}

		if f.auditChannelID == "" {
			return
		}
		if _, err := s.ChannelMessageSendEmbed(f.auditChannelID, buildEntryEmbed(entry)); err != nil {
			log.Errorf("Error posting audit entry to channel: %v", err)
		}
	}
}
