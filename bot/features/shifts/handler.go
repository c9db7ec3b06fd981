package shifts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pitboss/bot/common"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleClockIn handles /shift clockin
func (f *Feature) handleClockIn(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireStaff(s, i) {
		return
	}

	ctx := context.Background()

	var role string
	for _, opt := range options {
		if opt.Name == "role" {
			role = strings.ToLower(opt.StringValue())
		}
	}

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, _ := common.ParseUserID(i.GuildID)

	shift, err := f.shiftService.ClockIn(ctx, discordID, guildID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyClockedIn):
			common.RespondWithError(s, i, "You are already clocked in. Clock out first.")
		case errors.Is(err, service.ErrUnknownShiftRole):
			common.RespondWithError(s, i, fmt.Sprintf("Unknown shift role. Available: %s.", f.roleList()))
		default:
			log.Errorf("Error clocking in user %d: %v", discordID, err)
			common.RespondWithError(s, i, "Unable to clock in. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("Clocked in as **%s** at %s. Pay rate: **%s chips/hour**.",
		shift.Role,
		common.FormatDiscordTimestamp(shift.ClockIn, "t"),
		common.FormatChips(shift.HourlyRate))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to clockin: %v", err)
	}
}

// handleClockOut handles /shift clockout
func (f *Feature) handleClockOut(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.auth.RequireStaff(s, i) {
		return
	}

	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, _ := common.ParseUserID(i.GuildID)

	receipt, err := f.shiftService.ClockOut(ctx, discordID, guildID)
	if err != nil {
		if errors.Is(err, service.ErrNotClockedIn) {
			common.RespondWithError(s, i, "You are not clocked in.")
			return
		}
		log.Errorf("Error clocking out user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to clock out. Please try again.")
		return
	}

	message := fmt.Sprintf("Clocked out of your **%s** shift after %s. You earned **%s chips**.",
		receipt.Role,
		common.FormatDuration(receipt.Duration),
		common.FormatChips(receipt.Earnings))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to clockout: %v", err)
	}
}

// handleStatus handles /shift status
func (f *Feature) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	shift, open := f.shiftService.Status(discordID)
	if !open {
		embed := &discordgo.MessageEmbed{
			Title:       "⏱️ Shift Status",
			Description: "You are not clocked in.",
			Color:       common.ColorInfo,
		}
		if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
			log.Errorf("Error responding to shift status: %v", err)
		}
		return
	}

	elapsed := shift.Duration(time.Now())
	embed := &discordgo.MessageEmbed{
		Title: "⏱️ Shift Status",
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Role", Value: shift.Role, Inline: true},
			{Name: "Clocked in", Value: common.FormatDiscordTimestamp(shift.ClockIn, "t"), Inline: true},
			{Name: "Elapsed", Value: common.FormatDuration(elapsed), Inline: true},
			{Name: "Rate", Value: common.FormatChips(shift.HourlyRate) + " chips/hour", Inline: true},
		},
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to shift status: %v", err)
	}
}

// handleEarnings handles /shift earnings
func (f *Feature) handleEarnings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, _ := common.ParseUserID(i.GuildID)

	total, err := f.shiftService.TotalEarnings(ctx, discordID, guildID)
	if err != nil {
		log.Errorf("Error getting shift earnings for user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to retrieve earnings. Please try again.")
		return
	}

	message := fmt.Sprintf("You have earned **%s chips** across all closed shifts.", common.FormatChips(total))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to shift earnings: %v", err)
	}
}

// handleEndDay handles /shift endday, the manager bulk clock-out
func (f *Feature) handleEndDay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	receipts, err := f.shiftService.ClockOutAll(ctx, guildID)
	if err != nil {
		log.Errorf("Error bulk clocking out guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to close open shifts. Please try again.")
		return
	}

	if len(receipts) == 0 {
		if err := common.RespondWithSuccess(s, i, "No open shifts to close.", true); err != nil {
			log.Errorf("Error responding to endday: %v", err)
		}
		return
	}

	var total int64
	var lines []string
	for _, r := range receipts {
		total += r.Earnings
		lines = append(lines, fmt.Sprintf("%s (%s): %s chips",
			common.GetDisplayNameInt64(s, i.GuildID, r.DiscordID),
			r.Role, common.FormatChips(r.Earnings)))
	}
	message := fmt.Sprintf("Closed **%d** open shift(s), paying out **%s chips** in total.\n%s",
		len(receipts), common.FormatChips(total), strings.Join(lines, "\n"))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to endday: %v", err)
	}
}

// roleList renders the configured shift roles for error messages
func (f *Feature) roleList() string {
	roles := make([]string, 0, len(f.payRates))
	for role := range f.payRates {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return strings.Join(roles, ", ")
}
