package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pitboss/bot/common"
	"pitboss/models"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleAdd handles /shop add
func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var name, description string
	var price int64
	var role *discordgo.Role
	for _, opt := range options {
		switch opt.Name {
		case "name":
			name = strings.TrimSpace(opt.StringValue())
		case "description":
			description = opt.StringValue()
		case "price":
			price = opt.IntValue()
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		}
	}

	if name == "" {
		common.RespondWithError(s, i, "Please provide an item name.")
		return
	}
	if price <= 0 {
		common.RespondWithError(s, i, "Price must be positive.")
		return
	}

	actorID, _ := common.ParseUserID(i.Member.User.ID)
	guildID, _ := common.ParseUserID(i.GuildID)

	var roleID int64
	if role != nil {
		roleID, _ = common.ParseUserID(role.ID)
	}

	item := &models.ShopItem{
		GuildID:     guildID,
		Name:        name,
		Description: description,
		Price:       price,
		RoleID:      roleID,
		Enabled:     true,
	}

	if err := f.shopService.AddItem(ctx, actorID, item); err != nil {
		if errors.Is(err, service.ErrItemExists) {
			common.RespondWithError(s, i, "An item with that name already exists.")
			return
		}
		log.Errorf("Error adding shop item %q: %v", name, err)
		common.RespondWithError(s, i, "Unable to add the item. Please try again.")
		return
	}

	message := fmt.Sprintf("Added **%s** to the shop for **%s chips**.", name, common.FormatChips(price))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to shop add: %v", err)
	}
}

// handleRemove handles /shop remove
func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var name string
	for _, opt := range options {
		if opt.Name == "name" {
			name = strings.TrimSpace(opt.StringValue())
		}
	}
	if name == "" {
		common.RespondWithError(s, i, "Please provide an item name.")
		return
	}

	actorID, _ := common.ParseUserID(i.Member.User.ID)
	guildID, _ := common.ParseUserID(i.GuildID)

	if err := f.shopService.RemoveItem(ctx, actorID, guildID, name); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			common.RespondWithError(s, i, "No shop item with that name.")
			return
		}
		log.Errorf("Error removing shop item %q: %v", name, err)
		common.RespondWithError(s, i, "Unable to remove the item. Please try again.")
		return
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Removed **%s** from the shop.", name), false); err != nil {
		log.Errorf("Error responding to shop remove: %v", err)
	}
}

// handleToggle handles /shop toggle
func (f *Feature) handleToggle(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if !f.auth.RequireManager(s, i) {
		return
	}

	ctx := context.Background()

	var name string
	var enabled bool
	for _, opt := range options {
		switch opt.Name {
		case "name":
			name = strings.TrimSpace(opt.StringValue())
		case "enabled":
			enabled = opt.BoolValue()
		}
	}
	if name == "" {
		common.RespondWithError(s, i, "Please provide an item name.")
		return
	}

	actorID, _ := common.ParseUserID(i.Member.User.ID)
	guildID, _ := common.ParseUserID(i.GuildID)

	if err := f.shopService.SetItemEnabled(ctx, actorID, guildID, name, enabled); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			common.RespondWithError(s, i, "No shop item with that name.")
			return
		}
		log.Errorf("Error toggling shop item %q: %v", name, err)
		common.RespondWithError(s, i, "Unable to update the item. Please try again.")
		return
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("**%s** is now %s.", name, state), false); err != nil {
		log.Errorf("Error responding to shop toggle: %v", err)
	}
}

// handleList handles /shop list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	items, err := f.shopService.ListItems(ctx, guildID)
	if err != nil {
		log.Errorf("Error listing shop items for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to list shop items. Please try again.")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildShopEmbed(items), nil, true); err != nil {
		log.Errorf("Error responding to shop list: %v", err)
	}
}
