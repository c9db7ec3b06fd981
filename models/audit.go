package models

import "time"

// AuditCategory groups audit log entries by the subsystem that produced them
type AuditCategory string

const (
	AuditCategoryEconomy      AuditCategory = "economy"
	AuditCategorySubscription AuditCategory = "subscription"
	AuditCategoryGiveaway     AuditCategory = "giveaway"
	AuditCategoryShift        AuditCategory = "shift"
	AuditCategoryModeration   AuditCategory = "moderation"
	AuditCategoryShop         AuditCategory = "shop"
	AuditCategoryCasino       AuditCategory = "casino"
)

// AuditEntry is a write-once record of an administrative action
type AuditEntry struct {
	ID        int64         `db:"id"`
	GuildID   int64         `db:"guild_id"`
	Category  AuditCategory `db:"category"`
	ActorID   int64         `db:"actor_id"`
	Detail    string        `db:"detail"`
	CreatedAt time.Time     `db:"created_at"`
}
