package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64  `bun:"id,pk,autoincrement"`
	DiscordID string `bun:"discord_id,unique,nullzero"`
	Username  string `bun:"username,notnull"`
	PartnerID *int64 `bun:"partner_id"`
	Points    int64  `bun:"points,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`

	Partner *User `bun:"rel:belongs-to,join:partner_id=id"`
}

// Linked reports whether the user is connected to a chat identity.
// Unlinked users exist (imported legacy accounts, partner stubs) and are
// an expected state, not an error.
func (u *User) Linked() bool {
	return u.DiscordID != ""
}

// HasPartner reports whether the user is in a fixed partnership.
func (u *User) HasPartner() bool {
	return u.PartnerID != nil && *u.PartnerID != 0
}
