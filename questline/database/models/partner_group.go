package models

import (
	"regexp"
	"time"

	"github.com/uptrace/bun"
)

// GroupCodePattern is the canonical shape of a group code, e.g. GRP001.
var GroupCodePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

type PartnerGroup struct {
	bun.BaseModel `bun:"table:partner_groups,alias:pg"`

	ID          int64  `bun:"id,pk,autoincrement"`
	GroupCode   string `bun:"group_code,notnull,unique"`
	MemberOneID int64  `bun:"member_one_id,notnull"`
	MemberTwoID int64  `bun:"member_two_id,notnull"`
	Active      bool   `bun:"active,notnull,default:true"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`

	MemberOne *User `bun:"rel:belongs-to,join:member_one_id=id"`
	MemberTwo *User `bun:"rel:belongs-to,join:member_two_id=id"`
}

func (g *PartnerGroup) HasMember(userID int64) bool {
	return g.MemberOneID == userID || g.MemberTwoID == userID
}

func (g *PartnerGroup) MemberIDs() []int64 {
	return []int64{g.MemberOneID, g.MemberTwoID}
}

// PartnerOf returns the other member of the group, or 0 if userID is not
// a member.
func (g *PartnerGroup) PartnerOf(userID int64) int64 {
	switch userID {
	case g.MemberOneID:
		return g.MemberTwoID
	case g.MemberTwoID:
		return g.MemberOneID
	}
	return 0
}
