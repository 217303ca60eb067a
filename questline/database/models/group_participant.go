package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GroupParticipant is one person in one group of a group submission.
// The group code is denormalized at creation time so overlap checks on
// historical submissions are unaffected by later group re-coding.
// Opting out flips a flag for point eligibility; the row itself is the
// historical record and stays.
type GroupParticipant struct {
	bun.BaseModel `bun:"table:group_participants,alias:gp"`

	ID                int64      `bun:"id,pk,autoincrement"`
	GroupSubmissionID int64      `bun:"group_submission_id,notnull"`
	UserID            int64      `bun:"user_id,notnull"`
	PartnerID         int64      `bun:"partner_id,notnull"`
	GroupCode         string     `bun:"group_code,notnull"`
	OptedOut          bool       `bun:"opted_out,notnull,default:false"`
	OptedOutAt        *time.Time `bun:"opted_out_at"`

	User *User `bun:"rel:belongs-to,join:user_id=id"`
}
