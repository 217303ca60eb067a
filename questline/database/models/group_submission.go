package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GroupSubmission ties one Submission to the set of partner groups that
// participate in it. The participant rows are created together with this
// row in a single transaction and are never deleted afterwards.
type GroupSubmission struct {
	bun.BaseModel `bun:"table:group_submissions,alias:gs"`

	ID          int64     `bun:"id,pk,autoincrement"`
	QuestID     int64     `bun:"quest_id,notnull"`
	SubmitterID int64     `bun:"submitter_id,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Quest        *Quest              `bun:"rel:belongs-to,join:quest_id=id"`
	Submitter    *User               `bun:"rel:belongs-to,join:submitter_id=id"`
	Participants []*GroupParticipant `bun:"rel:has-many,join:id=group_submission_id"`
}
