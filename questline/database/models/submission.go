package models

import (
	"time"

	"github.com/uptrace/bun"
)

type SubmissionStatus string

const (
	// SubmissionPendingAI is the initial state: waiting for the automated
	// classifier verdict.
	SubmissionPendingAI SubmissionStatus = "pending_ai"
	// SubmissionAIApproved / SubmissionAIRejected are set by the classifier.
	SubmissionAIApproved SubmissionStatus = "ai_approved"
	SubmissionAIRejected SubmissionStatus = "ai_rejected"
	// SubmissionManualReview means the classifier was uncertain (or there
	// was no evidence to classify) and a human has to decide.
	SubmissionManualReview SubmissionStatus = "manual_review"
	// SubmissionApproved / SubmissionRejected are set by a human reviewer.
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// TerminalSuccess reports whether the status is a final approval.
func (s SubmissionStatus) TerminalSuccess() bool {
	return s == SubmissionApproved || s == SubmissionAIApproved
}

// TerminalFailure reports whether the status is a rejection. Rejections
// free the quest slot: the actor may submit fresh evidence afterwards.
func (s SubmissionStatus) TerminalFailure() bool {
	return s == SubmissionRejected || s == SubmissionAIRejected
}

// PendingReview reports whether the submission still awaits a verdict.
func (s SubmissionStatus) PendingReview() bool {
	return s == SubmissionPendingAI || s == SubmissionManualReview
}

// Blocking reports whether a submission in this status counts toward the
// one-active-submission-per-quest invariant.
func (s SubmissionStatus) Blocking() bool {
	return !s.TerminalFailure()
}

// classifier-driven transitions; human review may additionally override
// any non-terminal-success state to approved/rejected
var allowedTransitions = map[SubmissionStatus][]SubmissionStatus{
	SubmissionPendingAI:    {SubmissionAIApproved, SubmissionAIRejected, SubmissionManualReview},
	SubmissionManualReview: {SubmissionApproved, SubmissionRejected},
}

// CanTransitionTo reports whether the classifier path allows moving from
// s to next. Reviewer overrides are validated separately.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type Submission struct {
	bun.BaseModel `bun:"table:submissions,alias:s"`

	ID                int64            `bun:"id,pk,autoincrement"`
	UserID            int64            `bun:"user_id,notnull"`
	QuestID           int64            `bun:"quest_id,notnull"`
	Status            SubmissionStatus `bun:"status,notnull"`
	IsGroup           bool             `bun:"is_group,notnull,default:false"`
	GroupSubmissionID *int64           `bun:"group_submission_id"`
	EvidenceURL       string           `bun:"evidence_url"`
	PointsAwarded     int64            `bun:"points_awarded,notnull,default:0"`
	ReviewerFeedback  string           `bun:"reviewer_feedback"`
	SubmittedAt       time.Time        `bun:"submitted_at,notnull"`
	ReviewedAt        *time.Time       `bun:"reviewed_at"`
	IsDeleted         bool             `bun:"is_deleted,notnull,default:false"`

	User  *User  `bun:"rel:belongs-to,join:user_id=id"`
	Quest *Quest `bun:"rel:belongs-to,join:quest_id=id"`
}

// Active reports whether the submission blocks further submissions for
// its (user, quest) slot. Logically deleted rows never count.
func (s *Submission) Active() bool {
	return !s.IsDeleted && s.Status.Blocking()
}
