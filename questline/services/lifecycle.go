package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
)

const classifyTimeout = 45 * time.Second

// Dispatcher receives one callback per state transition. Implementations
// must not block; the Notifier fans out on its own goroutines.
type Dispatcher interface {
	Dispatch(sub *models.Submission, status models.SubmissionStatus, feedback string)
}

// LifecycleService owns the submission status state machine: which
// transitions are legal, the side effects of entering a state (point
// award, reviewed_at), and triggering the notification fan-out exactly
// once per transition.
type LifecycleService struct {
	submissions repositories.SubmissionRepository
	quests      repositories.QuestRepository
	users       repositories.UserRepository
	classifier  Classifier
	notifier    Dispatcher
}

func NewLifecycleService(
	submissions repositories.SubmissionRepository,
	quests repositories.QuestRepository,
	users repositories.UserRepository,
	classifier Classifier,
	notifier Dispatcher,
) *LifecycleService {
	return &LifecycleService{
		submissions: submissions,
		quests:      quests,
		users:       users,
		classifier:  classifier,
		notifier:    notifier,
	}
}

// StartReview runs the entry actions of the initial pending_ai state:
// the creation fan-out, then the asynchronous classification. It never
// blocks the actor's response.
func (ls *LifecycleService) StartReview(sub *models.Submission) {
	ls.notifier.Dispatch(sub, models.SubmissionPendingAI, "")
	go ls.classify(sub)
}

func (ls *LifecycleService) classify(sub *models.Submission) {
	ctx, cancel := context.WithTimeout(context.Background(), classifyTimeout)
	defer cancel()

	if sub.EvidenceURL == "" {
		// Nothing for the classifier to look at; hand straight to a human.
		if err := ls.transition(ctx, sub.ID, models.SubmissionManualReview, "", false); err != nil {
			slog.Error("Failed to queue submission for manual review",
				slog.Int64("submission_id", sub.ID),
				slog.Any("error", err))
		}
		return
	}

	verdict, err := ls.classifier.Classify(ctx, sub.EvidenceURL)
	if err != nil {
		slog.Warn("Classifier unavailable, falling back to manual review",
			slog.Int64("submission_id", sub.ID),
			slog.Any("error", err))
		verdict = Verdict{Kind: VerdictUncertain}
	}

	if err := ls.ApplyVerdict(ctx, sub.ID, verdict); err != nil {
		slog.Error("Failed to apply classifier verdict",
			slog.Int64("submission_id", sub.ID),
			slog.String("verdict", string(verdict.Kind)),
			slog.Any("error", err))
	}
}

// ApplyVerdict maps a classifier verdict onto the state machine.
// Duplicate or late callbacks are expected and resolve to no-ops.
func (ls *LifecycleService) ApplyVerdict(ctx context.Context, submissionID int64, verdict Verdict) error {
	var target models.SubmissionStatus
	switch verdict.Kind {
	case VerdictApprove:
		target = models.SubmissionAIApproved
	case VerdictReject:
		target = models.SubmissionAIRejected
	case VerdictUncertain:
		target = models.SubmissionManualReview
	default:
		return fmt.Errorf("unknown verdict %q", verdict.Kind)
	}

	return ls.transition(ctx, submissionID, target, "", false)
}

// Review applies a human decision. Reviewers may override from any
// state; re-approving an already approved submission is a no-op.
func (ls *LifecycleService) Review(ctx context.Context, submissionID int64, approve bool, feedback string) error {
	target := models.SubmissionRejected
	if approve {
		target = models.SubmissionApproved
	}
	return ls.transition(ctx, submissionID, target, feedback, true)
}

// Delete logically deletes a submission owned by requesterID. The row
// stays; if the prior status was a rejection the quest slot was already
// free, otherwise deletion frees it.
func (ls *LifecycleService) Delete(ctx context.Context, submissionID, requesterID int64) error {
	sub, err := ls.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}
	if sub.UserID != requesterID {
		return &repositories.ValidationError{
			Field:   "submission",
			Message: "you can only delete your own submissions",
		}
	}
	if sub.IsDeleted {
		return nil
	}
	return ls.submissions.SoftDelete(ctx, submissionID)
}

func (ls *LifecycleService) transition(ctx context.Context, submissionID int64, target models.SubmissionStatus, feedback string, override bool) error {
	sub, err := ls.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if repositories.IsNotFound(err) {
			// Duplicate classifier callbacks referencing a vanished
			// submission are expected.
			slog.Debug("Transition for unknown submission ignored",
				slog.Int64("submission_id", submissionID),
				slog.String("target", string(target)))
			return nil
		}
		return err
	}

	if sub.Status == target {
		return nil
	}
	if sub.Status.TerminalSuccess() && target.TerminalSuccess() {
		// Re-approval of an approved submission: idempotent success.
		return nil
	}
	if !override && !sub.Status.CanTransitionTo(target) {
		slog.Debug("Out-of-order transition ignored",
			slog.Int64("submission_id", sub.ID),
			slog.String("from", string(sub.Status)),
			slog.String("to", string(target)))
		return nil
	}

	from := sub.Status
	sub.Status = target
	if feedback != "" {
		sub.ReviewerFeedback = feedback
	}

	if target.TerminalSuccess() || target.TerminalFailure() {
		now := time.Now()
		sub.ReviewedAt = &now
	}
	if target.TerminalSuccess() {
		// Points are fixed at approval time, never re-derived later.
		quest, err := ls.quests.GetByID(ctx, sub.QuestID)
		if err != nil {
			return fmt.Errorf("failed to load quest for point award: %w", err)
		}
		sub.PointsAwarded = quest.Points
	}

	// The update is guarded by the status we read: of N racing callbacks
	// only the one that moves the row runs the entry actions below.
	moved, err := ls.submissions.TransitionStatus(ctx, sub, from)
	if err != nil {
		return fmt.Errorf("failed to persist transition: %w", err)
	}
	if !moved {
		slog.Debug("Transition lost to a concurrent writer, ignored",
			slog.Int64("submission_id", sub.ID),
			slog.String("from", string(from)),
			slog.String("to", string(target)))
		return nil
	}

	slog.Info("Submission transitioned",
		slog.Int64("submission_id", sub.ID),
		slog.String("from", string(from)),
		slog.String("to", string(target)))

	if target.TerminalSuccess() {
		if err := ls.awardPoints(ctx, sub); err != nil {
			slog.Error("Failed to credit points",
				slog.Int64("submission_id", sub.ID),
				slog.Any("error", err))
		}
	}

	ls.notifier.Dispatch(sub, target, feedback)
	return nil
}

// awardPoints credits points_awarded to everyone eligible: the
// submitter for solo submissions, every non-opted-out participant for
// group submissions.
func (ls *LifecycleService) awardPoints(ctx context.Context, sub *models.Submission) error {
	if !sub.IsGroup || sub.GroupSubmissionID == nil {
		return ls.users.AddPoints(ctx, sub.UserID, sub.PointsAwarded)
	}

	participants, err := ls.submissions.ParticipantsByGroupSubmission(ctx, *sub.GroupSubmissionID)
	if err != nil {
		return err
	}

	for _, p := range participants {
		if p.OptedOut {
			continue
		}
		if err := ls.users.AddPoints(ctx, p.UserID, sub.PointsAwarded); err != nil {
			return err
		}
	}
	return nil
}
