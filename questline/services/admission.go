package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
)

// AdmissionRequest describes a prospective submission before any write.
type AdmissionRequest struct {
	Actor   *Identity
	QuestID int64
	// GroupMode is set when the command carried a group: clause.
	GroupMode bool
	// GroupCodes are the codes supplied explicitly in the request; the
	// actor's own group is implied and not listed here.
	GroupCodes []string
}

// AdmissionGuard decides allow/deny for a prospective submission and
// produces a precise, actor-facing reason on denial. Its reads are
// advisory: the write paths re-validate inside their own transaction.
type AdmissionGuard struct {
	quests      repositories.QuestRepository
	submissions repositories.SubmissionRepository
	groups      repositories.PartnerGroupRepository
	users       repositories.UserRepository
}

func NewAdmissionGuard(
	quests repositories.QuestRepository,
	submissions repositories.SubmissionRepository,
	groups repositories.PartnerGroupRepository,
	users repositories.UserRepository,
) *AdmissionGuard {
	return &AdmissionGuard{
		quests:      quests,
		submissions: submissions,
		groups:      groups,
		users:       users,
	}
}

// Check runs the admission checks in order and short-circuits on the
// first denial. On success it returns the quest so callers don't load
// it twice.
func (g *AdmissionGuard) Check(ctx context.Context, req AdmissionRequest) (*models.Quest, error) {
	quest, err := g.quests.GetByID(ctx, req.QuestID)
	if err != nil {
		return nil, err
	}
	if !quest.Available(time.Now()) {
		return nil, &repositories.ValidationError{
			Field:   "quest",
			Message: fmt.Sprintf("quest #%d is not accepting submissions", quest.ID),
		}
	}

	if err := checkMode(quest, req.GroupMode); err != nil {
		return nil, err
	}

	// Self-check: only the single most recent non-deleted submission
	// counts; older superseded ones are ignored.
	if err := g.checkActorHistory(ctx, req.Actor.User.ID, quest.ID, false, ""); err != nil {
		return nil, err
	}

	if quest.Category == models.QuestCategoryPair && !req.GroupMode && req.Actor.PartnerID != 0 {
		partner, err := g.users.GetByID(ctx, req.Actor.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load partner: %w", err)
		}
		if err := g.checkActorHistory(ctx, partner.ID, quest.ID, true, partner.Username); err != nil {
			return nil, err
		}
	}

	if req.GroupMode {
		if err := g.checkGroupOverlap(ctx, req, quest.ID); err != nil {
			return nil, err
		}
	}

	slog.Debug("Admission check passed",
		slog.Int64("user_id", req.Actor.User.ID),
		slog.Int64("quest_id", quest.ID),
		slog.Bool("group_mode", req.GroupMode))

	return quest, nil
}

func checkMode(quest *models.Quest, groupMode bool) error {
	if groupMode && quest.Category != models.QuestCategoryMultiGroup {
		return &repositories.ValidationError{
			Field:   "group",
			Message: fmt.Sprintf("quest #%d is a %s quest; submit without the group option", quest.ID, quest.Category),
		}
	}
	if !groupMode && quest.Category == models.QuestCategoryMultiGroup {
		return &repositories.ValidationError{
			Field:   "group",
			Message: fmt.Sprintf("quest #%d is a multi-group quest; add group:<CODE>[,<CODE>...] to your submission", quest.ID),
		}
	}
	return nil
}

func (g *AdmissionGuard) checkActorHistory(ctx context.Context, userID, questID int64, partner bool, partnerName string) error {
	latest, err := g.submissions.GetLatestByUserAndQuest(ctx, userID, questID)
	if err != nil {
		return fmt.Errorf("failed to load submission history: %w", err)
	}
	if latest == nil || !latest.Active() {
		// No history, or only a rejection: resubmission is allowed.
		return nil
	}

	kind := repositories.ConflictAlreadyPending
	if latest.Status.TerminalSuccess() {
		kind = repositories.ConflictAlreadyCompleted
	}
	return &repositories.ConflictError{
		Kind:            kind,
		SubmissionID:    latest.ID,
		Partner:         partner,
		ConflictingUser: partnerName,
	}
}

func (g *AdmissionGuard) checkGroupOverlap(ctx context.Context, req AdmissionRequest, questID int64) error {
	if req.Actor.GroupCode == "" {
		return &repositories.ValidationError{
			Field:   "group",
			Message: "you are not in an active group",
		}
	}

	// Requesting set: the actor's own group plus everything explicitly
	// supplied.
	codes := make([]string, 0, len(req.GroupCodes)+1)
	codes = append(codes, req.Actor.GroupCode)
	for _, code := range req.GroupCodes {
		if code != req.Actor.GroupCode {
			codes = append(codes, code)
		}
	}
	if len(codes) < 2 {
		return &repositories.ValidationError{
			Field:   "group",
			Message: "a group submission needs at least one group besides your own",
		}
	}

	_, missing, err := g.groups.GetActiveByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("failed to resolve group codes: %w", err)
	}
	if len(missing) > 0 {
		return &repositories.ValidationError{
			Message:      "group submission rejected",
			InvalidCodes: missing,
		}
	}

	conflicts, err := g.submissions.ActiveGroupConflicts(ctx, questID, codes)
	if err != nil {
		return fmt.Errorf("failed to check group overlap: %w", err)
	}
	if len(conflicts) > 0 {
		return repositories.GroupConflictError(conflicts)
	}

	return nil
}
