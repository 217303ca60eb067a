package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// advisory lock class for group-submission creation, arbitrary but fixed
const groupCreateLockClass = 4201

// GroupConflict is one overlapping group found for a quest: the group
// code plus the blocking submission's id and status.
type GroupConflict struct {
	GroupCode    string                  `bun:"group_code"`
	SubmissionID int64                   `bun:"submission_id"`
	Status       models.SubmissionStatus `bun:"status"`
}

// ParticipantGroup is one resolved partner group taking part in a group
// submission. Both input formats (codes and legacy name pairs) are
// normalized into this before any write happens.
type ParticipantGroup struct {
	Code        string
	MemberOneID int64
	MemberTwoID int64
}

type GroupCreateParams struct {
	QuestID     int64
	SubmitterID int64
	EvidenceURL string
	Groups      []ParticipantGroup
}

type GroupCreateResult struct {
	SubmissionID      int64
	GroupSubmissionID int64
	ParticipantCount  int
}

type SubmissionRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	// GetLatestByUserAndQuest returns the most recent non-deleted
	// submission for the pair, or (nil, nil) when there is none.
	GetLatestByUserAndQuest(ctx context.Context, userID, questID int64) (*models.Submission, error)
	// CreateIndividual inserts a solo/pair submission. The partial unique
	// index on (user_id, quest_id) over active rows makes the insert its
	// own atomic admission check under concurrency.
	CreateIndividual(ctx context.Context, sub *models.Submission) error
	// ActiveGroupConflicts reports which of the given group codes are
	// already bound to an active group submission for the quest.
	ActiveGroupConflicts(ctx context.Context, questID int64, codes []string) ([]GroupConflict, error)
	// CreateGroup atomically creates the Submission, the GroupSubmission
	// and every GroupParticipant row, re-validating group activity and
	// overlap inside the same transaction.
	CreateGroup(ctx context.Context, params GroupCreateParams) (*GroupCreateResult, error)
	// TransitionStatus persists a status change guarded by the status
	// the caller observed. It reports false without writing when a
	// concurrent transition moved the row first; entry actions must only
	// run for the writer that actually moved it.
	TransitionStatus(ctx context.Context, sub *models.Submission, from models.SubmissionStatus) (bool, error)
	SoftDelete(ctx context.Context, id int64) error
	ParticipantsByGroupSubmission(ctx context.Context, groupSubmissionID int64) ([]*models.GroupParticipant, error)
	OptOut(ctx context.Context, groupSubmissionID, userID int64) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Submission, error)
}

type submissionRepository struct {
	db *bun.DB
}

func NewSubmissionRepository(db *bun.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	sub := new(models.Submission)
	err := r.db.NewSelect().
		Model(sub).
		Relation("Quest").
		Relation("User").
		Where("s.id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "submission", ID: id}
		}
		return nil, err
	}

	return sub, nil
}

func (r *submissionRepository) GetLatestByUserAndQuest(ctx context.Context, userID, questID int64) (*models.Submission, error) {
	sub := new(models.Submission)
	err := r.db.NewSelect().
		Model(sub).
		Where("s.user_id = ?", userID).
		Where("s.quest_id = ?", questID).
		Where("s.is_deleted = FALSE").
		Order("s.submitted_at DESC").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return sub, nil
}

func (r *submissionRepository) CreateIndividual(ctx context.Context, sub *models.Submission) error {
	if sub.Status == "" {
		sub.Status = models.SubmissionPendingAI
	}
	sub.SubmittedAt = time.Now()

	_, err := r.db.NewInsert().Model(sub).Exec(ctx)
	if err == nil {
		return nil
	}

	if isUniqueViolation(err) {
		return r.classifyConflict(ctx, sub.UserID, sub.QuestID)
	}
	return &TransactionError{Op: "create submission", Err: err}
}

// classifyConflict turns a unique-index violation into the precise
// conflict the actor can act on.
func (r *submissionRepository) classifyConflict(ctx context.Context, userID, questID int64) error {
	existing, err := r.GetLatestByUserAndQuest(ctx, userID, questID)
	if err != nil || existing == nil {
		// The blocking row vanished between insert and re-read; report
		// the generic pending conflict.
		return &ConflictError{Kind: ConflictAlreadyPending}
	}

	kind := ConflictAlreadyPending
	if existing.Status.TerminalSuccess() {
		kind = ConflictAlreadyCompleted
	}
	return &ConflictError{Kind: kind, SubmissionID: existing.ID}
}

func (r *submissionRepository) ActiveGroupConflicts(ctx context.Context, questID int64, codes []string) ([]GroupConflict, error) {
	return activeGroupConflicts(ctx, r.db, questID, codes)
}

// activeGroupConflicts runs against either the pool or an open
// transaction so CreateGroup can re-check inside its own tx.
func activeGroupConflicts(ctx context.Context, db bun.IDB, questID int64, codes []string) ([]GroupConflict, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	var conflicts []GroupConflict
	err := db.NewSelect().
		ColumnExpr("DISTINCT ON (gp.group_code) gp.group_code AS group_code").
		ColumnExpr("s.id AS submission_id").
		ColumnExpr("s.status AS status").
		TableExpr("group_participants AS gp").
		Join("JOIN group_submissions AS gs ON gs.id = gp.group_submission_id").
		Join("JOIN submissions AS s ON s.group_submission_id = gs.id").
		Where("gs.quest_id = ?", questID).
		Where("gp.group_code IN (?)", bun.In(codes)).
		Where("s.is_deleted = FALSE").
		Where("s.status NOT IN (?)", bun.In([]models.SubmissionStatus{models.SubmissionRejected, models.SubmissionAIRejected})).
		OrderExpr("gp.group_code, s.id DESC").
		Scan(ctx, &conflicts)

	return conflicts, err
}

func (r *submissionRepository) CreateGroup(ctx context.Context, params GroupCreateParams) (*GroupCreateResult, error) {
	var result *GroupCreateResult

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// Serialize group creation per quest. Overlap is checked and the
		// rows are inserted under the same lock, so of N concurrent
		// identical requests exactly one can succeed.
		if _, err := tx.NewRaw("SELECT pg_advisory_xact_lock(?, ?)", groupCreateLockClass, params.QuestID).Exec(ctx); err != nil {
			return err
		}

		codes := make([]string, len(params.Groups))
		for i, g := range params.Groups {
			codes[i] = g.Code
		}

		// Re-validate that every group is still active. The admission
		// guard already checked, but only advisorily.
		var activeCount int
		if err := tx.NewRaw(
			"SELECT count(*) FROM partner_groups WHERE group_code IN (?) AND active = TRUE",
			bun.In(codes),
		).Scan(ctx, &activeCount); err != nil {
			return err
		}
		if activeCount != len(codes) {
			return &ValidationError{Message: "group submission rejected", InvalidCodes: codes}
		}

		conflicts, err := activeGroupConflicts(ctx, tx, params.QuestID, codes)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return GroupConflictError(conflicts)
		}

		now := time.Now()

		groupSub := &models.GroupSubmission{
			QuestID:     params.QuestID,
			SubmitterID: params.SubmitterID,
			CreatedAt:   now,
		}
		if _, err := tx.NewInsert().Model(groupSub).Exec(ctx); err != nil {
			return err
		}

		sub := &models.Submission{
			UserID:            params.SubmitterID,
			QuestID:           params.QuestID,
			Status:            models.SubmissionPendingAI,
			IsGroup:           true,
			GroupSubmissionID: &groupSub.ID,
			EvidenceURL:       params.EvidenceURL,
			SubmittedAt:       now,
		}
		if _, err := tx.NewInsert().Model(sub).Exec(ctx); err != nil {
			return err
		}

		participants := make([]*models.GroupParticipant, 0, len(params.Groups)*2)
		for _, g := range params.Groups {
			participants = append(participants,
				&models.GroupParticipant{
					GroupSubmissionID: groupSub.ID,
					UserID:            g.MemberOneID,
					PartnerID:         g.MemberTwoID,
					GroupCode:         g.Code,
				},
				&models.GroupParticipant{
					GroupSubmissionID: groupSub.ID,
					UserID:            g.MemberTwoID,
					PartnerID:         g.MemberOneID,
					GroupCode:         g.Code,
				},
			)
		}
		if _, err := tx.NewInsert().Model(&participants).Exec(ctx); err != nil {
			return err
		}

		result = &GroupCreateResult{
			SubmissionID:      sub.ID,
			GroupSubmissionID: groupSub.ID,
			ParticipantCount:  len(participants),
		}
		return nil
	})

	if err != nil {
		if IsConflict(err) || IsValidation(err) {
			return nil, err
		}
		if isUniqueViolation(err) {
			// The submitter's own active-submission slot was taken by a
			// concurrent solo submission.
			return nil, r.classifyConflict(ctx, params.SubmitterID, params.QuestID)
		}
		return nil, &TransactionError{Op: "create group submission", Err: err}
	}

	slog.Info("Group submission created",
		slog.String("type", "db"),
		slog.Int64("submission_id", result.SubmissionID),
		slog.Int64("group_submission_id", result.GroupSubmissionID),
		slog.Int("participants", result.ParticipantCount))

	return result, nil
}

// GroupConflictError folds overlap rows into one ConflictError naming
// every overlapping code. Completed outranks pending in the message.
func GroupConflictError(conflicts []GroupConflict) *ConflictError {
	ce := &ConflictError{Kind: ConflictAlreadyPending}
	for _, c := range conflicts {
		ce.ConflictingCodes = append(ce.ConflictingCodes, c.GroupCode)
		if c.Status.TerminalSuccess() {
			ce.Kind = ConflictAlreadyCompleted
			ce.SubmissionID = c.SubmissionID
		} else if ce.SubmissionID == 0 {
			ce.SubmissionID = c.SubmissionID
		}
	}
	return ce
}

func (r *submissionRepository) TransitionStatus(ctx context.Context, sub *models.Submission, from models.SubmissionStatus) (bool, error) {
	res, err := r.db.NewUpdate().
		Model(sub).
		Column("status", "points_awarded", "reviewer_feedback", "reviewed_at").
		WherePK().
		Where("status = ?", from).
		Where("is_deleted = FALSE").
		Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (r *submissionRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.NewUpdate().
		Model((*models.Submission)(nil)).
		Set("is_deleted = TRUE").
		Where("id = ?", id).
		Where("is_deleted = FALSE").
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "submission", ID: id}
	}
	return nil
}

func (r *submissionRepository) ParticipantsByGroupSubmission(ctx context.Context, groupSubmissionID int64) ([]*models.GroupParticipant, error) {
	var participants []*models.GroupParticipant
	err := r.db.NewSelect().
		Model(&participants).
		Relation("User").
		Where("gp.group_submission_id = ?", groupSubmissionID).
		Order("gp.group_code ASC", "gp.user_id ASC").
		Scan(ctx)

	return participants, err
}

func (r *submissionRepository) OptOut(ctx context.Context, groupSubmissionID, userID int64) error {
	res, err := r.db.NewUpdate().
		Model((*models.GroupParticipant)(nil)).
		Set("opted_out = TRUE").
		Set("opted_out_at = ?", time.Now()).
		Where("group_submission_id = ?", groupSubmissionID).
		Where("user_id = ?", userID).
		Where("opted_out = FALSE").
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "group participant", ID: userID}
	}
	return nil
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Submission, error) {
	var subs []*models.Submission
	err := r.db.NewSelect().
		Model(&subs).
		Relation("Quest").
		Where("s.user_id = ?", userID).
		Where("s.is_deleted = FALSE").
		Order("s.submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)

	return subs, err
}

// isUniqueViolation matches Postgres error 23505 (unique_violation).
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
