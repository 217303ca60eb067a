package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
	"github.com/ellavondegurechaff/questline/questline/database/repositories/mock"
	"go.uber.org/mock/gomock"
)

type dispatchRecord struct {
	submissionID int64
	status       models.SubmissionStatus
	feedback     string
}

// fakeDispatcher records calls synchronously so tests can assert on the
// exactly-once dispatch contract.
type fakeDispatcher struct {
	mu      sync.Mutex
	records []dispatchRecord
}

func (d *fakeDispatcher) Dispatch(sub *models.Submission, status models.SubmissionStatus, feedback string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, dispatchRecord{submissionID: sub.ID, status: status, feedback: feedback})
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}

type lifecycleMocks struct {
	submissions *mock.MockSubmissionRepository
	quests      *mock.MockQuestRepository
	users       *mock.MockUserRepository
	dispatcher  *fakeDispatcher
}

func newLifecycle(t *testing.T) (*LifecycleService, lifecycleMocks) {
	ctrl := gomock.NewController(t)
	m := lifecycleMocks{
		submissions: mock.NewMockSubmissionRepository(ctrl),
		quests:      mock.NewMockQuestRepository(ctrl),
		users:       mock.NewMockUserRepository(ctrl),
		dispatcher:  &fakeDispatcher{},
	}
	ls := NewLifecycleService(m.submissions, m.quests, m.users, nil, m.dispatcher)
	return ls, m
}

func pendingSubmission(id int64) *models.Submission {
	return &models.Submission{ID: id, UserID: 1, QuestID: 7, Status: models.SubmissionPendingAI}
}

func TestLifecycle_ApplyVerdict(t *testing.T) {
	tests := []struct {
		name       string
		verdict    Verdict
		wantStatus models.SubmissionStatus
		wantPoints bool
	}{
		{name: "approve", verdict: Verdict{Kind: VerdictApprove, Confidence: 0.9}, wantStatus: models.SubmissionAIApproved, wantPoints: true},
		{name: "reject", verdict: Verdict{Kind: VerdictReject, Confidence: 0.8}, wantStatus: models.SubmissionAIRejected},
		{name: "uncertain goes to manual review", verdict: Verdict{Kind: VerdictUncertain}, wantStatus: models.SubmissionManualReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls, m := newLifecycle(t)

			m.submissions.EXPECT().
				GetByID(gomock.Any(), int64(3)).
				Return(pendingSubmission(3), nil)

			var persisted *models.Submission
			m.submissions.EXPECT().
				TransitionStatus(gomock.Any(), gomock.Any(), models.SubmissionPendingAI).
				DoAndReturn(func(_ context.Context, sub *models.Submission, _ models.SubmissionStatus) (bool, error) {
					persisted = sub
					return true, nil
				})

			if tt.wantPoints {
				m.quests.EXPECT().
					GetByID(gomock.Any(), int64(7)).
					Return(&models.Quest{ID: 7, Points: 50}, nil)
				m.users.EXPECT().
					AddPoints(gomock.Any(), int64(1), int64(50)).
					Return(nil)
			}

			if err := ls.ApplyVerdict(context.Background(), 3, tt.verdict); err != nil {
				t.Fatalf("ApplyVerdict() error = %v", err)
			}

			if persisted.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", persisted.Status, tt.wantStatus)
			}
			if tt.wantPoints {
				if persisted.PointsAwarded != 50 {
					t.Errorf("PointsAwarded = %d, want 50", persisted.PointsAwarded)
				}
				if persisted.ReviewedAt == nil {
					t.Error("ReviewedAt not set on terminal state")
				}
			}
			if tt.wantStatus == models.SubmissionManualReview && persisted.ReviewedAt != nil {
				t.Error("ReviewedAt set on non-terminal state")
			}

			if m.dispatcher.count() != 1 {
				t.Errorf("dispatch count = %d, want 1", m.dispatcher.count())
			}
		})
	}
}

func TestLifecycle_ApplyVerdict_UnknownKind(t *testing.T) {
	ls, _ := newLifecycle(t)
	if err := ls.ApplyVerdict(context.Background(), 3, Verdict{Kind: "maybe"}); err == nil {
		t.Fatal("ApplyVerdict() with unknown kind should fail")
	}
}

func TestLifecycle_DuplicateCallbacksAreNoOps(t *testing.T) {
	t.Run("same status", func(t *testing.T) {
		ls, m := newLifecycle(t)
		sub := pendingSubmission(3)
		sub.Status = models.SubmissionAIApproved
		m.submissions.EXPECT().GetByID(gomock.Any(), int64(3)).Return(sub, nil)

		if err := ls.ApplyVerdict(context.Background(), 3, Verdict{Kind: VerdictApprove}); err != nil {
			t.Fatalf("ApplyVerdict() error = %v", err)
		}
		if m.dispatcher.count() != 0 {
			t.Errorf("dispatch count = %d, want 0", m.dispatcher.count())
		}
	})

	t.Run("vanished submission", func(t *testing.T) {
		ls, m := newLifecycle(t)
		m.submissions.EXPECT().
			GetByID(gomock.Any(), int64(3)).
			Return(nil, &repositories.NotFoundError{Entity: "submission", ID: 3})

		if err := ls.ApplyVerdict(context.Background(), 3, Verdict{Kind: VerdictApprove}); err != nil {
			t.Fatalf("ApplyVerdict() error = %v", err)
		}
		if m.dispatcher.count() != 0 {
			t.Errorf("dispatch count = %d, want 0", m.dispatcher.count())
		}
	})

	t.Run("out-of-order classifier verdict ignored", func(t *testing.T) {
		ls, m := newLifecycle(t)
		sub := pendingSubmission(3)
		sub.Status = models.SubmissionApproved
		m.submissions.EXPECT().GetByID(gomock.Any(), int64(3)).Return(sub, nil)

		if err := ls.ApplyVerdict(context.Background(), 3, Verdict{Kind: VerdictReject}); err != nil {
			t.Fatalf("ApplyVerdict() error = %v", err)
		}
		if m.dispatcher.count() != 0 {
			t.Errorf("dispatch count = %d, want 0", m.dispatcher.count())
		}
	})
}

func TestLifecycle_RacingVerdictsApplyOnce(t *testing.T) {
	ls, m := newLifecycle(t)

	// Both callers read the pending row before either writes; the guarded
	// update lets exactly one through.
	var readers sync.WaitGroup
	readers.Add(2)
	m.submissions.EXPECT().
		GetByID(gomock.Any(), int64(3)).
		DoAndReturn(func(context.Context, int64) (*models.Submission, error) {
			readers.Done()
			readers.Wait()
			return pendingSubmission(3), nil
		}).
		Times(2)

	m.quests.EXPECT().
		GetByID(gomock.Any(), int64(7)).
		Return(&models.Quest{ID: 7, Points: 50}, nil).
		Times(2)

	var applied int32
	m.submissions.EXPECT().
		TransitionStatus(gomock.Any(), gomock.Any(), models.SubmissionPendingAI).
		DoAndReturn(func(context.Context, *models.Submission, models.SubmissionStatus) (bool, error) {
			return atomic.CompareAndSwapInt32(&applied, 0, 1), nil
		}).
		Times(2)

	// Entry actions run once, for the writer that moved the row.
	m.users.EXPECT().AddPoints(gomock.Any(), int64(1), int64(50)).Return(nil)

	var callers sync.WaitGroup
	for i := 0; i < 2; i++ {
		callers.Add(1)
		go func() {
			defer callers.Done()
			if err := ls.ApplyVerdict(context.Background(), 3, Verdict{Kind: VerdictApprove}); err != nil {
				t.Errorf("ApplyVerdict() error = %v", err)
			}
		}()
	}
	callers.Wait()

	if m.dispatcher.count() != 1 {
		t.Errorf("dispatch count = %d, want 1", m.dispatcher.count())
	}
}

func TestLifecycle_Review(t *testing.T) {
	t.Run("override from manual review with feedback", func(t *testing.T) {
		ls, m := newLifecycle(t)
		sub := pendingSubmission(3)
		sub.Status = models.SubmissionManualReview
		m.submissions.EXPECT().GetByID(gomock.Any(), int64(3)).Return(sub, nil)
		m.quests.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Quest{ID: 7, Points: 50}, nil)

		var persisted *models.Submission
		m.submissions.EXPECT().
			TransitionStatus(gomock.Any(), gomock.Any(), models.SubmissionManualReview).
			DoAndReturn(func(_ context.Context, s *models.Submission, _ models.SubmissionStatus) (bool, error) {
				persisted = s
				return true, nil
			})
		m.users.EXPECT().AddPoints(gomock.Any(), int64(1), int64(50)).Return(nil)

		if err := ls.Review(context.Background(), 3, true, "well done"); err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		if persisted.Status != models.SubmissionApproved {
			t.Errorf("Status = %s, want %s", persisted.Status, models.SubmissionApproved)
		}
		if persisted.ReviewerFeedback != "well done" {
			t.Errorf("ReviewerFeedback = %q, want %q", persisted.ReviewerFeedback, "well done")
		}
	})

	t.Run("reviewer can overturn ai approval", func(t *testing.T) {
		ls, m := newLifecycle(t)
		sub := pendingSubmission(3)
		sub.Status = models.SubmissionAIApproved
		m.submissions.EXPECT().GetByID(gomock.Any(), int64(3)).Return(sub, nil)

		var persisted *models.Submission
		m.submissions.EXPECT().
			TransitionStatus(gomock.Any(), gomock.Any(), models.SubmissionAIApproved).
			DoAndReturn(func(_ context.Context, s *models.Submission, _ models.SubmissionStatus) (bool, error) {
				persisted = s
				return true, nil
			})

		if err := ls.Review(context.Background(), 3, false, "evidence does not match"); err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		if persisted.Status != models.SubmissionRejected {
			t.Errorf("Status = %s, want %s", persisted.Status, models.SubmissionRejected)
		}
	})

	t.Run("re-approving an approved submission is a no-op", func(t *testing.T) {
		ls, m := newLifecycle(t)
		sub := pendingSubmission(3)
		sub.Status = models.SubmissionAIApproved
		m.submissions.EXPECT().GetByID(gomock.Any(), int64(3)).Return(sub, nil)

		if err := ls.Review(context.Background(), 3, true, ""); err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		if m.dispatcher.count() != 0 {
			t.Errorf("dispatch count = %d, want 0", m.dispatcher.count())
		}
	})
}

func TestLifecycle_GroupApprovalSkipsOptedOut(t *testing.T) {
	ls, m := newLifecycle(t)

	groupSubID := int64(5)
	sub := pendingSubmission(3)
	sub.Status = models.SubmissionManualReview
	sub.IsGroup = true
	sub.GroupSubmissionID = &groupSubID

	m.submissions.EXPECT().GetByID(gomock.Any(), int64(3)).Return(sub, nil)
	m.quests.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Quest{ID: 7, Points: 30}, nil)
	m.submissions.EXPECT().TransitionStatus(gomock.Any(), gomock.Any(), models.SubmissionManualReview).Return(true, nil)
	m.submissions.EXPECT().
		ParticipantsByGroupSubmission(gomock.Any(), groupSubID).
		Return([]*models.GroupParticipant{
			{UserID: 1},
			{UserID: 2, OptedOut: true},
			{UserID: 4},
		}, nil)
	m.users.EXPECT().AddPoints(gomock.Any(), int64(1), int64(30)).Return(nil)
	m.users.EXPECT().AddPoints(gomock.Any(), int64(4), int64(30)).Return(nil)

	if err := ls.Review(context.Background(), 3, true, ""); err != nil {
		t.Fatalf("Review() error = %v", err)
	}
}

func TestLifecycle_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		ls, m := newLifecycle(t)
		m.submissions.EXPECT().GetByID(gomock.Any(), int64(3)).Return(pendingSubmission(3), nil)
		m.submissions.EXPECT().SoftDelete(gomock.Any(), int64(3)).Return(nil)

		if err := ls.Delete(context.Background(), 3, 1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		ls, m := newLifecycle(t)
		m.submissions.EXPECT().GetByID(gomock.Any(), int64(3)).Return(pendingSubmission(3), nil)

		err := ls.Delete(context.Background(), 3, 99)
		if !repositories.IsValidation(err) {
			t.Fatalf("Delete() error = %v, want ValidationError", err)
		}
	})

	t.Run("deleting twice is a no-op", func(t *testing.T) {
		ls, m := newLifecycle(t)
		sub := pendingSubmission(3)
		sub.IsDeleted = true
		m.submissions.EXPECT().GetByID(gomock.Any(), int64(3)).Return(sub, nil)

		if err := ls.Delete(context.Background(), 3, 1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
	})
}
