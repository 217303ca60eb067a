package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
	"github.com/ellavondegurechaff/questline/questline/database/repositories/mock"
	"go.uber.org/mock/gomock"
)

type guardMocks struct {
	quests      *mock.MockQuestRepository
	submissions *mock.MockSubmissionRepository
	groups      *mock.MockPartnerGroupRepository
	users       *mock.MockUserRepository
}

func newGuard(t *testing.T) (*AdmissionGuard, guardMocks) {
	ctrl := gomock.NewController(t)
	m := guardMocks{
		quests:      mock.NewMockQuestRepository(ctrl),
		submissions: mock.NewMockSubmissionRepository(ctrl),
		groups:      mock.NewMockPartnerGroupRepository(ctrl),
		users:       mock.NewMockUserRepository(ctrl),
	}
	return NewAdmissionGuard(m.quests, m.submissions, m.groups, m.users), m
}

func testActor() *Identity {
	return &Identity{
		Linked: true,
		User:   &models.User{ID: 1, Username: "ann", DiscordID: "100"},
	}
}

func activeQuest(id int64, category models.QuestCategory) *models.Quest {
	return &models.Quest{ID: id, Title: "Quest", Category: category, Points: 50, Status: models.QuestStatusActive}
}

func TestAdmissionGuard_InactiveQuest(t *testing.T) {
	guard, m := newGuard(t)

	m.quests.EXPECT().
		GetByID(gomock.Any(), int64(7)).
		Return(&models.Quest{ID: 7, Status: models.QuestStatusInactive}, nil)

	_, err := guard.Check(context.Background(), AdmissionRequest{Actor: testActor(), QuestID: 7})
	if !repositories.IsValidation(err) {
		t.Fatalf("Check() error = %v, want ValidationError", err)
	}
}

func TestAdmissionGuard_ModeMismatch(t *testing.T) {
	tests := []struct {
		name      string
		category  models.QuestCategory
		groupMode bool
	}{
		{name: "group option on individual quest", category: models.QuestCategoryIndividual, groupMode: true},
		{name: "group option on pair quest", category: models.QuestCategoryPair, groupMode: true},
		{name: "missing group option on multi-group quest", category: models.QuestCategoryMultiGroup, groupMode: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard, m := newGuard(t)
			m.quests.EXPECT().
				GetByID(gomock.Any(), int64(7)).
				Return(activeQuest(7, tt.category), nil)

			_, err := guard.Check(context.Background(), AdmissionRequest{
				Actor:     testActor(),
				QuestID:   7,
				GroupMode: tt.groupMode,
			})
			if !repositories.IsValidation(err) {
				t.Fatalf("Check() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestAdmissionGuard_ActorHistory(t *testing.T) {
	tests := []struct {
		name     string
		latest   *models.Submission
		wantKind repositories.ConflictKind
		wantErr  bool
	}{
		{name: "no history", latest: nil},
		{name: "pending submission blocks", latest: &models.Submission{ID: 9, Status: models.SubmissionPendingAI}, wantErr: true, wantKind: repositories.ConflictAlreadyPending},
		{name: "manual review blocks", latest: &models.Submission{ID: 9, Status: models.SubmissionManualReview}, wantErr: true, wantKind: repositories.ConflictAlreadyPending},
		{name: "ai approval blocks", latest: &models.Submission{ID: 9, Status: models.SubmissionAIApproved}, wantErr: true, wantKind: repositories.ConflictAlreadyCompleted},
		{name: "approval blocks", latest: &models.Submission{ID: 9, Status: models.SubmissionApproved}, wantErr: true, wantKind: repositories.ConflictAlreadyCompleted},
		{name: "rejection allows resubmission", latest: &models.Submission{ID: 9, Status: models.SubmissionRejected}},
		{name: "deleted row never blocks", latest: &models.Submission{ID: 9, Status: models.SubmissionApproved, IsDeleted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard, m := newGuard(t)
			m.quests.EXPECT().
				GetByID(gomock.Any(), int64(7)).
				Return(activeQuest(7, models.QuestCategoryIndividual), nil)
			m.submissions.EXPECT().
				GetLatestByUserAndQuest(gomock.Any(), int64(1), int64(7)).
				Return(tt.latest, nil)

			quest, err := guard.Check(context.Background(), AdmissionRequest{Actor: testActor(), QuestID: 7})
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Check() error = %v, want nil", err)
				}
				if quest == nil || quest.ID != 7 {
					t.Fatalf("Check() quest = %v, want quest 7", quest)
				}
				return
			}

			ce, ok := repositories.AsConflict(err)
			if !ok {
				t.Fatalf("Check() error = %v, want ConflictError", err)
			}
			if ce.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", ce.Kind, tt.wantKind)
			}
			if ce.SubmissionID != 9 {
				t.Errorf("SubmissionID = %d, want 9", ce.SubmissionID)
			}
		})
	}
}

func TestAdmissionGuard_PartnerConflict(t *testing.T) {
	guard, m := newGuard(t)

	actor := testActor()
	actor.PartnerID = 2

	m.quests.EXPECT().
		GetByID(gomock.Any(), int64(7)).
		Return(activeQuest(7, models.QuestCategoryPair), nil)
	m.submissions.EXPECT().
		GetLatestByUserAndQuest(gomock.Any(), int64(1), int64(7)).
		Return(nil, nil)
	m.users.EXPECT().
		GetByID(gomock.Any(), int64(2)).
		Return(&models.User{ID: 2, Username: "ben"}, nil)
	m.submissions.EXPECT().
		GetLatestByUserAndQuest(gomock.Any(), int64(2), int64(7)).
		Return(&models.Submission{ID: 11, Status: models.SubmissionPendingAI}, nil)

	_, err := guard.Check(context.Background(), AdmissionRequest{Actor: actor, QuestID: 7})
	ce, ok := repositories.AsConflict(err)
	if !ok {
		t.Fatalf("Check() error = %v, want ConflictError", err)
	}
	if !ce.Partner {
		t.Error("Partner = false, want true")
	}
	if ce.ConflictingUser != "ben" {
		t.Errorf("ConflictingUser = %q, want %q", ce.ConflictingUser, "ben")
	}
	if ce.Kind != repositories.ConflictAlreadyPending {
		t.Errorf("Kind = %s, want %s", ce.Kind, repositories.ConflictAlreadyPending)
	}
}

func TestAdmissionGuard_GroupMode(t *testing.T) {
	groupFor := func(code string, one, two int64) *models.PartnerGroup {
		return &models.PartnerGroup{GroupCode: code, MemberOneID: one, MemberTwoID: two, Active: true}
	}

	t.Run("actor not in a group", func(t *testing.T) {
		guard, m := newGuard(t)
		m.quests.EXPECT().
			GetByID(gomock.Any(), int64(7)).
			Return(activeQuest(7, models.QuestCategoryMultiGroup), nil)
		m.submissions.EXPECT().
			GetLatestByUserAndQuest(gomock.Any(), int64(1), int64(7)).
			Return(nil, nil)

		_, err := guard.Check(context.Background(), AdmissionRequest{
			Actor:      testActor(),
			QuestID:    7,
			GroupMode:  true,
			GroupCodes: []string{"BBB002"},
		})
		if !repositories.IsValidation(err) {
			t.Fatalf("Check() error = %v, want ValidationError", err)
		}
	})

	t.Run("unknown code rejected with names", func(t *testing.T) {
		guard, m := newGuard(t)
		actor := testActor()
		actor.GroupCode = "AAA001"

		m.quests.EXPECT().
			GetByID(gomock.Any(), int64(7)).
			Return(activeQuest(7, models.QuestCategoryMultiGroup), nil)
		m.submissions.EXPECT().
			GetLatestByUserAndQuest(gomock.Any(), int64(1), int64(7)).
			Return(nil, nil)
		m.groups.EXPECT().
			GetActiveByCodes(gomock.Any(), []string{"AAA001", "ZZZ999"}).
			Return([]*models.PartnerGroup{groupFor("AAA001", 1, 2)}, []string{"ZZZ999"}, nil)

		_, err := guard.Check(context.Background(), AdmissionRequest{
			Actor:      actor,
			QuestID:    7,
			GroupMode:  true,
			GroupCodes: []string{"ZZZ999"},
		})
		var ve *repositories.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Check() error = %v, want ValidationError", err)
		}
		if len(ve.InvalidCodes) != 1 || ve.InvalidCodes[0] != "ZZZ999" {
			t.Errorf("InvalidCodes = %v, want [ZZZ999]", ve.InvalidCodes)
		}
	})

	t.Run("overlapping group blocks and names codes", func(t *testing.T) {
		guard, m := newGuard(t)
		actor := testActor()
		actor.GroupCode = "AAA001"

		m.quests.EXPECT().
			GetByID(gomock.Any(), int64(7)).
			Return(activeQuest(7, models.QuestCategoryMultiGroup), nil)
		m.submissions.EXPECT().
			GetLatestByUserAndQuest(gomock.Any(), int64(1), int64(7)).
			Return(nil, nil)
		m.groups.EXPECT().
			GetActiveByCodes(gomock.Any(), []string{"AAA001", "BBB002"}).
			Return([]*models.PartnerGroup{groupFor("AAA001", 1, 2), groupFor("BBB002", 3, 4)}, nil, nil)
		m.submissions.EXPECT().
			ActiveGroupConflicts(gomock.Any(), int64(7), []string{"AAA001", "BBB002"}).
			Return([]repositories.GroupConflict{
				{GroupCode: "BBB002", SubmissionID: 15, Status: models.SubmissionPendingAI},
			}, nil)

		_, err := guard.Check(context.Background(), AdmissionRequest{
			Actor:      actor,
			QuestID:    7,
			GroupMode:  true,
			GroupCodes: []string{"BBB002"},
		})
		ce, ok := repositories.AsConflict(err)
		if !ok {
			t.Fatalf("Check() error = %v, want ConflictError", err)
		}
		if len(ce.ConflictingCodes) != 1 || ce.ConflictingCodes[0] != "BBB002" {
			t.Errorf("ConflictingCodes = %v, want [BBB002]", ce.ConflictingCodes)
		}
		if ce.Kind != repositories.ConflictAlreadyPending {
			t.Errorf("Kind = %s, want %s", ce.Kind, repositories.ConflictAlreadyPending)
		}
	})

	t.Run("completed overlap outranks a pending one", func(t *testing.T) {
		guard, m := newGuard(t)
		actor := testActor()
		actor.GroupCode = "AAA001"

		m.quests.EXPECT().
			GetByID(gomock.Any(), int64(7)).
			Return(activeQuest(7, models.QuestCategoryMultiGroup), nil)
		m.submissions.EXPECT().
			GetLatestByUserAndQuest(gomock.Any(), int64(1), int64(7)).
			Return(nil, nil)
		m.groups.EXPECT().
			GetActiveByCodes(gomock.Any(), []string{"AAA001", "BBB002", "CCC003"}).
			Return([]*models.PartnerGroup{
				groupFor("AAA001", 1, 2),
				groupFor("BBB002", 3, 4),
				groupFor("CCC003", 5, 6),
			}, nil, nil)
		m.submissions.EXPECT().
			ActiveGroupConflicts(gomock.Any(), int64(7), []string{"AAA001", "BBB002", "CCC003"}).
			Return([]repositories.GroupConflict{
				{GroupCode: "BBB002", SubmissionID: 15, Status: models.SubmissionPendingAI},
				{GroupCode: "CCC003", SubmissionID: 12, Status: models.SubmissionApproved},
			}, nil)

		_, err := guard.Check(context.Background(), AdmissionRequest{
			Actor:      actor,
			QuestID:    7,
			GroupMode:  true,
			GroupCodes: []string{"BBB002", "CCC003"},
		})
		ce, ok := repositories.AsConflict(err)
		if !ok {
			t.Fatalf("Check() error = %v, want ConflictError", err)
		}
		if ce.Kind != repositories.ConflictAlreadyCompleted {
			t.Errorf("Kind = %s, want %s", ce.Kind, repositories.ConflictAlreadyCompleted)
		}
		if ce.SubmissionID != 12 {
			t.Errorf("SubmissionID = %d, want the completed submission 12", ce.SubmissionID)
		}
		if len(ce.ConflictingCodes) != 2 {
			t.Errorf("ConflictingCodes = %v, want both overlapping codes", ce.ConflictingCodes)
		}
	})

	t.Run("clean overlap check passes", func(t *testing.T) {
		guard, m := newGuard(t)
		actor := testActor()
		actor.GroupCode = "AAA001"

		m.quests.EXPECT().
			GetByID(gomock.Any(), int64(7)).
			Return(activeQuest(7, models.QuestCategoryMultiGroup), nil)
		m.submissions.EXPECT().
			GetLatestByUserAndQuest(gomock.Any(), int64(1), int64(7)).
			Return(nil, nil)
		m.groups.EXPECT().
			GetActiveByCodes(gomock.Any(), []string{"AAA001", "BBB002"}).
			Return([]*models.PartnerGroup{groupFor("AAA001", 1, 2), groupFor("BBB002", 3, 4)}, nil, nil)
		m.submissions.EXPECT().
			ActiveGroupConflicts(gomock.Any(), int64(7), []string{"AAA001", "BBB002"}).
			Return(nil, nil)

		quest, err := guard.Check(context.Background(), AdmissionRequest{
			Actor:      actor,
			QuestID:    7,
			GroupMode:  true,
			GroupCodes: []string{"BBB002"},
		})
		if err != nil {
			t.Fatalf("Check() error = %v, want nil", err)
		}
		if quest.ID != 7 {
			t.Errorf("quest.ID = %d, want 7", quest.ID)
		}
	})
}
