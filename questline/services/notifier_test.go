package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/ellavondegurechaff/questline/questline/database/repositories/mock"
	"go.uber.org/mock/gomock"
)

type fakeMessenger struct {
	mu       sync.Mutex
	sent     []string
	failures int
}

func (f *fakeMessenger) SendDM(_ context.Context, userID snowflake.ID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("dm channel closed")
	}
	f.sent = append(f.sent, userID.String()+": "+content)
	return nil
}

func newNotifier(t *testing.T) (*Notifier, *mock.MockUserRepository, *mock.MockSubmissionRepository, *fakeMessenger) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	submissions := mock.NewMockSubmissionRepository(ctrl)
	messenger := &fakeMessenger{}
	return NewNotifier(users, submissions, messenger), users, submissions, messenger
}

func TestNotifier_ResolveRecipients_Solo(t *testing.T) {
	t.Run("submitter only", func(t *testing.T) {
		n, users, _, _ := newNotifier(t)
		users.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(&models.User{ID: 1, DiscordID: "100", Username: "ann"}, nil)

		got, err := n.resolveRecipients(context.Background(), &models.Submission{ID: 3, UserID: 1})
		if err != nil {
			t.Fatalf("resolveRecipients() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("recipients = %d, want 1", len(got))
		}
		if got[0].prefix != "Your submission" {
			t.Errorf("prefix = %q, want %q", got[0].prefix, "Your submission")
		}
	})

	t.Run("partner is included with a personalized prefix", func(t *testing.T) {
		n, users, _, _ := newNotifier(t)
		partnerID := int64(2)
		users.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(&models.User{ID: 1, DiscordID: "100", Username: "ann", PartnerID: &partnerID}, nil)
		users.EXPECT().
			GetByID(gomock.Any(), int64(2)).
			Return(&models.User{ID: 2, DiscordID: "200", Username: "ben"}, nil)

		got, err := n.resolveRecipients(context.Background(), &models.Submission{ID: 3, UserID: 1})
		if err != nil {
			t.Fatalf("resolveRecipients() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("recipients = %d, want 2", len(got))
		}
		if got[1].prefix != "ann's submission" {
			t.Errorf("partner prefix = %q, want %q", got[1].prefix, "ann's submission")
		}
	})

	t.Run("unlinked partner is skipped", func(t *testing.T) {
		n, users, _, _ := newNotifier(t)
		partnerID := int64(2)
		users.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(&models.User{ID: 1, DiscordID: "100", Username: "ann", PartnerID: &partnerID}, nil)
		users.EXPECT().
			GetByID(gomock.Any(), int64(2)).
			Return(&models.User{ID: 2, Username: "legacy-ben"}, nil)

		got, err := n.resolveRecipients(context.Background(), &models.Submission{ID: 3, UserID: 1})
		if err != nil {
			t.Fatalf("resolveRecipients() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("recipients = %d, want 1", len(got))
		}
	})
}

func TestNotifier_ResolveRecipients_Group(t *testing.T) {
	n, users, submissions, _ := newNotifier(t)

	groupSubID := int64(5)
	sub := &models.Submission{ID: 3, UserID: 1, IsGroup: true, GroupSubmissionID: &groupSubID}

	users.EXPECT().
		GetByID(gomock.Any(), int64(1)).
		Return(&models.User{ID: 1, DiscordID: "100", Username: "ann"}, nil)
	submissions.EXPECT().
		ParticipantsByGroupSubmission(gomock.Any(), groupSubID).
		Return([]*models.GroupParticipant{
			// The submitter appears in their own group too; must dedupe.
			{UserID: 1, User: &models.User{ID: 1, DiscordID: "100", Username: "ann"}},
			{UserID: 2, User: &models.User{ID: 2, DiscordID: "200", Username: "ben"}},
			{UserID: 3, OptedOut: true, User: &models.User{ID: 3, DiscordID: "300", Username: "cara"}},
			{UserID: 4, User: &models.User{ID: 4, Username: "unlinked-dan"}},
		}, nil)

	got, err := n.resolveRecipients(context.Background(), sub)
	if err != nil {
		t.Fatalf("resolveRecipients() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recipients = %d, want 2 (submitter + ben)", len(got))
	}
	if got[0].prefix != "Your submission" {
		t.Errorf("submitter prefix = %q, want %q", got[0].prefix, "Your submission")
	}
	if got[1].username != "ben" {
		t.Errorf("second recipient = %q, want %q", got[1].username, "ben")
	}
	if got[1].prefix != "The group submission by ann" {
		t.Errorf("participant prefix = %q, want %q", got[1].prefix, "The group submission by ann")
	}
}

func TestNotifier_Deliver(t *testing.T) {
	t.Run("retries until success", func(t *testing.T) {
		n, _, _, messenger := newNotifier(t)
		messenger.failures = 2

		err := n.deliver(context.Background(), recipient{discordID: "100", username: "ann", prefix: "Your submission"}, "was approved.")
		if err != nil {
			t.Fatalf("deliver() error = %v", err)
		}
		if len(messenger.sent) != 1 {
			t.Fatalf("sent = %d, want 1", len(messenger.sent))
		}
		if !strings.Contains(messenger.sent[0], "Your submission was approved.") {
			t.Errorf("unexpected message: %s", messenger.sent[0])
		}
	})

	t.Run("gives up after exhausting attempts", func(t *testing.T) {
		n, _, _, messenger := newNotifier(t)
		messenger.failures = deliveryAttempts

		err := n.deliver(context.Background(), recipient{discordID: "100", username: "ann"}, "body")
		var de *DeliveryError
		if !errors.As(err, &de) {
			t.Fatalf("deliver() error = %v, want DeliveryError", err)
		}
	})

	t.Run("bad discord id fails fast", func(t *testing.T) {
		n, _, _, messenger := newNotifier(t)

		err := n.deliver(context.Background(), recipient{discordID: "not-a-snowflake", username: "ann"}, "body")
		var de *DeliveryError
		if !errors.As(err, &de) {
			t.Fatalf("deliver() error = %v, want DeliveryError", err)
		}
		if len(messenger.sent) != 0 {
			t.Errorf("sent = %d, want 0", len(messenger.sent))
		}
	})
}

func TestStatusMessage(t *testing.T) {
	sub := &models.Submission{ID: 3, QuestID: 7, PointsAwarded: 50}

	tests := []struct {
		status models.SubmissionStatus
		want   string
	}{
		{models.SubmissionPendingAI, "being reviewed"},
		{models.SubmissionAIApproved, "50 points"},
		{models.SubmissionApproved, "50 points"},
		{models.SubmissionAIRejected, "submit again"},
		{models.SubmissionRejected, "submit again"},
		{models.SubmissionManualReview, "human reviewer"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := statusMessage(sub, tt.status, "")
			if !strings.Contains(got, tt.want) {
				t.Errorf("statusMessage(%s) = %q, want it to contain %q", tt.status, got, tt.want)
			}
		})
	}

	t.Run("rejection includes feedback", func(t *testing.T) {
		got := statusMessage(sub, models.SubmissionRejected, "blurry screenshot")
		if !strings.Contains(got, "blurry screenshot") {
			t.Errorf("statusMessage() = %q, want feedback included", got)
		}
	})
}
