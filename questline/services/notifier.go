package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	dispatchTimeout  = 2 * time.Minute
	deliveryAttempts = 3
	maxConcurrentDMs = 8
)

// DeliveryError wraps a failed notification attempt. It never leaves
// the notifier; delivery failures are logged, not propagated, because a
// dead DM channel must not affect submission state.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver notification to %s: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Messenger sends a direct message to a chat account.
type Messenger interface {
	SendDM(ctx context.Context, userID snowflake.ID, content string) error
}

// DiscordMessenger delivers over Discord DM channels. The client is
// injected after gateway connect, so access is guarded.
type DiscordMessenger struct {
	mu     sync.RWMutex
	client bot.Client
}

func NewDiscordMessenger() *DiscordMessenger {
	return &DiscordMessenger{}
}

func (m *DiscordMessenger) SetClient(client bot.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = client
}

func (m *DiscordMessenger) SendDM(ctx context.Context, userID snowflake.ID, content string) error {
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()
	if client == nil {
		return fmt.Errorf("messenger not connected")
	}

	dmChannel, err := client.Rest().CreateDMChannel(userID, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to create DM channel: %w", err)
	}

	_, err = client.Rest().CreateMessage(dmChannel.ID(), discord.NewMessageCreateBuilder().
		SetContent(content).
		Build(), rest.WithCtx(ctx))
	return err
}

// Notifier fans submission status changes out to everyone involved.
// Dispatch is fire-and-forget: delivery happens on background
// goroutines, bounded and retried, and failures are contained per
// recipient.
type Notifier struct {
	users       repositories.UserRepository
	submissions repositories.SubmissionRepository
	messenger   Messenger
	sem         *semaphore.Weighted
}

func NewNotifier(users repositories.UserRepository, submissions repositories.SubmissionRepository, messenger Messenger) *Notifier {
	return &Notifier{
		users:       users,
		submissions: submissions,
		messenger:   messenger,
		sem:         semaphore.NewWeighted(maxConcurrentDMs),
	}
}

// recipient is one resolved delivery target with its personalized
// message prefix.
type recipient struct {
	discordID string
	username  string
	prefix    string
}

// Dispatch announces a status change for sub. Called exactly once per
// transition by the state machine; never blocks the caller.
func (n *Notifier) Dispatch(sub *models.Submission, status models.SubmissionStatus, feedback string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		recipients, err := n.resolveRecipients(ctx, sub)
		if err != nil {
			slog.Error("Failed to resolve notification recipients",
				slog.Int64("submission_id", sub.ID),
				slog.Any("error", err))
			return
		}
		if len(recipients) == 0 {
			return
		}

		body := statusMessage(sub, status, feedback)

		g, ctx := errgroup.WithContext(ctx)
		for _, rcpt := range recipients {
			rcpt := rcpt
			g.Go(func() error {
				if err := n.sem.Acquire(ctx, 1); err != nil {
					return nil
				}
				defer n.sem.Release(1)

				if err := n.deliver(ctx, rcpt, body); err != nil {
					slog.Warn("Notification delivery failed",
						slog.Int64("submission_id", sub.ID),
						slog.String("recipient", rcpt.username),
						slog.Any("error", err))
				}
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// resolveRecipients collects the submitter, their partner and, for
// group submissions, every non-opted-out participant. Unlinked accounts
// are skipped; duplicates are collapsed.
func (n *Notifier) resolveRecipients(ctx context.Context, sub *models.Submission) ([]recipient, error) {
	var recipients []recipient
	seen := make(map[string]bool)

	add := func(u *models.User, prefix string) {
		if u == nil || !u.Linked() || seen[u.DiscordID] {
			return
		}
		seen[u.DiscordID] = true
		recipients = append(recipients, recipient{
			discordID: u.DiscordID,
			username:  u.Username,
			prefix:    prefix,
		})
	}

	submitter, err := n.users.GetByID(ctx, sub.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submitter: %w", err)
	}
	add(submitter, "Your submission")

	if sub.IsGroup && sub.GroupSubmissionID != nil {
		// The participant rows are the recipient set of record: opting
		// out silences outcome DMs along with the point award, and the
		// submitter's partner is one of those rows.
		participants, err := n.submissions.ParticipantsByGroupSubmission(ctx, *sub.GroupSubmissionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load participants: %w", err)
		}
		prefix := fmt.Sprintf("The group submission by %s", submitter.Username)
		for _, p := range participants {
			if p.OptedOut {
				continue
			}
			add(p.User, prefix)
		}
		return recipients, nil
	}

	if submitter.HasPartner() {
		partner, err := n.users.GetByID(ctx, *submitter.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load partner: %w", err)
		}
		add(partner, fmt.Sprintf("%s's submission", submitter.Username))
	}

	return recipients, nil
}

func (n *Notifier) deliver(ctx context.Context, rcpt recipient, body string) error {
	id, err := snowflake.Parse(rcpt.discordID)
	if err != nil {
		return &DeliveryError{Recipient: rcpt.username, Err: err}
	}

	content := rcpt.prefix + " " + body

	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= deliveryAttempts; attempt++ {
		lastErr = n.messenger.SendDM(ctx, id, content)
		if lastErr == nil {
			return nil
		}
		if attempt < deliveryAttempts {
			select {
			case <-ctx.Done():
				return &DeliveryError{Recipient: rcpt.username, Err: ctx.Err()}
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	return &DeliveryError{Recipient: rcpt.username, Err: lastErr}
}

func statusMessage(sub *models.Submission, status models.SubmissionStatus, feedback string) string {
	switch status {
	case models.SubmissionPendingAI:
		return fmt.Sprintf("for quest #%d was received and is being reviewed.", sub.QuestID)
	case models.SubmissionAIApproved, models.SubmissionApproved:
		return fmt.Sprintf("for quest #%d was approved! %d points awarded.", sub.QuestID, sub.PointsAwarded)
	case models.SubmissionAIRejected, models.SubmissionRejected:
		msg := fmt.Sprintf("for quest #%d was rejected. You may submit again.", sub.QuestID)
		if feedback != "" {
			msg += " Reviewer feedback: " + feedback
		}
		return msg
	case models.SubmissionManualReview:
		return fmt.Sprintf("for quest #%d is waiting for a human reviewer.", sub.QuestID)
	default:
		return fmt.Sprintf("for quest #%d changed status to %s.", sub.QuestID, status)
	}
}
