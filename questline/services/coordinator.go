package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
	"github.com/sahilm/fuzzy"
)

// GroupInput is the unified form of the two group-submission input
// formats. Exactly one of Codes or Pairs is populated; downstream code
// never branches on which format the actor typed.
type GroupInput struct {
	Codes []string
	Pairs [][2]string
}

// SubmissionReceipt is what the actor gets back after a successful
// creation.
type SubmissionReceipt struct {
	SubmissionID      int64
	GroupSubmissionID int64 // 0 for solo submissions
	ParticipantCount  int
	Participants      []string
}

// Coordinator owns the write path for submissions: admission check,
// input normalization, and the atomic create. The admission guard's
// answer is advisory; the repository re-validates group conflicts
// inside the creating transaction.
type Coordinator struct {
	guard       *AdmissionGuard
	users       repositories.UserRepository
	groups      repositories.PartnerGroupRepository
	submissions repositories.SubmissionRepository
	lifecycle   *LifecycleService
}

func NewCoordinator(
	guard *AdmissionGuard,
	users repositories.UserRepository,
	groups repositories.PartnerGroupRepository,
	submissions repositories.SubmissionRepository,
	lifecycle *LifecycleService,
) *Coordinator {
	return &Coordinator{
		guard:       guard,
		users:       users,
		groups:      groups,
		submissions: submissions,
		lifecycle:   lifecycle,
	}
}

// ParseGroupOption parses the group: clause of a submit command. The
// new format is a comma-separated list of group codes (GRP001,GRP002);
// the legacy format is name pairs (Ann&Ben,Cara&Dan). Mixing the two is
// rejected.
func ParseGroupOption(raw string) (*GroupInput, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &repositories.ValidationError{Field: "group", Message: "group list is empty"}
	}

	input := &GroupInput{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "&") {
			names := strings.SplitN(part, "&", 2)
			one, two := strings.TrimSpace(names[0]), strings.TrimSpace(names[1])
			if one == "" || two == "" {
				return nil, &repositories.ValidationError{
					Field:   "group",
					Message: fmt.Sprintf("%q is not a valid name pair, expected Name1&Name2", part),
				}
			}
			input.Pairs = append(input.Pairs, [2]string{one, two})
			continue
		}

		code := strings.ToUpper(part)
		if !models.GroupCodePattern.MatchString(code) {
			return nil, &repositories.ValidationError{
				Field:   "group",
				Message: fmt.Sprintf("%q is not a valid group code, expected three letters and three digits like GRP001", part),
			}
		}
		input.Codes = append(input.Codes, code)
	}

	if len(input.Codes) > 0 && len(input.Pairs) > 0 {
		return nil, &repositories.ValidationError{
			Field:   "group",
			Message: "mixing group codes and name pairs is not supported",
		}
	}
	if len(input.Codes) == 0 && len(input.Pairs) == 0 {
		return nil, &repositories.ValidationError{Field: "group", Message: "group list is empty"}
	}

	return input, nil
}

// SubmitSolo creates an individual (or pair-quest) submission for the
// actor. The per-(actor, quest) active-submission constraint is
// enforced by the insert itself, at the same atomic boundary.
func (c *Coordinator) SubmitSolo(ctx context.Context, actor *Identity, questID int64, evidenceURL string) (*SubmissionReceipt, error) {
	quest, err := c.guard.Check(ctx, AdmissionRequest{
		Actor:   actor,
		QuestID: questID,
	})
	if err != nil {
		return nil, err
	}

	sub := &models.Submission{
		UserID:      actor.User.ID,
		QuestID:     quest.ID,
		EvidenceURL: evidenceURL,
	}
	if err := c.submissions.CreateIndividual(ctx, sub); err != nil {
		return nil, err
	}

	c.lifecycle.StartReview(sub)

	return &SubmissionReceipt{
		SubmissionID:     sub.ID,
		ParticipantCount: 1,
		Participants:     []string{actor.User.Username},
	}, nil
}

// SubmitGroup creates a multi-group submission: one Submission, one
// GroupSubmission and a GroupParticipant row per member of every
// involved group, atomically.
func (c *Coordinator) SubmitGroup(ctx context.Context, actor *Identity, questID int64, input *GroupInput, evidenceURL string) (*SubmissionReceipt, error) {
	codes, err := c.normalizeInput(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	quest, err := c.guard.Check(ctx, AdmissionRequest{
		Actor:      actor,
		QuestID:    questID,
		GroupMode:  true,
		GroupCodes: codes,
	})
	if err != nil {
		return nil, err
	}

	// Own group first, explicit codes after, deduplicated.
	all := append([]string{actor.GroupCode}, codes...)
	seen := make(map[string]bool, len(all))
	ordered := all[:0]
	for _, code := range all {
		if !seen[code] {
			seen[code] = true
			ordered = append(ordered, code)
		}
	}

	groups, missing, err := c.groups.GetActiveByCodes(ctx, ordered)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve groups: %w", err)
	}
	if len(missing) > 0 {
		return nil, &repositories.ValidationError{
			Message:      "group submission rejected",
			InvalidCodes: missing,
		}
	}

	params := repositories.GroupCreateParams{
		QuestID:     quest.ID,
		SubmitterID: actor.User.ID,
		EvidenceURL: evidenceURL,
	}
	var memberIDs []int64
	for _, g := range groups {
		params.Groups = append(params.Groups, repositories.ParticipantGroup{
			Code:        g.GroupCode,
			MemberOneID: g.MemberOneID,
			MemberTwoID: g.MemberTwoID,
		})
		memberIDs = append(memberIDs, g.MemberOneID, g.MemberTwoID)
	}

	result, err := c.submissions.CreateGroup(ctx, params)
	if err != nil {
		return nil, err
	}

	sub := &models.Submission{
		ID:                result.SubmissionID,
		UserID:            actor.User.ID,
		QuestID:           quest.ID,
		Status:            models.SubmissionPendingAI,
		IsGroup:           true,
		GroupSubmissionID: &result.GroupSubmissionID,
		EvidenceURL:       evidenceURL,
	}
	c.lifecycle.StartReview(sub)

	names, err := c.participantNames(ctx, memberIDs)
	if err != nil {
		// The submission exists; a failed name lookup only degrades the
		// receipt.
		names = nil
	}

	return &SubmissionReceipt{
		SubmissionID:      result.SubmissionID,
		GroupSubmissionID: result.GroupSubmissionID,
		ParticipantCount:  result.ParticipantCount,
		Participants:      names,
	}, nil
}

// normalizeInput reduces either input format to the list of explicit
// group codes. Legacy name pairs are resolved to users by fuzzy match,
// then to each pair's active group.
func (c *Coordinator) normalizeInput(ctx context.Context, actor *Identity, input *GroupInput) ([]string, error) {
	if input == nil {
		return nil, &repositories.ValidationError{Field: "group", Message: "group list is empty"}
	}
	if len(input.Codes) > 0 {
		return input.Codes, nil
	}

	linked, err := c.users.ListLinked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users for name resolution: %w", err)
	}

	var codes []string
	for _, pair := range input.Pairs {
		one, err := resolveName(linked, pair[0])
		if err != nil {
			return nil, err
		}
		two, err := resolveName(linked, pair[1])
		if err != nil {
			return nil, err
		}

		group, err := c.groups.GetActiveByUserID(ctx, one.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up group for %s: %w", one.Username, err)
		}
		if group == nil || !group.HasMember(two.ID) {
			return nil, &repositories.ValidationError{
				Field:   "group",
				Message: fmt.Sprintf("%s and %s are not in an active group together", pair[0], pair[1]),
			}
		}
		codes = append(codes, group.GroupCode)
	}

	sort.Strings(codes)
	return codes, nil
}

// userSource adapts a user list for fuzzy matching on usernames.
type userSource []*models.User

func (s userSource) String(i int) string { return s[i].Username }
func (s userSource) Len() int            { return len(s) }

// resolveName finds the linked user whose username best matches the
// given display name. An exact (case-insensitive) match wins outright;
// otherwise the single best fuzzy match is accepted.
func resolveName(linked []*models.User, name string) (*models.User, error) {
	for _, u := range linked {
		if strings.EqualFold(u.Username, name) {
			return u, nil
		}
	}

	matches := fuzzy.FindFrom(name, userSource(linked))
	if len(matches) == 0 {
		return nil, &repositories.ValidationError{
			Field:   "group",
			Message: fmt.Sprintf("no registered player matches %q", name),
		}
	}
	return linked[matches[0].Index], nil
}

func (c *Coordinator) participantNames(ctx context.Context, ids []int64) ([]string, error) {
	users, err := c.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	sort.Strings(names)
	return names, nil
}
