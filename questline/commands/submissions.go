package commands

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/ellavondegurechaff/questline/questline"
	"github.com/ellavondegurechaff/questline/questline/database/models"
)

const submissionsPerPage = 8

var Submissions = discord.SlashCommandCreate{
	Name:        "submissions",
	Description: "📋 Browse your submission history",
}

func SubmissionsHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		identity, err := b.Resolver.Resolve(ctx, e.User().ID.String())
		if err != nil {
			return err
		}
		if !identity.Linked {
			return createEphemeral(e, "Your Discord account is not linked to a player profile.")
		}

		// History views are small; load everything once and page locally.
		subs, err := b.SubmissionRepository.ListByUser(ctx, identity.User.ID, 200, 0)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			return createEphemeral(e, "You have no submissions yet. Use /submit to hand in your first quest.")
		}

		totalPages := int(math.Ceil(float64(len(subs)) / float64(submissionsPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				startIdx := page * submissionsPerPage
				endIdx := min(startIdx+submissionsPerPage, len(subs))

				var description strings.Builder
				for _, sub := range subs[startIdx:endIdx] {
					questName := fmt.Sprintf("Quest #%d", sub.QuestID)
					if sub.Quest != nil {
						questName = sub.Quest.Title
					}

					line := fmt.Sprintf("%s **#%d** · %s · %s",
						statusIcon(sub.Status), sub.ID, questName, sub.Status)
					if sub.IsGroup {
						line += " · group"
					}
					if sub.PointsAwarded > 0 {
						line += fmt.Sprintf(" · %d pts", sub.PointsAwarded)
					}
					description.WriteString(line + "\n")
				}

				embed.SetTitle(fmt.Sprintf("📋 Submissions by %s", identity.User.Username)).
					SetDescription(description.String()).
					SetColor(infoColor).
					SetFooter(fmt.Sprintf("Page %d/%d · %d submissions", page+1, totalPages, len(subs)), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func statusIcon(status models.SubmissionStatus) string {
	switch status {
	case models.SubmissionApproved, models.SubmissionAIApproved:
		return "✅"
	case models.SubmissionRejected, models.SubmissionAIRejected:
		return "❌"
	case models.SubmissionManualReview:
		return "👀"
	default:
		return "⏳"
	}
}
