package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/questline/questline"
)

var Review = discord.SlashCommandCreate{
	Name:        "review",
	Description: "⚖️ Approve or reject a submission (reviewers only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "submission",
			Description: "Submission number",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "decision",
			Description: "The verdict",
			Required:    true,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Approve", Value: "approve"},
				{Name: "Reject", Value: "reject"},
			},
		},
		discord.ApplicationCommandOptionString{
			Name:        "feedback",
			Description: "Feedback sent to the submitter",
		},
	},
}

func ReviewHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !isReviewer(e, b) {
			return createEphemeral(e, "Only reviewers can use this command.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data := e.SlashCommandInteractionData()
		submissionID := int64(data.Int("submission"))
		approve := data.String("decision") == "approve"
		feedback, _ := data.OptString("feedback")

		if err := e.DeferCreateMessage(false); err != nil {
			return fmt.Errorf("failed to defer message: %w", err)
		}

		if err := b.Lifecycle.Review(ctx, submissionID, approve, feedback); err != nil {
			return updateError(e, err)
		}

		verdict := "rejected"
		if approve {
			verdict = "approved"
		}
		return updateSuccess(e, "⚖️ Review Recorded",
			fmt.Sprintf("Submission **#%d** has been %s. All participants will be notified.", submissionID, verdict))
	}
}

func isReviewer(e *handler.CommandEvent, b *questline.Bot) bool {
	if b.Cfg.Bot.ReviewerRoleID == 0 {
		return false
	}
	member := e.Member()
	if member == nil {
		return false
	}
	for _, roleID := range member.RoleIDs {
		if roleID == b.Cfg.Bot.ReviewerRoleID {
			return true
		}
	}
	return false
}
