package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/questline/questline"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
)

var OptOut = discord.SlashCommandCreate{
	Name:        "optout",
	Description: "🚪 Opt out of a group submission you were included in",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "submission",
			Description: "Submission number of the group submission",
			Required:    true,
		},
	},
}

func OptOutHandler(b *questline.Bot) handler.CommandHandler {
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

		submissionID := int64(e.SlashCommandInteractionData().Int("submission"))

		if err := e.DeferCreateMessage(true); err != nil {
			return fmt.Errorf("failed to defer message: %w", err)
		}

		sub, err := b.SubmissionRepository.GetByID(ctx, submissionID)
		if err != nil {
			return updateError(e, err)
		}
		if !sub.IsGroup || sub.GroupSubmissionID == nil {
			return updateError(e, &repositories.ValidationError{
				Field:   "submission",
				Message: fmt.Sprintf("submission #%d is not a group submission", submissionID),
			})
		}

		if err := b.SubmissionRepository.OptOut(ctx, *sub.GroupSubmissionID, identity.User.ID); err != nil {
			return updateError(e, err)
		}

		return updateSuccess(e, "🚪 Opted Out",
			fmt.Sprintf("You are no longer part of submission **#%d**. You will not receive its points or notifications.", submissionID))
	}
}
