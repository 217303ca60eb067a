package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/questline/questline"
)

var DeleteSubmission = discord.SlashCommandCreate{
	Name:        "deletesubmission",
	Description: "🗑️ Delete one of your submissions",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "submission",
			Description: "Submission number",
			Required:    true,
		},
	},
}

func DeleteSubmissionHandler(b *questline.Bot) handler.CommandHandler {
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

		if err := b.Lifecycle.Delete(ctx, submissionID, identity.User.ID); err != nil {
			return updateError(e, err)
		}

		return updateSuccess(e, "🗑️ Submission Deleted",
			fmt.Sprintf("Submission **#%d** has been deleted. You can submit the quest again.", submissionID))
	}
}
