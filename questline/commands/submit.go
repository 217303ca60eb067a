package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/questline/questline"
	"github.com/ellavondegurechaff/questline/questline/services"
)

var Submit = discord.SlashCommandCreate{
	Name:        "submit",
	Description: "📨 Submit your solution for a quest",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "quest",
			Description: "Quest number, like 12 or #12",
			Required:    true,
		},
		discord.ApplicationCommandOptionAttachment{
			Name:        "evidence",
			Description: "Screenshot or file showing the completed quest",
		},
		discord.ApplicationCommandOptionString{
			Name:        "group",
			Description: "Group codes (GRP001,GRP002) or name pairs (Ann&Ben,Cara&Dan) for multi-group quests",
		},
	},
}

func SubmitHandler(b *questline.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data := e.SlashCommandInteractionData()

		identity, err := b.Resolver.Resolve(ctx, e.User().ID.String())
		if err != nil {
			return err
		}
		if !identity.Linked {
			return createEphemeral(e, "Your Discord account is not linked to a player profile. Ask a moderator to register you first.")
		}

		questID, err := ParseQuestRef(data.String("quest"))
		if err != nil {
			title, desc, color := friendlyError(err)
			return e.CreateMessage(discord.MessageCreate{
				Embeds: []discord.Embed{
					discord.NewEmbedBuilder().SetTitle(title).SetDescription(desc).SetColor(color).Build(),
				},
				Flags: discord.MessageFlagEphemeral,
			})
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return fmt.Errorf("failed to defer message: %w", err)
		}

		evidenceURL := ""
		if attachment, ok := data.OptAttachment("evidence"); ok {
			key := fmt.Sprintf("%s/%d/%s", e.User().ID, questID, attachment.Filename)
			stored, err := b.EvidenceStore.StoreFromURL(ctx, attachment.URL, key)
			if err != nil {
				// The attachment URL still works short-term; better a
				// reviewable submission than a failed one.
				slog.Warn("Evidence re-upload failed, keeping attachment URL",
					slog.Int64("quest_id", questID),
					slog.Any("error", err))
				stored = attachment.URL
			}
			evidenceURL = stored
		}

		var receipt *services.SubmissionReceipt
		if groupRaw, ok := data.OptString("group"); ok {
			input, perr := services.ParseGroupOption(groupRaw)
			if perr != nil {
				return updateError(e, perr)
			}
			receipt, err = b.Coordinator.SubmitGroup(ctx, identity, questID, input, evidenceURL)
		} else {
			receipt, err = b.Coordinator.SubmitSolo(ctx, identity, questID, evidenceURL)
		}
		if err != nil {
			return updateError(e, err)
		}

		desc := fmt.Sprintf("Submission **#%d** for quest **#%d** was received and is being reviewed.\nYou will get a DM once it is decided.",
			receipt.SubmissionID, questID)
		if receipt.GroupSubmissionID != 0 {
			desc += fmt.Sprintf("\n\n**Participants (%d):** %s",
				receipt.ParticipantCount, strings.Join(receipt.Participants, ", "))
		}
		return updateSuccess(e, "📨 Submission Received", desc)
	}
}
