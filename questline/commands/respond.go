package commands

import (
	"errors"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
)

const (
	successColor = 0x57F287
	errorColor   = 0xED4245
	warningColor = 0xFEE75C
	infoColor    = 0x5865F2
)

// friendlyError maps a domain error to an actor-facing title, message
// and color. Internal failures are logged but never echoed verbatim.
func friendlyError(err error) (string, string, int) {
	var vErr *repositories.ValidationError
	var cErr *repositories.ConflictError
	var nfErr *repositories.NotFoundError

	switch {
	case errors.As(err, &cErr):
		return "⏰ Already Submitted", cErr.Error(), warningColor
	case errors.As(err, &vErr):
		return "⚠️ Invalid Submission", vErr.Error(), warningColor
	case errors.As(err, &nfErr):
		return "🔍 Not Found", nfErr.Error(), infoColor
	default:
		slog.Error("Command failed with internal error", slog.Any("error", err))
		return "🔧 Something Went Wrong", "An internal error occurred. Please try again later.", errorColor
	}
}

func updateError(e *handler.CommandEvent, err error) error {
	title, desc, color := friendlyError(err)
	_, uerr := e.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{
			discord.NewEmbedBuilder().
				SetTitle(title).
				SetDescription(desc).
				SetColor(color).
				Build(),
		},
	})
	return uerr
}

func updateSuccess(e *handler.CommandEvent, title, desc string) error {
	_, err := e.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{
			discord.NewEmbedBuilder().
				SetTitle(title).
				SetDescription(desc).
				SetColor(successColor).
				Build(),
		},
	})
	return err
}

func createEphemeral(e *handler.CommandEvent, desc string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{
			discord.NewEmbedBuilder().
				SetDescription(desc).
				SetColor(warningColor).
				Build(),
		},
		Flags: discord.MessageFlagEphemeral,
	})
}
