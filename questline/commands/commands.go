package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	Submit,
	Submissions,
	Review,
	OptOut,
	DeleteSubmission,
	Version,
}
