package commands

import (
	"strconv"
	"strings"

	"github.com/ellavondegurechaff/questline/questline/database/repositories"
)

// ParseQuestRef parses a quest reference as typed by an actor: a plain
// number or one prefixed with #, like "12" or "#12".
func ParseQuestRef(raw string) (int64, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "#")

	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		return 0, &repositories.ValidationError{
			Field:   "quest",
			Message: "quest must be a number like 12 or #12",
		}
	}
	return id, nil
}
