package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
)

// Identity is the resolved view of a chat account: the internal user
// plus partner and group membership. Linked=false is an expected,
// user-facing state for accounts that never registered, not an error.
type Identity struct {
	Linked    bool
	User      *models.User
	PartnerID int64  // 0 when the user has no partner
	GroupCode string // "" when the user is not in an active group
}

// IdentityResolver maps external chat identities to internal users.
// Read-only; it never creates accounts.
type IdentityResolver struct {
	users  repositories.UserRepository
	groups repositories.PartnerGroupRepository
}

func NewIdentityResolver(users repositories.UserRepository, groups repositories.PartnerGroupRepository) *IdentityResolver {
	return &IdentityResolver{users: users, groups: groups}
}

func (r *IdentityResolver) Resolve(ctx context.Context, discordID string) (*Identity, error) {
	user, err := r.users.GetByDiscordID(ctx, discordID)
	if err != nil {
		if repositories.IsNotFound(err) {
			slog.Debug("Chat identity not linked",
				slog.String("discord_id", discordID))
			return &Identity{}, nil
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	identity := &Identity{Linked: true, User: user}
	if user.HasPartner() {
		identity.PartnerID = *user.PartnerID
	}

	group, err := r.groups.GetActiveByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up group membership: %w", err)
	}
	if group != nil {
		identity.GroupCode = group.GroupCode
	}

	return identity, nil
}
