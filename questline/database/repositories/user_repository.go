package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	ListLinked(ctx context.Context) ([]*models.User, error)
	AddPoints(ctx context.Context, userID int64, points int64) error
	SetPartner(ctx context.Context, userID, partnerID int64) error
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "user", ID: id}
		}
		return nil, err
	}

	return user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		Where("u.id IN (?)", bun.In(ids)).
		Scan(ctx)

	return users, err
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "user", ID: discordID}
		}
		return nil, err
	}

	return user, nil
}

func (r *userRepository) ListLinked(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		Where("discord_id IS NOT NULL AND discord_id <> ''").
		Order("username ASC").
		Scan(ctx)

	return users, err
}

func (r *userRepository) AddPoints(ctx context.Context, userID int64, points int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("points = points + ?", points).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

func (r *userRepository) SetPartner(ctx context.Context, userID, partnerID int64) error {
	// Partnership is symmetric: both rows are updated together.
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, pair := range [][2]int64{{userID, partnerID}, {partnerID, userID}} {
			_, err := tx.NewUpdate().
				Model((*models.User)(nil)).
				Set("partner_id = ?", pair[1]).
				Set("updated_at = ?", time.Now()).
				Where("id = ?", pair[0]).
				Exec(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
