package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/uptrace/bun"
)

type PartnerGroupRepository interface {
	Create(ctx context.Context, group *models.PartnerGroup) error
	GetActiveByCode(ctx context.Context, code string) (*models.PartnerGroup, error)
	// GetActiveByCodes resolves all codes to active groups and reports the
	// codes that did not resolve, in input order.
	GetActiveByCodes(ctx context.Context, codes []string) ([]*models.PartnerGroup, []string, error)
	GetActiveByUserID(ctx context.Context, userID int64) (*models.PartnerGroup, error)
	Deactivate(ctx context.Context, code string) error
}

type partnerGroupRepository struct {
	db *bun.DB
}

func NewPartnerGroupRepository(db *bun.DB) PartnerGroupRepository {
	return &partnerGroupRepository{db: db}
}

func (r *partnerGroupRepository) Create(ctx context.Context, group *models.PartnerGroup) error {
	group.CreatedAt = time.Now()
	group.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(group).Exec(ctx)
	return err
}

func (r *partnerGroupRepository) GetActiveByCode(ctx context.Context, code string) (*models.PartnerGroup, error) {
	group := new(models.PartnerGroup)
	err := r.db.NewSelect().
		Model(group).
		Where("group_code = ?", code).
		Where("active = TRUE").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "group", ID: code}
		}
		return nil, err
	}

	return group, nil
}

func (r *partnerGroupRepository) GetActiveByCodes(ctx context.Context, codes []string) ([]*models.PartnerGroup, []string, error) {
	if len(codes) == 0 {
		return nil, nil, nil
	}

	var groups []*models.PartnerGroup
	err := r.db.NewSelect().
		Model(&groups).
		Where("group_code IN (?)", bun.In(codes)).
		Where("active = TRUE").
		Scan(ctx)
	if err != nil {
		return nil, nil, err
	}

	found := make(map[string]bool, len(groups))
	for _, g := range groups {
		found[g.GroupCode] = true
	}

	var missing []string
	for _, code := range codes {
		if !found[code] {
			missing = append(missing, code)
		}
	}

	return groups, missing, nil
}

func (r *partnerGroupRepository) GetActiveByUserID(ctx context.Context, userID int64) (*models.PartnerGroup, error) {
	group := new(models.PartnerGroup)
	err := r.db.NewSelect().
		Model(group).
		Where("(member_one_id = ? OR member_two_id = ?)", userID, userID).
		Where("active = TRUE").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return group, nil
}

func (r *partnerGroupRepository) Deactivate(ctx context.Context, code string) error {
	_, err := r.db.NewUpdate().
		Model((*models.PartnerGroup)(nil)).
		Set("active = FALSE").
		Set("updated_at = ?", time.Now()).
		Where("group_code = ?", code).
		Exec(ctx)
	return err
}
