package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"
)

const questCacheSize = 512

type QuestRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Quest, error)
	GetAll(ctx context.Context) ([]*models.Quest, error)
	Create(ctx context.Context, quest *models.Quest) error
	SetStatus(ctx context.Context, id int64, status models.QuestStatus) error
}

type questRepository struct {
	db *bun.DB
	// Quest metadata is admin-CRUD'd rarely and safe to cache. Submission
	// state is never cached here: every admission decision re-reads it.
	cache *lru.Cache
}

func NewQuestRepository(db *bun.DB) QuestRepository {
	cache, _ := lru.New(questCacheSize)
	return &questRepository{db: db, cache: cache}
}

func (r *questRepository) GetByID(ctx context.Context, id int64) (*models.Quest, error) {
	if cached, ok := r.cache.Get(id); ok {
		return cached.(*models.Quest), nil
	}

	quest := new(models.Quest)
	err := r.db.NewSelect().
		Model(quest).
		Where("q.id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "quest", ID: id}
		}
		return nil, err
	}

	r.cache.Add(id, quest)
	return quest, nil
}

func (r *questRepository) GetAll(ctx context.Context) ([]*models.Quest, error) {
	var quests []*models.Quest
	err := r.db.NewSelect().
		Model(&quests).
		Order("id ASC").
		Scan(ctx)

	return quests, err
}

func (r *questRepository) Create(ctx context.Context, quest *models.Quest) error {
	quest.CreatedAt = time.Now()
	quest.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(quest).Exec(ctx)
	return err
}

func (r *questRepository) SetStatus(ctx context.Context, id int64, status models.QuestStatus) error {
	_, err := r.db.NewUpdate().
		Model((*models.Quest)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	r.cache.Remove(id)
	return nil
}
