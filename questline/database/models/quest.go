package models

import (
	"time"

	"github.com/uptrace/bun"
)

type QuestCategory string

const (
	QuestCategoryIndividual QuestCategory = "individual"
	QuestCategoryPair       QuestCategory = "pair"
	QuestCategoryMultiGroup QuestCategory = "multi_group"
)

type QuestStatus string

const (
	QuestStatusActive   QuestStatus = "active"
	QuestStatusInactive QuestStatus = "inactive"
)

type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID          int64         `bun:"id,pk,autoincrement"`
	Title       string        `bun:"title,notnull"`
	Description string        `bun:"description"`
	Category    QuestCategory `bun:"category,notnull"`
	Points      int64         `bun:"points,notnull,default:0"`
	Status      QuestStatus   `bun:"status,notnull,default:'active'"`
	ExpiresAt   *time.Time    `bun:"expires_at"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Available reports whether the quest currently accepts submissions.
func (q *Quest) Available(now time.Time) bool {
	if q.Status != QuestStatusActive {
		return false
	}
	if q.ExpiresAt != nil && !q.ExpiresAt.After(now) {
		return false
	}
	return true
}
