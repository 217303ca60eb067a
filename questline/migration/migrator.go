package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/questline/questline/database/models"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Migrator imports the legacy Mongo deployment into Postgres: users,
// partnerships and historical submissions. Quests are seeded separately
// and are not part of the import.
type Migrator struct {
	pgDB      *bun.DB
	mongoURI  string
	mongoName string
	batchSize int
	stats     MigrationStats
}

func NewMigrator(pgDB *bun.DB, mongoURI, mongoName string) *Migrator {
	return &Migrator{
		pgDB:      pgDB,
		mongoURI:  mongoURI,
		mongoName: mongoName,
		batchSize: 500,
		stats: MigrationStats{
			Tables:    make(map[string]*TableStats),
			StartTime: time.Now(),
		},
	}
}

func (m *Migrator) MigrateAll(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.mongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}
	defer client.Disconnect(ctx)

	legacy := client.Database(m.mongoName)

	userIDs, err := m.migrateUsers(ctx, legacy)
	if err != nil {
		return fmt.Errorf("user migration failed: %w", err)
	}
	if err := m.migratePartnerships(ctx, legacy, userIDs); err != nil {
		return fmt.Errorf("partnership migration failed: %w", err)
	}
	if err := m.migrateSubmissions(ctx, legacy, userIDs); err != nil {
		return fmt.Errorf("submission migration failed: %w", err)
	}

	for table, stats := range m.stats.Tables {
		slog.Info("Migration table finished",
			slog.String("type", "db"),
			slog.String("table", table),
			slog.Int("read", stats.Read),
			slog.Int("inserted", stats.Inserted),
			slog.Int("skipped", stats.Skipped))
	}
	slog.Info("Migration completed",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(m.stats.StartTime)))
	return nil
}

// migrateUsers imports legacy users and returns discord_id -> new user
// ID for the later passes.
func (m *Migrator) migrateUsers(ctx context.Context, legacy *mongo.Database) (map[string]int64, error) {
	stats := &TableStats{}
	m.stats.Tables["users"] = stats

	cursor, err := legacy.Collection("users").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	userIDs := make(map[string]int64)
	for cursor.Next(ctx) {
		var doc LegacyUser
		if err := cursor.Decode(&doc); err != nil {
			stats.Skipped++
			continue
		}
		stats.Read++

		if doc.Username == "" {
			stats.Skipped++
			continue
		}

		user := &models.User{
			DiscordID: doc.DiscordID,
			Username:  doc.Username,
			Points:    doc.Points,
			UpdatedAt: time.Now(),
		}
		_, err := m.pgDB.NewInsert().
			Model(user).
			On("CONFLICT (discord_id) DO UPDATE").
			Set("username = EXCLUDED.username").
			Set("points = EXCLUDED.points").
			Returning("id").
			Exec(ctx)
		if err != nil {
			stats.Skipped++
			slog.Warn("Skipping user",
				slog.String("username", doc.Username),
				slog.Any("error", err))
			continue
		}

		userIDs[doc.DiscordID] = user.ID
		stats.Inserted++
	}
	return userIDs, cursor.Err()
}

func (m *Migrator) migratePartnerships(ctx context.Context, legacy *mongo.Database, userIDs map[string]int64) error {
	stats := &TableStats{}
	m.stats.Tables["partner_groups"] = stats

	cursor, err := legacy.Collection("partnerships").Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc LegacyPartnership
		if err := cursor.Decode(&doc); err != nil {
			stats.Skipped++
			continue
		}
		stats.Read++

		oneID, okOne := userIDs[doc.MemberOne]
		twoID, okTwo := userIDs[doc.MemberTwo]
		if !okOne || !okTwo || doc.GroupCode == "" {
			stats.Skipped++
			continue
		}

		group := &models.PartnerGroup{
			GroupCode:   doc.GroupCode,
			MemberOneID: oneID,
			MemberTwoID: twoID,
			Active:      doc.Active,
		}
		_, err := m.pgDB.NewInsert().
			Model(group).
			On("CONFLICT (group_code) DO NOTHING").
			Exec(ctx)
		if err != nil {
			stats.Skipped++
			continue
		}

		// Keep the partner pointers in sync with the group rows.
		if doc.Active {
			if _, err := m.pgDB.NewUpdate().
				Model((*models.User)(nil)).
				Set("partner_id = ?", twoID).
				Where("id = ?", oneID).
				Exec(ctx); err != nil {
				slog.Warn("Failed to set partner pointer", slog.Any("error", err))
			}
			if _, err := m.pgDB.NewUpdate().
				Model((*models.User)(nil)).
				Set("partner_id = ?", oneID).
				Where("id = ?", twoID).
				Exec(ctx); err != nil {
				slog.Warn("Failed to set partner pointer", slog.Any("error", err))
			}
		}
		stats.Inserted++
	}
	return cursor.Err()
}

func (m *Migrator) migrateSubmissions(ctx context.Context, legacy *mongo.Database, userIDs map[string]int64) error {
	stats := &TableStats{}
	m.stats.Tables["submissions"] = stats

	cursor, err := legacy.Collection("submissions").Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	batch := make([]*models.Submission, 0, m.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		_, err := m.pgDB.NewInsert().
			Model(&batch).
			On("CONFLICT DO NOTHING").
			Exec(ctx)
		if err == nil {
			stats.Inserted += len(batch)
		}
		batch = batch[:0]
		return err
	}

	for cursor.Next(ctx) {
		var doc LegacySubmission
		if err := cursor.Decode(&doc); err != nil {
			stats.Skipped++
			continue
		}
		stats.Read++

		userID, ok := userIDs[doc.DiscordID]
		if !ok || doc.QuestID == 0 {
			stats.Skipped++
			continue
		}

		batch = append(batch, &models.Submission{
			UserID:           userID,
			QuestID:          doc.QuestID,
			Status:           legacyStatus(doc.Status),
			EvidenceURL:      doc.Evidence,
			PointsAwarded:    doc.Points,
			ReviewerFeedback: doc.Feedback,
			SubmittedAt:      doc.SubmittedAt,
		})
		if len(batch) >= m.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	return cursor.Err()
}

// legacyStatus maps the old free-form status strings onto the current
// state machine. Anything unrecognized lands in manual review rather
// than being dropped.
func legacyStatus(s string) models.SubmissionStatus {
	switch s {
	case "accepted", "approved":
		return models.SubmissionApproved
	case "denied", "rejected":
		return models.SubmissionRejected
	case "pending", "waiting":
		return models.SubmissionManualReview
	default:
		return models.SubmissionManualReview
	}
}
