package migration

import "time"

// Legacy document shapes as they exist in the old Mongo deployment.
// Field names follow the old schema, not ours.

type LegacyUser struct {
	DiscordID string `bson:"discord_id"`
	Username  string `bson:"username"`
	Points    int64  `bson:"points"`
	Partner   string `bson:"partner"`
}

type LegacyPartnership struct {
	GroupCode string `bson:"group_code"`
	MemberOne string `bson:"member_one"`
	MemberTwo string `bson:"member_two"`
	Active    bool   `bson:"active"`
}

type LegacySubmission struct {
	DiscordID   string    `bson:"discord_id"`
	QuestID     int64     `bson:"quest_id"`
	Status      string    `bson:"status"`
	Evidence    string    `bson:"evidence"`
	Feedback    string    `bson:"feedback"`
	Points      int64     `bson:"points"`
	SubmittedAt time.Time `bson:"submitted_at"`
}

type TableStats struct {
	Read     int
	Inserted int
	Skipped  int
}

type MigrationStats struct {
	Tables    map[string]*TableStats
	StartTime time.Time
}
