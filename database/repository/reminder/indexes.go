package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes the dispatcher queries rely on.
func (repo *MongoReminderRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			// Poll query: kind + sent + reminderDateTime range.
			Keys: bson.D{
				{Key: "kind", Value: 1},
				{Key: "sent", Value: 1},
				{Key: "reminderDateTime", Value: 1},
			},
		},
		{
			// Claim and finalize lookups.
			Keys: bson.D{{Key: "id", Value: 1}},
		},
		{
			// Edit-flow wholesale replacement.
			Keys: bson.D{
				{Key: "kind", Value: 1},
				{Key: "businessCaseId", Value: 1},
				{Key: "transportId", Value: 1},
			},
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating reminder indexes: %w", err)
	}
	return nil
}
