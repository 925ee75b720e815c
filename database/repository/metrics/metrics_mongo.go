package metricsRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/See2Code/transport-platform-sub000/database"
	"github.com/See2Code/transport-platform-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const metricsCollection = "dailyMetrics"

// MongoMetricsRepo is the MongoDB-backed MetricsRepository.
type MongoMetricsRepo struct {
	coll *mongo.Collection
	loc  *time.Location
}

// NewMongoMetricsRepo builds the repository. loc fixes the calendar used for
// day bucketing.
func NewMongoMetricsRepo(loc *time.Location) *MongoMetricsRepo {
	return &MongoMetricsRepo{
		coll: database.Collection(metricsCollection),
		loc:  loc,
	}
}

func counterField(kind models.ReminderKind) string {
	if kind == models.ReminderKindTransport {
		return "transportNotifications"
	}
	return "businessCaseReminders"
}

func (repo *MongoMetricsRepo) Increment(ctx context.Context, kind models.ReminderKind, when time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := models.MetricsDateKey(when, repo.loc)
	update := bson.M{
		"$inc": bson.M{counterField(kind): 1},
		"$set": bson.M{"timestamp": when},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateByID(ctx, key, update, opts); err != nil {
		return fmt.Errorf("error incrementing %s counter for %s: %w", kind, key, err)
	}
	return nil
}

func (repo *MongoMetricsRepo) InitializeDay(ctx context.Context, when time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := models.MetricsDateKey(when, repo.loc)
	// Counters go through $setOnInsert so an initializer run can never reset
	// counts a dispatch already merged in.
	update := bson.M{
		"$setOnInsert": bson.M{
			"businessCaseReminders":  0,
			"transportNotifications": 0,
		},
		"$set": bson.M{"timestamp": when},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateByID(ctx, key, update, opts); err != nil {
		return fmt.Errorf("error initializing metrics day %s: %w", key, err)
	}
	return nil
}
