package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/See2Code/transport-platform-sub000/database"
	"github.com/See2Code/transport-platform-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const remindersCollection = "reminders"

// MongoReminderRepo is the MongoDB-backed ReminderRepository.
type MongoReminderRepo struct {
	coll       *mongo.Collection
	staleAfter time.Duration
}

// NewMongoReminderRepo builds the repository. staleAfter is the window after
// which an unfinalized claim is treated as abandoned and reclaimable.
func NewMongoReminderRepo(staleAfter time.Duration) *MongoReminderRepo {
	return &MongoReminderRepo{
		coll:       database.Collection(remindersCollection),
		staleAfter: staleAfter,
	}
}

// eligibilityFilter matches reminders of the kind that have not been
// finalized. TRANSPORT reminders are deleted on delivery, so existence alone
// is the eligibility signal; BUSINESS_CASE reminders additionally carry the
// sent flag.
func eligibilityFilter(kind models.ReminderKind) bson.M {
	filter := bson.M{"kind": kind}
	if kind == models.ReminderKindBusinessCase {
		filter["sent"] = false
	}
	return filter
}

func (repo *MongoReminderRepo) DueUnsent(ctx context.Context, kind models.ReminderKind, now time.Time) ([]models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := eligibilityFilter(kind)
	filter["reminderDateTime"] = bson.M{"$lte": now}

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying due reminders for kind %s: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("error decoding due reminders for kind %s: %w", kind, err)
	}
	return reminders, nil
}

func (repo *MongoReminderRepo) Claim(ctx context.Context, kind models.ReminderKind, id, token string, now time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := eligibilityFilter(kind)
	filter["id"] = id
	filter["$or"] = bson.A{
		bson.M{"claimedAt": bson.M{"$exists": false}},
		bson.M{"claimedAt": bson.M{"$lt": now.Add(-repo.staleAfter)}},
	}

	update := bson.M{"$set": bson.M{"claimToken": token, "claimedAt": now}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error claiming reminder %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

func (repo *MongoReminderRepo) Release(ctx context.Context, id, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Matching on the token keeps a release from resurrecting a reminder
	// another invocation already finalized or re-claimed.
	filter := bson.M{"id": id, "claimToken": token}
	update := bson.M{
		"$unset": bson.M{"claimToken": "", "claimedAt": ""},
		"$inc":   bson.M{"deliveryAttempts": 1},
	}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error releasing reminder %s: %w", id, err)
	}
	return nil
}

func (repo *MongoReminderRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$set":   bson.M{"sent": true, "sentAt": sentAt},
		"$unset": bson.M{"claimToken": "", "claimedAt": ""},
	}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error marking reminder %s sent: %w", id, err)
	}
	return nil
}

func (repo *MongoReminderRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting reminder %s: %w", id, err)
	}
	// A zero DeletedCount means someone else finalized first; that is success.
	return nil
}
