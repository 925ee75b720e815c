package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/See2Code/transport-platform-sub000/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new reminder document with sent=false.
func (repo *MongoReminderRepo) Create(ctx context.Context, reminder *models.Reminder) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	reminder.Sent = false
	reminder.SentAt = nil
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}

	if _, err := repo.coll.InsertOne(ctx, reminder); err != nil {
		return "", fmt.Errorf("error creating reminder: %w", err)
	}
	return reminder.ID, nil
}

// GetByID retrieves a reminder by its ID.
func (repo *MongoReminderRepo) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var reminder models.Reminder
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&reminder)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("reminder %s not found: %w", id, err)
	}
	return &reminder, nil
}

// List returns all reminders of a kind, for the back-office views.
func (repo *MongoReminderRepo) List(ctx context.Context, kind models.ReminderKind) ([]models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"kind": kind})
	if err != nil {
		return nil, fmt.Errorf("error listing reminders for kind %s: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("error decoding reminders for kind %s: %w", kind, err)
	}
	return reminders, nil
}

// DeleteByParent removes every reminder of the kind attached to a parent
// record. The edit flow replaces reminders wholesale when the parent's time
// or address changes.
func (repo *MongoReminderRepo) DeleteByParent(ctx context.Context, kind models.ReminderKind, parentID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"kind": kind}
	switch kind {
	case models.ReminderKindTransport:
		filter["transportId"] = parentID
	default:
		filter["businessCaseId"] = parentID
	}

	res, err := repo.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error deleting reminders for %s %s: %w", kind, parentID, err)
	}
	return res.DeletedCount, nil
}
