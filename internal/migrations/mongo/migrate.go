package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tourism/internal/migrations/mongo/validators"
	"tourism/pkg/logger"
)

var (
	GuidesIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_guide_user"),
		},
		{Keys: bson.D{
			{Key: "is_approved", Value: 1},
			{Key: "city", Value: 1},
			{Key: "average_rating", Value: -1},
		}},
		{Keys: bson.D{{Key: "languages", Value: 1}}},
	}

	BusinessesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{
			{Key: "city", Value: 1},
			{Key: "category", Value: 1},
			{Key: "average_rating", Value: -1},
		}},
	}

	AvailabilitiesIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "guide_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "start_time", Value: 1},
		}},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	// Expired locks are reaped by the TTL monitor.
	SlotLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
		},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "customer_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "date", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "customer_id", Value: 1},
			{Key: "target_type", Value: 1},
			{Key: "target_id", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{{Key: "slot_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	ReviewsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "author_id", Value: 1},
				{Key: "target_type", Value: 1},
				{Key: "target_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_review_author_target"),
		},
		{Keys: bson.D{
			{Key: "target_type", Value: 1},
			{Key: "target_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}

	NotificationsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_notification_event_user"),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
)

// Collection is one collection's schema validator and indexes.
type Collection struct {
	Name      string
	Validator bson.M
	Indexes   []mongo.IndexModel
}

// Collections lists every collection the services use, in creation order.
func Collections() []Collection {
	return []Collection{
		{Name: "Guides", Validator: validators.GuideValidator, Indexes: GuidesIndexes},
		{Name: "Businesses", Validator: validators.BusinessValidator, Indexes: BusinessesIndexes},
		{Name: "Availabilities", Validator: validators.SlotValidator, Indexes: AvailabilitiesIndexes},
		{Name: "Slot_locks", Validator: validators.SlotLockValidator, Indexes: SlotLocksIndexes},
		{Name: "Bookings", Validator: validators.BookingValidator, Indexes: BookingsIndexes},
		{Name: "Reviews", Validator: validators.ReviewValidator, Indexes: ReviewsIndexes},
		{Name: "Notifications", Validator: validators.NotificationValidator, Indexes: NotificationsIndexes},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}
