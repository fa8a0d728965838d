package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityerrors "tourism/internal/availability/errors"
	"tourism/pkg/config"
	mongotx "tourism/pkg/db/mongo"
	"tourism/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Availabilities"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *model.Slot) error
	FindByID(ctx context.Context, id string) (*model.Slot, error)
	FindByGuideDate(ctx context.Context, guideID, date string) ([]*model.Slot, error)
	FindByGuide(ctx context.Context, guideID string, filter model.SlotFilter) ([]*model.Slot, error)
	Update(ctx context.Context, id string, slot *model.Slot) error
	Delete(ctx context.Context, id string) error

	// MarkBooked flips an available slot to booked for bookingID. It fails
	// with ErrSlotNotAvailable when the slot is in any other status.
	MarkBooked(ctx context.Context, id, bookingID string) error
	// Release returns a slot booked by bookingID to available. A slot that
	// was changed by someone else in the meantime is left untouched.
	Release(ctx context.Context, id, bookingID string) (bool, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoSlotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoSlotRepository(cfg *config.Config) SlotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func slotObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", availabilityerrors.ErrInvalidID, id)
	}
	return oid, nil
}

func (r *mongoSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	slot.CreatedAt = now
	slot.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, slot)
	if err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		slot.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSlotRepository) FindByID(ctx context.Context, id string) (*model.Slot, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := slotObjectID(id)
	if err != nil {
		return nil, err
	}

	var slot model.Slot
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&slot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", availabilityerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepository) FindByGuideDate(ctx context.Context, guideID, date string) ([]*model.Slot, error) {
	return r.find(ctx, bson.M{"guide_id": guideID, "date": date})
}

func (r *mongoSlotRepository) FindByGuide(ctx context.Context, guideID string, f model.SlotFilter) ([]*model.Slot, error) {
	filter := bson.M{"guide_id": guideID}
	switch {
	case f.Date != "":
		filter["date"] = f.Date
	case f.From != "" || f.To != "":
		// YYYY-MM-DD sorts lexically in calendar order.
		dateRange := bson.M{}
		if f.From != "" {
			dateRange["$gte"] = f.From
		}
		if f.To != "" {
			dateRange["$lte"] = f.To
		}
		filter["date"] = dateRange
	}
	return r.find(ctx, filter)
}

func (r *mongoSlotRepository) find(ctx context.Context, filter bson.M) ([]*model.Slot, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []*model.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}

func (r *mongoSlotRepository) Update(ctx context.Context, id string, slot *model.Slot) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := slotObjectID(id)
	if err != nil {
		return err
	}

	set := bson.M{
		"date":       slot.Date,
		"start_time": slot.StartTime,
		"end_time":   slot.EndTime,
		"status":     slot.Status,
		"notes":      slot.Notes,
		"updated_at": time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if slot.Status != model.SlotBooked {
		update["$unset"] = bson.M{"booking_id": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", availabilityerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoSlotRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := slotObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", availabilityerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoSlotRepository) MarkBooked(ctx context.Context, id, bookingID string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := slotObjectID(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid, "status": model.SlotAvailable}
	update := bson.M{"$set": bson.M{
		"status":     model.SlotBooked,
		"booking_id": bookingID,
		"updated_at": time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to book slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", availabilityerrors.ErrSlotNotAvailable, id)
	}
	return nil
}

func (r *mongoSlotRepository) Release(ctx context.Context, id, bookingID string) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := slotObjectID(id)
	if err != nil {
		return false, err
	}

	filter := bson.M{"_id": oid, "status": model.SlotBooked, "booking_id": bookingID}
	update := bson.M{
		"$set":   bson.M{"status": model.SlotAvailable, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"booking_id": ""},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to release slot: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoSlotRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
