package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	listingserrors "tourism/internal/listings/errors"
	"tourism/pkg/config"
	mongotx "tourism/pkg/db/mongo"
	"tourism/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	GuidesCollection = "Guides"
)

type GuideRepository interface {
	Create(ctx context.Context, guide *model.Guide) error
	FindByID(ctx context.Context, id string) (*model.Guide, error)
	FindByUserID(ctx context.Context, userID string) (*model.Guide, error)
	FindAll(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Guide, error)
	Count(ctx context.Context, filter model.ListingFilter) (int64, error)
	Update(ctx context.Context, id string, guide *model.Guide) error
	SetFlags(ctx context.Context, id string, flags *model.GuideFlags) error
	SoftDelete(ctx context.Context, id string, at time.Time) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoGuideRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoGuideRepository(cfg *config.Config) GuideRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoGuideRepository{
		cfg:        cfg,
		collection: db.Collection(GuidesCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func guideObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", listingserrors.ErrInvalidID, id)
	}
	return oid, nil
}

func (r *mongoGuideRepository) Create(ctx context.Context, guide *model.Guide) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	guide.CreatedAt = now
	guide.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, guide)
	if err != nil {
		return fmt.Errorf("failed to create guide: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		guide.ID = oid.Hex()
	}
	return nil
}

func (r *mongoGuideRepository) FindByID(ctx context.Context, id string) (*model.Guide, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := guideObjectID(id)
	if err != nil {
		return nil, err
	}

	var guide model.Guide
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&guide); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", listingserrors.ErrGuideNotFound, id)
		}
		return nil, fmt.Errorf("failed to find guide: %w", err)
	}
	return &guide, nil
}

func (r *mongoGuideRepository) FindByUserID(ctx context.Context, userID string) (*model.Guide, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var guide model.Guide
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "deleted_at": bson.M{"$exists": false}}).Decode(&guide)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user %s", listingserrors.ErrGuideNotFound, userID)
		}
		return nil, fmt.Errorf("failed to find guide by user: %w", err)
	}
	return &guide, nil
}

func guideFilter(f model.ListingFilter) bson.M {
	filter := bson.M{"deleted_at": bson.M{"$exists": false}}
	if !f.IncludeUnapproved {
		filter["is_approved"] = true
	}
	if f.City != "" {
		filter["city"] = f.City
	}
	if f.Language != "" {
		filter["languages"] = f.Language
	}
	return filter
}

func (r *mongoGuideRepository) FindAll(ctx context.Context, f model.ListingFilter, limit int, offset int64) ([]*model.Guide, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "average_rating", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, guideFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query guides: %w", err)
	}
	defer cursor.Close(ctx)

	guides := []*model.Guide{}
	if err := cursor.All(ctx, &guides); err != nil {
		return nil, fmt.Errorf("failed to decode guides: %w", err)
	}
	return guides, nil
}

func (r *mongoGuideRepository) Count(ctx context.Context, f model.ListingFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, guideFilter(f))
	if err != nil {
		return 0, fmt.Errorf("failed to count guides: %w", err)
	}
	return count, nil
}

func (r *mongoGuideRepository) Update(ctx context.Context, id string, guide *model.Guide) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := guideObjectID(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"name":             guide.Name,
			"bio":              guide.Bio,
			"city":             guide.City,
			"years_experience": guide.YearsExperience,
			"languages":        guide.Languages,
			"specialties":      guide.Specialties,
			"daily_rate":       guide.DailyRate,
			"phone":            guide.Phone,
			"updated_at":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid, "deleted_at": bson.M{"$exists": false}}, update)
	if err != nil {
		return fmt.Errorf("failed to update guide: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", listingserrors.ErrGuideNotFound, id)
	}
	return nil
}

func (r *mongoGuideRepository) SetFlags(ctx context.Context, id string, flags *model.GuideFlags) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := guideObjectID(id)
	if err != nil {
		return err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if flags.IsApproved != nil {
		set["is_approved"] = *flags.IsApproved
	}
	if flags.IsAvailable != nil {
		set["is_available"] = *flags.IsAvailable
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid, "deleted_at": bson.M{"$exists": false}}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update guide flags: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", listingserrors.ErrGuideNotFound, id)
	}
	return nil
}

// SoftDelete hides the profile and takes it off the market. Bookings and
// reviews keep pointing at the document.
func (r *mongoGuideRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := guideObjectID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"deleted_at": at, "is_available": false, "updated_at": at}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid, "deleted_at": bson.M{"$exists": false}}, update)
	if err != nil {
		return fmt.Errorf("failed to delete guide: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", listingserrors.ErrGuideNotFound, id)
	}
	return nil
}

func (r *mongoGuideRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
