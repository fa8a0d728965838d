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
	BusinessesCollection = "Businesses"
)

type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	FindByID(ctx context.Context, id string) (*model.Business, error)
	FindAll(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Business, error)
	Count(ctx context.Context, filter model.ListingFilter) (int64, error)
	Update(ctx context.Context, id string, business *model.Business) error
}

type mongoBusinessRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBusinessRepository(cfg *config.Config) BusinessRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBusinessRepository{
		cfg:        cfg,
		collection: db.Collection(BusinessesCollection),
	}
}

func (r *mongoBusinessRepository) Create(ctx context.Context, business *model.Business) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	business.CreatedAt = now
	business.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, business)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		business.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBusinessRepository) FindByID(ctx context.Context, id string) (*model.Business, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", listingserrors.ErrInvalidID, id)
	}

	var business model.Business
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&business); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", listingserrors.ErrBusinessNotFound, id)
		}
		return nil, fmt.Errorf("failed to find business: %w", err)
	}
	return &business, nil
}

func businessFilter(f model.ListingFilter) bson.M {
	filter := bson.M{}
	if f.City != "" {
		filter["city"] = f.City
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	return filter
}

func (r *mongoBusinessRepository) FindAll(ctx context.Context, f model.ListingFilter, limit int, offset int64) ([]*model.Business, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "average_rating", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, businessFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer cursor.Close(ctx)

	businesses := []*model.Business{}
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, fmt.Errorf("failed to decode businesses: %w", err)
	}
	return businesses, nil
}

func (r *mongoBusinessRepository) Count(ctx context.Context, f model.ListingFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, businessFilter(f))
	if err != nil {
		return 0, fmt.Errorf("failed to count businesses: %w", err)
	}
	return count, nil
}

func (r *mongoBusinessRepository) Update(ctx context.Context, id string, business *model.Business) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", listingserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        business.Name,
			"description": business.Description,
			"category":    business.Category,
			"city":        business.City,
			"address":     business.Address,
			"phone":       business.Phone,
			"updated_at":  time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", listingserrors.ErrBusinessNotFound, id)
	}
	return nil
}
