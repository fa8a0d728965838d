package repository

import (
	"context"
	"fmt"
	"time"

	listingserrors "tourism/internal/listings/errors"
	"tourism/pkg/config"
	mongotx "tourism/pkg/db/mongo"
	"tourism/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TargetRepository is how bookings, availability and reviews see listings.
type TargetRepository interface {
	FindTarget(ctx context.Context, targetType model.TargetType, id string) (*model.Target, error)
	SetRating(ctx context.Context, targetType model.TargetType, id string, summary model.RatingSummary) error
}

type mongoTargetRepository struct {
	cfg        *config.Config
	guides     GuideRepository
	businesses BusinessRepository
	db         *mongo.Database
}

func NewMongoTargetRepository(cfg *config.Config) TargetRepository {
	return &mongoTargetRepository{
		cfg:        cfg,
		guides:     NewMongoGuideRepository(cfg),
		businesses: NewMongoBusinessRepository(cfg),
		db:         cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
	}
}

// FindTarget treats a soft-deleted guide as missing.
func (r *mongoTargetRepository) FindTarget(ctx context.Context, targetType model.TargetType, id string) (*model.Target, error) {
	switch targetType {
	case model.TargetGuide:
		guide, err := r.guides.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if guide.DeletedAt != nil {
			return nil, fmt.Errorf("%w: %s", listingserrors.ErrGuideNotFound, id)
		}
		return guide.AsTarget(), nil
	case model.TargetBusiness:
		business, err := r.businesses.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return business.AsTarget(), nil
	default:
		return nil, fmt.Errorf("unknown target type %q", targetType)
	}
}

func (r *mongoTargetRepository) SetRating(ctx context.Context, targetType model.TargetType, id string, summary model.RatingSummary) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	collection, notFound := GuidesCollection, listingserrors.ErrGuideNotFound
	if targetType == model.TargetBusiness {
		collection, notFound = BusinessesCollection, listingserrors.ErrBusinessNotFound
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", listingserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"average_rating": summary.Average,
		"rating_count":   summary.Count,
		"updated_at":     time.Now().UTC(),
	}}
	result, err := r.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to store rating: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}
