package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	inventoryerrors "guesthouse/internal/inventory/errors"
	"guesthouse/pkg/config"
	"guesthouse/pkg/model"
)

const (
	GuestHouseCollectionName = "Guest_houses"
)

type GuestHouseRepository interface {
	Create(ctx context.Context, gh *model.GuestHouse) error
	FindByID(ctx context.Context, id string) (*model.GuestHouse, error)
	FindAllActive(ctx context.Context, limit int, offset int64) ([]*model.GuestHouse, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, update *model.GuestHouseUpdate) (*model.GuestHouse, error)
	Deactivate(ctx context.Context, id string) error
}

type mongoGuestHouseRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoGuestHouseRepository(cfg *config.Config) GuestHouseRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoGuestHouseRepository{
		cfg:        cfg,
		collection: db.Collection(GuestHouseCollectionName),
	}
}

func (r *mongoGuestHouseRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoGuestHouseRepository) Create(ctx context.Context, gh *model.GuestHouse) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	gh.CreatedAt = now
	gh.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, gh)
	if err != nil {
		return fmt.Errorf("failed to create guest house: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		gh.ID = oid.Hex()
	}
	return nil
}

func (r *mongoGuestHouseRepository) FindByID(ctx context.Context, id string) (*model.GuestHouse, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", inventoryerrors.ErrInvalidID, id)
	}

	var gh model.GuestHouse
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&gh)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, inventoryerrors.ErrGuestHouseNotFound
		}
		return nil, fmt.Errorf("failed to find guest house: %w", err)
	}

	return &gh, nil
}

func (r *mongoGuestHouseRepository) FindAllActive(ctx context.Context, limit int, offset int64) ([]*model.GuestHouse, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find guest houses: %w", err)
	}
	defer cursor.Close(ctx)

	var houses []*model.GuestHouse
	if err = cursor.All(ctx, &houses); err != nil {
		return nil, fmt.Errorf("failed to decode guest houses: %w", err)
	}

	return houses, nil
}

func (r *mongoGuestHouseRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count guest houses: %w", err)
	}
	return count, nil
}

func (r *mongoGuestHouseRepository) Update(ctx context.Context, id string, update *model.GuestHouseUpdate) (*model.GuestHouse, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", inventoryerrors.ErrInvalidID, id)
	}

	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Location != "" {
		set["location"] = update.Location
	}
	if update.Category != "" {
		set["category"] = update.Category
	}
	if update.Address != "" {
		set["address"] = update.Address
	}

	var gh model.GuestHouse
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "is_active": true},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&gh)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, inventoryerrors.ErrGuestHouseNotFound
		}
		return nil, fmt.Errorf("failed to update guest house: %w", err)
	}

	return &gh, nil
}

func (r *mongoGuestHouseRepository) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", inventoryerrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC().Truncate(time.Millisecond)}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate guest house: %w", err)
	}
	if result.MatchedCount == 0 {
		return inventoryerrors.ErrGuestHouseNotFound
	}

	return nil
}
