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
	RoomCollectionName = "Rooms"
)

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindActiveByGuestHouse(ctx context.Context, guestHouseID string) ([]*model.Room, error)
	FindAllActive(ctx context.Context) ([]*model.Room, error)
	Update(ctx context.Context, id string, update *model.RoomUpdate) (*model.Room, error)
	Deactivate(ctx context.Context, id string) error
	DeactivateByGuestHouse(ctx context.Context, guestHouseID string) error
}

type mongoRoomRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomRepository(cfg *config.Config) RoomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomRepository{
		cfg:        cfg,
		collection: db.Collection(RoomCollectionName),
	}
}

func (r *mongoRoomRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRoomRepository) Create(ctx context.Context, room *model.Room) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	room.CreatedAt = now
	room.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, room)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", inventoryerrors.ErrDuplicateRoom, room.RoomNumber)
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		room.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", inventoryerrors.ErrInvalidID, id)
	}

	var room model.Room
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, inventoryerrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	return &room, nil
}

func (r *mongoRoomRepository) FindActiveByGuestHouse(ctx context.Context, guestHouseID string) ([]*model.Room, error) {
	return r.find(ctx, bson.M{"guest_house_id": guestHouseID, "is_active": true})
}

func (r *mongoRoomRepository) FindAllActive(ctx context.Context) ([]*model.Room, error) {
	return r.find(ctx, bson.M{"is_active": true})
}

func (r *mongoRoomRepository) find(ctx context.Context, filter bson.M) ([]*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "room_number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

func (r *mongoRoomRepository) Update(ctx context.Context, id string, update *model.RoomUpdate) (*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", inventoryerrors.ErrInvalidID, id)
	}

	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if update.RoomNumber != "" {
		set["room_number"] = update.RoomNumber
	}
	if update.Type != "" {
		set["type"] = update.Type
	}
	if update.Capacity != nil {
		set["capacity"] = *update.Capacity
	}
	if update.Floor != nil {
		set["floor"] = *update.Floor
	}
	if update.Amenities != nil {
		set["amenities"] = *update.Amenities
	}
	if update.Status != "" {
		set["status"] = update.Status
	}

	var room model.Room
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "is_active": true},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, inventoryerrors.ErrRoomNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", inventoryerrors.ErrDuplicateRoom, update.RoomNumber)
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return &room, nil
}

// Deactivate soft-deletes a room. History stays in the booking ledger, so
// rows are never removed.
func (r *mongoRoomRepository) Deactivate(ctx context.Context, id string) error {
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
		return fmt.Errorf("failed to deactivate room: %w", err)
	}
	if result.MatchedCount == 0 {
		return inventoryerrors.ErrRoomNotFound
	}

	return nil
}

func (r *mongoRoomRepository) DeactivateByGuestHouse(ctx context.Context, guestHouseID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"guest_house_id": guestHouseID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC().Truncate(time.Millisecond)}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate rooms for guest house %s: %w", guestHouseID, err)
	}

	return nil
}
