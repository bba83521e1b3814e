package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "guesthouse/internal/bookings/errors"
	"guesthouse/pkg/config"
	"guesthouse/pkg/model"
)

const (
	LockCollectionName = "Booking_locks"
)

// BookingLockRepository serializes booking creation per room. Acquire
// relies on the unique _id constraint; a concurrent holder surfaces as
// ErrRoomAlreadyBooked. The TTL index on expires_at reaps locks left
// behind by a crashed process.
type BookingLockRepository interface {
	Acquire(ctx context.Context, roomID string) error
	Release(ctx context.Context, roomID string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoBookingLockRepository) Acquire(ctx context.Context, roomID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := model.BookingLock{
		ID:        lockID(roomID),
		ExpiresAt: now.Add(r.cfg.LockTTL),
		CreatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrRoomAlreadyBooked
		}
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}

	return nil
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, roomID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID(roomID)})
	if err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}

	return nil
}

func lockID(roomID string) string {
	return "room:" + roomID
}
