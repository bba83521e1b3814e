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

	bookingserrors "guesthouse/internal/bookings/errors"
	"guesthouse/pkg/config"
	mongotx "guesthouse/pkg/db/mongo"
	"guesthouse/pkg/model"
)

const (
	CollectionName = "Bookings"
)

// ListFilter narrows booking listings. Zero values mean "no constraint".
type ListFilter struct {
	Statuses     []string
	GuestHouseID string
	UserID       string
}

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

// BookingRepository is the reservation ledger. FindOverlapping is the
// single overlap primitive shared by the creation path and every
// availability read, so both sides agree on what "intersects" means.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	FindOverlapping(ctx context.Context, roomID string, from, to time.Time) ([]*model.Booking, error)
	FindOccupying(ctx context.Context, guestHouseID string, windowStart, windowEnd time.Time) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, booking *model.Booking) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildListFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// FindOverlapping returns the active-status bookings on roomID whose
// half-open interval intersects [from, to). Served by the compound index
// on (room_id, check_in_date, check_out_date, status).
func (r *mongoBookingRepository) FindOverlapping(ctx context.Context, roomID string, from, to time.Time) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"room_id":        roomID,
		"status":         bson.M{"$in": model.ActiveStatuses},
		"check_in_date":  bson.M{"$lt": to},
		"check_out_date": bson.M{"$gt": from},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "check_in_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping bookings: %w", err)
	}

	return bookings, nil
}

// FindOccupying returns the bookings that occupy a room somewhere in
// [windowStart, windowEnd): every CHECKED_IN booking unconditionally, and
// BOOKED ones whose interval intersects the window. Empty guestHouseID
// spans the whole portfolio.
func (r *mongoBookingRepository) FindOccupying(ctx context.Context, guestHouseID string, windowStart, windowEnd time.Time) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"$or": []bson.M{
			{"status": model.StatusCheckedIn},
			{
				"status":         model.StatusBooked,
				"check_in_date":  bson.M{"$lt": windowEnd},
				"check_out_date": bson.M{"$gt": windowStart},
			},
		},
	}
	if guestHouseID != "" {
		filter["guest_house_id"] = guestHouseID
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find occupying bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode occupying bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatus persists the status and actuals of a transitioned booking.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(booking.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, booking.ID)
	}

	update := bson.M{
		"$set": bson.M{
			"status":           booking.Status,
			"actual_check_in":  booking.ActualCheckIn,
			"actual_check_out": booking.ActualCheckOut,
			"updated_at":       time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func buildListFilter(filter ListFilter) bson.M {
	out := bson.M{}

	switch len(filter.Statuses) {
	case 0:
	case 1:
		out["status"] = filter.Statuses[0]
	default:
		out["status"] = bson.M{"$in": filter.Statuses}
	}

	if filter.GuestHouseID != "" {
		out["guest_house_id"] = filter.GuestHouseID
	}
	if filter.UserID != "" {
		out["user_id"] = filter.UserID
	}

	return out
}
