package model

import "time"

// BookingLock is an advisory lock held around the overlap check and insert
// of a booking so that two concurrent creations for the same room cannot
// both pass the check. The _id encodes the room; a TTL index on expires_at
// reaps locks abandoned by crashed writers.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
