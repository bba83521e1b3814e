package clock

import "time"

// Resolver converts instants into business-day boundaries under a fixed
// timezone offset from UTC. Every occupancy computation must go through the
// same resolver so "today" means the same wall-clock day on the write and
// read paths alike.
type Resolver struct {
	offset time.Duration
	now    func() time.Time
}

func NewResolver(offset time.Duration) *Resolver {
	return &Resolver{
		offset: offset,
		now:    time.Now,
	}
}

// NewResolverAt returns a Resolver with a fixed notion of "now". Intended
// for tests.
func NewResolverAt(offset time.Duration, now func() time.Time) *Resolver {
	return &Resolver{
		offset: offset,
		now:    now,
	}
}

// Today returns the UTC instants [start, end) delimiting the current
// calendar day in the business timezone.
func (r *Resolver) Today() (time.Time, time.Time) {
	return r.DayWindow(r.now())
}

// DayWindow returns the UTC instants [start, end) of the business-timezone
// calendar day containing t. The instant is shifted into the business
// offset, truncated to midnight there, and shifted back.
func (r *Resolver) DayWindow(t time.Time) (time.Time, time.Time) {
	local := t.UTC().Add(r.offset)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	start := midnight.Add(-r.offset)
	return start, start.Add(24 * time.Hour)
}

// Now returns the resolver's current instant in UTC.
func (r *Resolver) Now() time.Time {
	return r.now().UTC()
}
