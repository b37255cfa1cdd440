package availability

import "time"

// Status is the lifecycle status of a booking as seen by the engine.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Booking is the read-only projection of a stored booking that the engine consumes.
type Booking struct {
	RequestedDate string // "yyyy-MM-dd"
	RequestedTime string // "HH:MM"
	Status        Status
}

// Policy names which booking statuses block what.
//
// SlotStatuses: statuses that occupy a time slot. Empty means every supplied
// booking occupies its slot, the caller having already filtered to confirmed
// bookings.
//
// DateStatuses: statuses that block a whole calendar date.
type Policy struct {
	SlotStatuses []Status
	DateStatuses []Status
}

// DefaultPolicy: pending and accepted bookings (as supplied by the store) take
// their slot, only accepted bookings take the whole date.
func DefaultPolicy() Policy {
	return Policy{
		DateStatuses: []Status{StatusAccepted},
	}
}

func (p Policy) occupiesSlot(s Status) bool {
	if len(p.SlotStatuses) == 0 {
		return true
	}
	return containsStatus(p.SlotStatuses, s)
}

func (p Policy) blocksDate(s Status) bool {
	return containsStatus(p.DateStatuses, s)
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// IsDateBlocked reports whether date cannot be selected: it lies before
// today, or a booking blocking whole dates is requested for it. Today is
// never blocked by the past-date rule.
func (e *Engine) IsDateBlocked(date time.Time, bookings []Booking) bool {
	day := e.startOfDay(date)
	if day.Before(e.Today()) {
		return true
	}

	dateString := day.Format(DateLayout)
	for _, b := range bookings {
		if b.RequestedDate == dateString && e.policy.blocksDate(b.Status) {
			return true
		}
	}
	return false
}

// IsRangeBlockedByBookings reports whether any calendar day in [start, end]
// is blocked. Returns false when start is after end.
func (e *Engine) IsRangeBlockedByBookings(start, end time.Time, bookings []Booking) bool {
	last := e.startOfDay(end)
	for day := e.startOfDay(start); !day.After(last); day = day.AddDate(0, 0, 1) {
		if e.IsDateBlocked(day, bookings) {
			return true
		}
	}
	return false
}
