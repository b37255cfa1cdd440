// Package availability computes bookable time slots and blocked dates for a
// shop service. Every method is a pure function of its arguments, the
// reference time zone and the clock; an Engine is safe for concurrent use.
//
// The engine is presentational only. It does not reserve anything: the
// booking commit must re-check availability atomically against the store.
package availability

import "time"

// Engine holds the reference time zone, blocking policy and clock shared by all calculations.
type Engine struct {
	loc    *time.Location
	policy Policy
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocation sets the reference time zone used to turn instants into
// calendar dates. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithPolicy overrides DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		loc:    time.UTC,
		policy: DefaultPolicy(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the reference time zone.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Policy returns the blocking policy in effect.
func (e *Engine) Policy() Policy {
	return e.policy
}

// DateString formats the calendar date of t in the reference time zone as "yyyy-MM-dd".
func (e *Engine) DateString(t time.Time) string {
	return t.In(e.loc).Format(DateLayout)
}

// ParseDate parses "yyyy-MM-dd" as midnight in the reference time zone.
func (e *Engine) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, e.loc)
}

// Now returns the current instant in the reference time zone.
func (e *Engine) Now() time.Time {
	return e.now().In(e.loc)
}

// Today returns midnight of the current day in the reference time zone.
func (e *Engine) Today() time.Time {
	return e.startOfDay(e.now())
}

// DaysInRange returns the number of calendar days in [start, end], inclusive.
// Returns 0 when end is before start. Computed without walking the range.
func (e *Engine) DaysInRange(start, end time.Time) int {
	s, t := start.In(e.loc), end.In(e.loc)
	from := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if to.Before(from) {
		return 0
	}
	// Unix seconds: time.Duration saturates past ~292 years
	return int((to.Unix()-from.Unix())/(24*60*60)) + 1
}

func (e *Engine) startOfDay(t time.Time) time.Time {
	local := t.In(e.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, e.loc)
}
