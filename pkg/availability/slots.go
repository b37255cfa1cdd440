package availability

import "time"

const (
	DefaultOpenTime    = "09:00"
	DefaultCloseTime   = "18:00"
	DefaultSlotMinutes = 60
	MinSlotMinutes     = 5
	DateLayout         = "2006-01-02"
)

// Hours is a shop's daily operating window in 24-hour "HH:MM" form.
// Empty fields fall back to DefaultOpenTime and DefaultCloseTime.
type Hours struct {
	OpenTime24  string
	CloseTime24 string
}

// Window returns the opening and closing minute of the day.
// A close time of "24:00" is treated as midnight rollover (1440).
func (h Hours) Window() (openMin, closeMin int) {
	open := h.OpenTime24
	if open == "" {
		open = DefaultOpenTime
	}
	closing := h.CloseTime24
	if closing == "" {
		closing = DefaultCloseTime
	}

	openMin = ParseToMinutes(open)

	closeHour, closeMinute := splitClock(closing)
	if closeHour == 24 && closeMinute == 0 {
		closeMin = minutesPerDay
	} else {
		closeMin = closeHour*60 + closeMinute
	}
	return openMin, closeMin
}

// Duration carries the service settings that decide the slot length.
// Zero means "not configured".
type Duration struct {
	EstimatedMinutes int // explicit per-service duration
	SlotMinutes      int // slot length from the service availability block
}

// Minutes resolves the slot length: explicit duration, then availability
// slot duration, then DefaultSlotMinutes, never below MinSlotMinutes.
func (d Duration) Minutes() int {
	minutes := d.EstimatedMinutes
	if minutes == 0 {
		minutes = d.SlotMinutes
	}
	if minutes == 0 {
		minutes = DefaultSlotMinutes
	}
	if minutes < MinSlotMinutes {
		minutes = MinSlotMinutes
	}
	return minutes
}

// TimeSlot is one bookable unit of a day.
type TimeSlot struct {
	Time        string // 12-hour display, "9:00 AM"
	Time24      string // 24-hour key, "09:00"
	IsAvailable bool
}

// GenerateTimeSlots returns the ordered slots of selectedDate. A zero
// selectedDate yields no slots. A slot is unavailable when a booking that
// occupies slots under the engine policy is requested for the same date and time.
func (e *Engine) GenerateTimeSlots(selectedDate time.Time, bookings []Booking, hours Hours, duration Duration) []TimeSlot {
	slots := make([]TimeSlot, 0)
	if selectedDate.IsZero() {
		return slots
	}

	dateString := e.DateString(selectedDate)
	booked := make(map[string]struct{})
	for _, b := range bookings {
		if b.RequestedDate != dateString || b.RequestedTime == "" {
			continue
		}
		if !e.policy.occupiesSlot(b.Status) {
			continue
		}
		booked[b.RequestedTime] = struct{}{}
	}

	openMin, closeMin := hours.Window()
	step := duration.Minutes()

	for t := openMin; t+step <= closeMin; t += step {
		time24 := FormatMinutes(t)
		_, taken := booked[time24]
		slots = append(slots, TimeSlot{
			Time:        To12Hour(time24),
			Time24:      time24,
			IsAvailable: !taken,
		})
	}

	return slots
}
