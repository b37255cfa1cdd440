package domain

import "time"

// BookingAnalytics aggregated booking counters of a shop
type BookingAnalytics struct {
	TotalBookings     int
	PendingBookings   int
	ConfirmedBookings int // accepted
	CompletedBookings int
	CancelledBookings int
	TodayBookings     int // created today
}

// DayCount number of bookings requested for one day of the week
type DayCount struct {
	Day   string // "Mon" .. "Sun"
	Date  string // "2006-01-02"
	Count int
}

// WeeklyBookings confirmed bookings per day of the current Monday-based week
type WeeklyBookings struct {
	Days [7]DayCount
}

var weekDayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// CalculateAnalytics counts bookings by status. A booking counts for today
// when it was created on the current day in loc.
func CalculateAnalytics(bookings []*Booking, now time.Time, loc *time.Location) BookingAnalytics {
	local := now.In(loc)
	todayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	a := BookingAnalytics{TotalBookings: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case StatusPending:
			a.PendingBookings++
		case StatusAccepted:
			a.ConfirmedBookings++
		case StatusCompleted:
			a.CompletedBookings++
		case StatusCancelled:
			a.CancelledBookings++
		}
		if !b.CreatedAt.Before(todayStart) {
			a.TodayBookings++
		}
	}
	return a
}

// CalculateWeekly counts pending and accepted bookings requested for each day
// of the week (Monday to Sunday) that contains now.
func CalculateWeekly(bookings []*Booking, now time.Time, loc *time.Location) WeeklyBookings {
	local := now.In(loc)
	offset := int(local.Weekday()) - 1
	if local.Weekday() == time.Sunday {
		offset = 6
	}
	monday := time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, loc)

	var w WeeklyBookings
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i).Format(DateFormat)
		w.Days[i] = DayCount{Day: weekDayNames[i], Date: date}
		index[date] = i
	}

	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}
		if i, ok := index[b.RequestedDate]; ok {
			w.Days[i].Count++
		}
	}
	return w
}
