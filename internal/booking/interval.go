package booking

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching intervals do not overlap: a visit
// ending at 11:00 never conflicts with one starting at 11:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsBooking reports whether the candidate interval intersects an
// existing booking, ignoring bookings that no longer reserve the slot.
func OverlapsBooking(b *Booking, start, end time.Time) bool {
	if !b.Status.IsActive() {
		return false
	}
	return Overlaps(b.StartsAt, b.EndsAt(), start, end)
}
