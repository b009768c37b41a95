package domain

import "time"

// Slot is one entry from the fixed half-hour booking catalog ("HH:MM")
type Slot string

// SlotCatalog is the ordered catalog of bookable slots across a service day.
// The order is stable and is the tie-break order everywhere slots are
// filtered or defaulted.
var SlotCatalog = []Slot{
	"08:00", "08:30",
	"09:00", "09:30",
	"10:00", "10:30",
	"11:00", "11:30",
	"12:00", "12:30",
	"13:00", "13:30",
	"14:00", "14:30",
	"15:00", "15:30",
	"16:00", "16:30",
	"17:00",
}

// DateLayout is the canonical wire representation of a calendar date
const DateLayout = "2006-01-02"

// BookingWindowDays is how far ahead a booking may be placed, inclusive
const BookingWindowDays = 14

// FormatDate normalizes a time to the canonical YYYY-MM-DD form
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SlotTime combines a YYYY-MM-DD date and a slot into a wall-clock instant
// in the given location
func SlotTime(date string, slot Slot, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+"T15:04", date+"T"+string(slot), loc)
}

// ValidSlot reports whether the slot appears in the catalog
func ValidSlot(s Slot) bool {
	for _, slot := range SlotCatalog {
		if s == slot {
			return true
		}
	}
	return false
}
