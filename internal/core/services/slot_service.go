package services

import (
	"time"

	"studyspace-client/internal/core/domain"
)

// SlotService computes which catalog slots are bookable for a date relative
// to "now". Pure calendar math, no I/O.
type SlotService struct{}

// NewSlotService creates a new slot service
func NewSlotService() *SlotService {
	return &SlotService{}
}

// ValidSlotsFor returns the catalog slots that are still bookable on the
// given date. Any date other than today gets the full catalog in order; for
// today only slots starting strictly after now qualify.
func (s *SlotService) ValidSlotsFor(date string, now time.Time) []domain.Slot {
	if date != domain.FormatDate(now) {
		out := make([]domain.Slot, len(domain.SlotCatalog))
		copy(out, domain.SlotCatalog)
		return out
	}

	out := make([]domain.Slot, 0, len(domain.SlotCatalog))
	for _, slot := range domain.SlotCatalog {
		slotTime, err := domain.SlotTime(date, slot, now.Location())
		if err != nil {
			continue
		}
		if slotTime.After(now) {
			out = append(out, slot)
		}
	}
	return out
}

// FirstFutureSlot returns the first bookable slot for the date. When every
// slot of today has already passed it falls back to the catalog head even
// though that slot is in the past; callers rely on always getting a default
// selection rather than an error.
func (s *SlotService) FirstFutureSlot(date string, now time.Time) domain.Slot {
	valid := s.ValidSlotsFor(date, now)
	if len(valid) > 0 {
		return valid[0]
	}
	return domain.SlotCatalog[0]
}

// DateWindow returns the bookable dates from today through today+14,
// inclusive, in order. Recomputed from now on every call; never cached.
func (s *SlotService) DateWindow(now time.Time) []string {
	dates := make([]string, 0, domain.BookingWindowDays+1)
	for i := 0; i <= domain.BookingWindowDays; i++ {
		dates = append(dates, domain.FormatDate(now.AddDate(0, 0, i)))
	}
	return dates
}

// InWindow reports whether the date falls inside the bookable window
func (s *SlotService) InWindow(date string, now time.Time) bool {
	for _, d := range s.DateWindow(now) {
		if d == date {
			return true
		}
	}
	return false
}

// DefaultQuery builds the initial availability query for screen entry:
// lowest bookable floor, today, first future slot.
func (s *SlotService) DefaultQuery(now time.Time) domain.BookingQuery {
	today := domain.FormatDate(now)
	return domain.BookingQuery{
		Floor: domain.FloorTwo,
		Date:  today,
		Time:  s.FirstFutureSlot(today, now),
	}
}
