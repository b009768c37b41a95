package services

import (
	"testing"
	"time"

	"studyspace-client/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidSlotsFor_FutureDateReturnsFullCatalog(t *testing.T) {
	s := NewSlotService()
	now := time.Date(2024, 5, 15, 11, 15, 0, 0, time.UTC)

	slots := s.ValidSlotsFor("2024-05-16", now)

	assert.Equal(t, domain.SlotCatalog, slots)
}

func TestValidSlotsFor_TodayReturnsSuffixAfterNow(t *testing.T) {
	s := NewSlotService()
	now := time.Date(2024, 5, 15, 11, 15, 0, 0, time.UTC)

	slots := s.ValidSlotsFor("2024-05-15", now)

	assert.NotEmpty(t, slots)
	assert.Equal(t, domain.Slot("11:30"), slots[0])
	// Exactly the catalog suffix, order preserved
	assert.Equal(t, domain.SlotCatalog[len(domain.SlotCatalog)-len(slots):], slots)
}

func TestValidSlotsFor_SlotStartingExactlyNowIsExcluded(t *testing.T) {
	s := NewSlotService()
	now := time.Date(2024, 5, 15, 11, 30, 0, 0, time.UTC)

	slots := s.ValidSlotsFor("2024-05-15", now)

	assert.Equal(t, domain.Slot("12:00"), slots[0], "a slot starting at now has already begun")
}

func TestFirstFutureSlot_FallsBackToCatalogHead(t *testing.T) {
	s := NewSlotService()
	// Past the last slot of the day
	now := time.Date(2024, 5, 15, 22, 0, 0, 0, time.UTC)

	slot := s.FirstFutureSlot("2024-05-15", now)

	assert.Equal(t, domain.SlotCatalog[0], slot, "degraded default, not an error")
}

func TestFirstFutureSlot_FutureDateStartsAtCatalogHead(t *testing.T) {
	s := NewSlotService()
	now := time.Date(2024, 5, 15, 11, 15, 0, 0, time.UTC)

	assert.Equal(t, domain.Slot("08:00"), s.FirstFutureSlot("2024-05-20", now))
}

func TestDateWindow_CoversTodayThroughFourteenDays(t *testing.T) {
	s := NewSlotService()
	now := time.Date(2024, 5, 15, 11, 15, 0, 0, time.UTC)

	window := s.DateWindow(now)

	assert.Len(t, window, domain.BookingWindowDays+1)
	assert.Equal(t, "2024-05-15", window[0])
	assert.Equal(t, "2024-05-29", window[len(window)-1])
}

func TestInWindow(t *testing.T) {
	s := NewSlotService()
	now := time.Date(2024, 5, 15, 11, 15, 0, 0, time.UTC)

	assert.True(t, s.InWindow("2024-05-15", now))
	assert.True(t, s.InWindow("2024-05-29", now))
	assert.False(t, s.InWindow("2024-05-30", now))
	assert.False(t, s.InWindow("2024-05-14", now))
}

func TestDefaultQuery(t *testing.T) {
	s := NewSlotService()
	now := time.Date(2024, 5, 15, 11, 15, 0, 0, time.UTC)

	query := s.DefaultQuery(now)

	assert.Equal(t, domain.FloorTwo, query.Floor)
	assert.Equal(t, "2024-05-15", query.Date)
	assert.Equal(t, domain.Slot("11:30"), query.Time)
}
