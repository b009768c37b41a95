package services

import (
	"context"
	"sync"
	"sync/atomic"

	"studyspace-client/internal/adapters/remote"
	"studyspace-client/internal/core/domain"

	"go.uber.org/zap"
)

// AvailabilityService fetches rooms matching a floor/date/time query. Every
// filter change triggers a fresh network read; there is no cache. Each fetch
// carries a generation number so a slow response can never overwrite the
// state left by a newer query.
type AvailabilityService struct {
	api remote.BookingAPI
	log *zap.Logger

	generation uint64

	mu    sync.Mutex
	rooms []domain.Room
	err   error
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(api remote.BookingAPI, log *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		api: api,
		log: log,
	}
}

// Fetch queries available rooms. Failures come back as an empty room list
// plus the error; they never panic past this boundary. The internal snapshot
// is only updated when this call is still the newest one issued.
func (s *AvailabilityService) Fetch(ctx context.Context, query domain.BookingQuery) ([]domain.Room, error) {
	gen := atomic.AddUint64(&s.generation, 1)

	rooms, err := s.api.Rooms(ctx, query)
	if err != nil {
		s.log.Debug("room fetch failed",
			zap.String("floor", string(query.Floor)),
			zap.String("date", query.Date),
			zap.String("time", string(query.Time)),
			zap.Error(err))
		rooms = []domain.Room{}
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer query has been issued since this one started; its response
	// owns the snapshot now.
	if gen != atomic.LoadUint64(&s.generation) {
		s.log.Debug("discarding stale room response", zap.Uint64("generation", gen))
		return rooms, err
	}

	s.rooms = rooms
	s.err = err
	return rooms, err
}

// Snapshot returns the rooms and error left by the most recent fetch
func (s *AvailabilityService) Snapshot() ([]domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms, s.err
}
