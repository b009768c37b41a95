package services

import (
	"context"
	"sync"
	"time"

	"studyspace-client/internal/adapters/remote"
	"studyspace-client/internal/adapters/storage"
	"studyspace-client/internal/core/domain"

	"go.uber.org/zap"
)

// BookingService owns the booking lifecycle: loading the user's list with
// expiry reconciliation, submitting new bookings and cancelling existing
// ones. The server stays authoritative; this only holds the point-in-time
// copy the presentation layer renders.
type BookingService struct {
	api          remote.BookingAPI
	sessions     storage.SessionStore
	availability *AvailabilityService
	log          *zap.Logger

	// grace is the pause between marking an item deleting and issuing the
	// delete request. UX breathing room, not a correctness requirement.
	grace time.Duration
	now   func() time.Time

	// sweepWG tracks background sweeps launched by Load so short-lived
	// callers can wait them out before exiting
	sweepWG sync.WaitGroup

	mu         sync.Mutex
	active     []domain.Booking
	states     map[string]domain.ItemState
	submitting bool
}

// NewBookingService creates a new booking service
func NewBookingService(
	api remote.BookingAPI,
	sessions storage.SessionStore,
	availability *AvailabilityService,
	grace time.Duration,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		api:          api,
		sessions:     sessions,
		availability: availability,
		log:          log,
		grace:        grace,
		now:          time.Now,
		states:       make(map[string]domain.ItemState),
	}
}

// DeleteResult reports the outcome of one delete in an expiry sweep
type DeleteResult struct {
	BookingID string
	Err       error
}

// Reconcile partitions bookings into the still-active ones and the ids of
// those whose date+time is strictly in the past. Every input booking lands
// in exactly one side.
func (s *BookingService) Reconcile(bookings []domain.Booking, now time.Time) (active []domain.Booking, expiredIDs []string) {
	active = make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		slotTime, err := domain.SlotTime(b.BookingDate, b.BookingTime, now.Location())
		if err != nil {
			// Unparseable date/time cannot be proven expired; keep it visible
			active = append(active, b)
			continue
		}
		if slotTime.After(now) {
			active = append(active, b)
		} else {
			expiredIDs = append(expiredIDs, b.ID)
		}
	}
	return active, expiredIDs
}

// Load fetches the user's bookings, reconciles expiry and returns the
// active list. Expired bookings are swept from the server in the background;
// sweep failures never block or hide the active list.
func (s *BookingService) Load(ctx context.Context) ([]domain.Booking, error) {
	session, err := s.sessions.Read()
	if err != nil {
		return nil, err
	}
	if !session.LoggedIn() {
		return nil, domain.ErrUnauthorized
	}

	bookings, err := s.api.UserBookings(ctx, session.Username, session.Token)
	if err != nil {
		return nil, err
	}

	active, expiredIDs := s.Reconcile(bookings, s.now())

	s.mu.Lock()
	s.active = active
	s.states = make(map[string]domain.ItemState, len(active))
	for _, b := range active {
		s.states[b.ID] = domain.ItemActive
	}
	s.mu.Unlock()

	if len(expiredIDs) > 0 {
		token := session.Token
		s.sweepWG.Add(1)
		go func() {
			defer s.sweepWG.Done()
			results := s.SweepExpired(context.Background(), expiredIDs, token)
			for _, r := range results {
				if r.Err != nil {
					s.log.Debug("expiry sweep delete failed",
						zap.String("booking_id", r.BookingID),
						zap.Error(r.Err))
				}
			}
		}()
	}

	return active, nil
}

// WaitSweep blocks until every background sweep started by Load has
// finished. A process that exits right after Load would otherwise abort
// the deletes still in flight; long-lived callers never need this.
func (s *BookingService) WaitSweep() {
	s.sweepWG.Wait()
}

// SweepExpired deletes expired bookings concurrently. Best effort: each
// delete is independent and a failure is reported in its result rather than
// aborting the batch.
func (s *BookingService) SweepExpired(ctx context.Context, bookingIDs []string, token string) []DeleteResult {
	results := make([]DeleteResult, len(bookingIDs))

	var wg sync.WaitGroup
	for i, id := range bookingIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			err := s.api.DeleteBooking(ctx, id, token)
			results[i] = DeleteResult{BookingID: id, Err: err}
		}(i, id)
	}
	wg.Wait()

	return results
}

// Cancel deletes one booking from the visible list. The item enters the
// deleting state immediately, the request goes out after the grace delay,
// and a failed delete quietly puts the item back (the original client never
// surfaced this; the returned error lets a caller do better).
func (s *BookingService) Cancel(ctx context.Context, bookingID string) error {
	s.mu.Lock()
	state, known := s.states[bookingID]
	if !known || state != domain.ItemActive {
		// Unknown or already deleting: nothing to do, nothing to break
		s.mu.Unlock()
		return nil
	}
	s.states[bookingID] = domain.ItemDeleting
	s.mu.Unlock()

	if s.grace > 0 {
		select {
		case <-time.After(s.grace):
		case <-ctx.Done():
			s.revert(bookingID)
			return ctx.Err()
		}
	}

	session, err := s.sessions.Read()
	if err != nil {
		s.revert(bookingID)
		return err
	}

	if err := s.api.DeleteBooking(ctx, bookingID, session.Token); err != nil {
		s.log.Debug("cancel failed, reverting item",
			zap.String("booking_id", bookingID),
			zap.Error(err))
		s.revert(bookingID)
		return err
	}

	s.mu.Lock()
	s.states[bookingID] = domain.ItemRemoved
	kept := s.active[:0]
	for _, b := range s.active {
		if b.ID != bookingID {
			kept = append(kept, b)
		}
	}
	s.active = kept
	s.mu.Unlock()

	return nil
}

func (s *BookingService) revert(bookingID string) {
	s.mu.Lock()
	if s.states[bookingID] == domain.ItemDeleting {
		s.states[bookingID] = domain.ItemActive
	}
	s.mu.Unlock()
}

// Submit validates and posts a booking draft. At most one submission runs
// at a time; while one is pending further submits are rejected. On success
// availability is re-fetched so the booked room drops out of the list.
func (s *BookingService) Submit(ctx context.Context, draft domain.BookingDraft) (domain.Confirmation, error) {
	// 1. Validate before touching the network
	if draft.Room == "" {
		return domain.Confirmation{}, domain.ErrNoRoomSelected
	}

	// 2. Reject a second submission while one is pending
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return domain.Confirmation{}, domain.ErrSubmitInFlight
	}
	s.submitting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	// 3. Resolve the display name; the store already normalizes the legacy
	// "undefined" sentinel to an absent value
	session, err := s.sessions.Read()
	if err != nil {
		return domain.Confirmation{}, err
	}
	name := session.FullName
	if name == "" {
		name = draft.Name
	}

	// 4. Post the booking
	payload := remote.BookingPayload{
		Room:        draft.Room,
		Floor:       draft.Floor,
		BookingTime: draft.Time,
		BookingDate: draft.Date,
		UserName:    session.Username,
		FullName:    name,
	}
	if err := s.api.CreateBooking(ctx, payload, session.Token); err != nil {
		// Draft stays with the caller so the user can retry
		return domain.Confirmation{}, err
	}

	s.log.Info("booking confirmed",
		zap.String("room", draft.Room),
		zap.String("date", draft.Date),
		zap.String("time", string(draft.Time)))

	// 5. The just-booked room must disappear from availability
	if s.availability != nil {
		query := domain.BookingQuery{Floor: draft.Floor, Date: draft.Date, Time: draft.Time}
		if _, err := s.availability.Fetch(ctx, query); err != nil {
			s.log.Debug("post-submit availability refresh failed", zap.Error(err))
		}
	}

	return domain.Confirmation{
		Room: draft.Room,
		Date: draft.Date,
		Time: draft.Time,
		Name: name,
	}, nil
}

// ActiveBookings returns the bookings currently rendered as active
func (s *BookingService) ActiveBookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booking, len(s.active))
	copy(out, s.active)
	return out
}

// ItemState returns the lifecycle state of a list item. Unknown ids read as
// removed.
func (s *BookingService) ItemState(bookingID string) domain.ItemState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[bookingID]; ok {
		return state
	}
	return domain.ItemRemoved
}
