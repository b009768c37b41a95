package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"studyspace-client/internal/adapters/remote"
	"studyspace-client/internal/adapters/storage"
	"studyspace-client/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingService(api *mockBookingAPI, session domain.Session) (*BookingService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	store.Write(session)
	svc := NewBookingService(api, store, nil, 0, testLogger())
	return svc, store
}

func booking(id, date string, slot domain.Slot) domain.Booking {
	return domain.Booking{
		ID:          id,
		Room:        "Room 201",
		Floor:       domain.FloorTwo,
		BookingDate: date,
		BookingTime: slot,
		UserName:    "jdoe",
	}
}

func TestReconcile_IsAPartition(t *testing.T) {
	svc, _ := newBookingService(&mockBookingAPI{}, domain.Session{Username: "jdoe", Token: "tok"})
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	input := []domain.Booking{
		booking("a", "2024-05-15", "09:00"),
		booking("b", "2024-05-15", "14:00"),
		booking("c", "2024-05-14", "17:00"),
		booking("d", "2024-05-20", "08:00"),
	}

	active, expired := svc.Reconcile(input, now)

	assert.Len(t, active, 2)
	assert.Len(t, expired, 2)
	assert.Equal(t, len(input), len(active)+len(expired))
	assert.ElementsMatch(t, []string{"a", "c"}, expired)

	for _, b := range active {
		assert.NotContains(t, expired, b.ID)
	}
}

func TestReconcile_ExpiryIsRelativeToNow(t *testing.T) {
	svc, _ := newBookingService(&mockBookingAPI{}, domain.Session{Username: "jdoe", Token: "tok"})
	b := booking("x", "2024-01-01", "09:00")

	dayAfter := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	_, expired := svc.Reconcile([]domain.Booking{b}, dayAfter)
	assert.Equal(t, []string{"x"}, expired)

	dayBefore := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	active, expired := svc.Reconcile([]domain.Booking{b}, dayBefore)
	assert.Empty(t, expired)
	require.Len(t, active, 1)
	assert.Equal(t, "x", active[0].ID)
}

func TestLoad_RendersActiveAndSweepsExpired(t *testing.T) {
	api := &mockBookingAPI{
		listFn: func(ctx context.Context, userName, token string) ([]domain.Booking, error) {
			return []domain.Booking{
				booking("old", "2020-01-01", "09:00"),
				booking("new", "2099-01-01", "09:00"),
			}, nil
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})

	active, err := svc.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "new", active[0].ID)
	assert.Equal(t, domain.ItemActive, svc.ItemState("new"))

	// The expired booking gets deleted in the background
	require.Eventually(t, func() bool {
		_, _, deletes := api.counts()
		return deletes == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"old"}, api.deleted())
}

func TestLoad_SweepFailureDoesNotHideActiveList(t *testing.T) {
	api := &mockBookingAPI{
		listFn: func(ctx context.Context, userName, token string) ([]domain.Booking, error) {
			return []domain.Booking{
				booking("old", "2020-01-01", "09:00"),
				booking("new", "2099-01-01", "09:00"),
			}, nil
		},
		deleteFn: func(ctx context.Context, bookingID, token string) error {
			return errors.New("boom")
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})

	active, err := svc.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "new", active[0].ID)
}

func TestWaitSweep_BlocksUntilBackgroundDeletesFinish(t *testing.T) {
	var swept atomic.Bool
	api := &mockBookingAPI{
		listFn: func(ctx context.Context, userName, token string) ([]domain.Booking, error) {
			return []domain.Booking{
				booking("old", "2020-01-01", "09:00"),
				booking("new", "2099-01-01", "09:00"),
			}, nil
		},
		deleteFn: func(ctx context.Context, bookingID, token string) error {
			// Slow server: the sweep outlives Load
			time.Sleep(30 * time.Millisecond)
			swept.Store(true)
			return nil
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	// Load returns before the delete lands; a caller that exits here would
	// abort it, so WaitSweep must hold until it completes
	svc.WaitSweep()
	assert.True(t, swept.Load())
	assert.Equal(t, []string{"old"}, api.deleted())
}

func TestWaitSweep_ReturnsImmediatelyWithNothingExpired(t *testing.T) {
	api := &mockBookingAPI{
		listFn: func(ctx context.Context, userName, token string) ([]domain.Booking, error) {
			return []domain.Booking{booking("new", "2099-01-01", "09:00")}, nil
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	svc.WaitSweep()
	_, _, deletes := api.counts()
	assert.Zero(t, deletes)
}

func TestLoad_RequiresSession(t *testing.T) {
	svc, _ := newBookingService(&mockBookingAPI{}, domain.Session{})

	_, err := svc.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSweepExpired_ReportsPerItemResults(t *testing.T) {
	api := &mockBookingAPI{
		deleteFn: func(ctx context.Context, bookingID, token string) error {
			if bookingID == "bad" {
				return errors.New("boom")
			}
			return nil
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})

	results := svc.SweepExpired(context.Background(), []string{"a", "bad", "b"}, "tok")

	require.Len(t, results, 3)
	byID := make(map[string]error, len(results))
	for _, r := range results {
		byID[r.BookingID] = r.Err
	}
	assert.NoError(t, byID["a"])
	assert.NoError(t, byID["b"])
	assert.Error(t, byID["bad"])
	assert.ElementsMatch(t, []string{"a", "bad", "b"}, api.deleted())
}

func TestCancel_UnknownIDIsNoOp(t *testing.T) {
	api := &mockBookingAPI{
		listFn: func(ctx context.Context, userName, token string) ([]domain.Booking, error) {
			return []domain.Booking{booking("keep", "2099-01-01", "09:00")}, nil
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	// An id absent from the loaded list reads as removed; callers branch on
	// this to tell the user nothing was cancelled
	assert.Equal(t, domain.ItemRemoved, svc.ItemState("nope"))

	err = svc.Cancel(context.Background(), "nope")

	assert.NoError(t, err)
	assert.Len(t, svc.ActiveBookings(), 1)
	_, _, deletes := api.counts()
	assert.Zero(t, deletes)
}

func TestCancel_RemovesItemOnSuccess(t *testing.T) {
	api := &mockBookingAPI{
		listFn: func(ctx context.Context, userName, token string) ([]domain.Booking, error) {
			return []domain.Booking{
				booking("going", "2099-01-01", "09:00"),
				booking("staying", "2099-01-01", "10:00"),
			}, nil
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), "going")

	require.NoError(t, err)
	assert.Equal(t, domain.ItemRemoved, svc.ItemState("going"))
	active := svc.ActiveBookings()
	require.Len(t, active, 1)
	assert.Equal(t, "staying", active[0].ID)
	assert.Equal(t, []string{"going"}, api.deleted())
}

func TestCancel_FailureRevertsToActive(t *testing.T) {
	api := &mockBookingAPI{
		listFn: func(ctx context.Context, userName, token string) ([]domain.Booking, error) {
			return []domain.Booking{booking("stuck", "2099-01-01", "09:00")}, nil
		},
		deleteFn: func(ctx context.Context, bookingID, token string) error {
			return errors.New("boom")
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), "stuck")

	assert.Error(t, err)
	// Never stranded in deleting
	assert.Equal(t, domain.ItemActive, svc.ItemState("stuck"))
	assert.Len(t, svc.ActiveBookings(), 1)
}

func TestSubmit_NoRoomIsValidationErrorWithoutNetwork(t *testing.T) {
	api := &mockBookingAPI{}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})

	_, err := svc.Submit(context.Background(), domain.BookingDraft{
		Floor: domain.FloorTwo,
		Date:  "2099-01-01",
		Time:  "09:00",
	})

	assert.ErrorIs(t, err, domain.ErrNoRoomSelected)
	_, creates, _ := api.counts()
	assert.Zero(t, creates)
}

func TestSubmit_UsesSessionFullName(t *testing.T) {
	api := &mockBookingAPI{}
	svc, _ := newBookingService(api, domain.Session{
		Username: "jdoe",
		FullName: "Jane Doe",
		Token:    "tok",
	})

	confirmation, err := svc.Submit(context.Background(), domain.BookingDraft{
		Room:  "Room 201",
		Floor: domain.FloorTwo,
		Date:  "2099-01-01",
		Time:  "09:00",
		Name:  "Typed Name",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", confirmation.Name)
	assert.Equal(t, "Jane Doe", api.lastPayload.FullName)
	assert.Equal(t, "jdoe", api.lastPayload.UserName)
}

func TestSubmit_UndefinedSentinelFallsBackToManualName(t *testing.T) {
	api := &mockBookingAPI{}
	// The store normalizes the legacy sentinel on read
	svc, _ := newBookingService(api, domain.Session{
		Username: "jdoe",
		FullName: "undefined",
		Token:    "tok",
	})

	confirmation, err := svc.Submit(context.Background(), domain.BookingDraft{
		Room:  "Room 201",
		Floor: domain.FloorTwo,
		Date:  "2099-01-01",
		Time:  "09:00",
		Name:  "Typed Name",
	})

	require.NoError(t, err)
	assert.Equal(t, "Typed Name", confirmation.Name)
	assert.NotEqual(t, "undefined", api.lastPayload.FullName)
	assert.Equal(t, "Typed Name", api.lastPayload.FullName)
}

func TestSubmit_RejectsSecondSubmissionWhilePending(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &mockBookingAPI{
		createFn: func(ctx context.Context, payload remote.BookingPayload, token string) error {
			close(entered)
			<-release
			return nil
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})

	draft := domain.BookingDraft{
		Room:  "Room 201",
		Floor: domain.FloorTwo,
		Date:  "2099-01-01",
		Time:  "09:00",
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), draft)
		firstDone <- err
	}()

	<-entered
	_, err := svc.Submit(context.Background(), draft)
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)

	close(release)
	assert.NoError(t, <-firstDone)
}

func TestSubmit_FailureSurfacesServerMessage(t *testing.T) {
	api := &mockBookingAPI{
		createFn: func(ctx context.Context, payload remote.BookingPayload, token string) error {
			return &domain.ServiceError{StatusCode: 400, Message: "Daily booking limit reached (4)."}
		},
	}
	svc, _ := newBookingService(api, domain.Session{Username: "jdoe", Token: "tok"})

	_, err := svc.Submit(context.Background(), domain.BookingDraft{
		Room:  "Room 201",
		Floor: domain.FloorTwo,
		Date:  "2099-01-01",
		Time:  "09:00",
	})

	require.Error(t, err)
	assert.Equal(t, "Daily booking limit reached (4).", domain.UserMessage(err, "fallback"))
}

func TestSubmit_RefreshesAvailabilityOnSuccess(t *testing.T) {
	api := &mockBookingAPI{}
	store := storage.NewMemoryStore()
	store.Write(domain.Session{Username: "jdoe", Token: "tok"})
	availability := NewAvailabilityService(api, testLogger())
	svc := NewBookingService(api, store, availability, 0, testLogger())

	_, err := svc.Submit(context.Background(), domain.BookingDraft{
		Room:  "Room 201",
		Floor: domain.FloorTwo,
		Date:  "2099-01-01",
		Time:  "09:00",
	})

	require.NoError(t, err)
	rooms, _, _ := api.counts()
	assert.Equal(t, 1, rooms)
	assert.Equal(t, domain.BookingQuery{
		Floor: domain.FloorTwo,
		Date:  "2099-01-01",
		Time:  "09:00",
	}, api.lastRoomsQry)
}
