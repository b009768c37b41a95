package services

import (
	"context"
	"sync"

	"studyspace-client/internal/adapters/remote"
	"studyspace-client/internal/core/domain"

	"go.uber.org/zap"
)

// mockBookingAPI implements remote.BookingAPI with pluggable behavior and
// call counting
type mockBookingAPI struct {
	mu sync.Mutex

	roomsFn  func(ctx context.Context, query domain.BookingQuery) ([]domain.Room, error)
	createFn func(ctx context.Context, payload remote.BookingPayload, token string) error
	listFn   func(ctx context.Context, userName, token string) ([]domain.Booking, error)
	deleteFn func(ctx context.Context, bookingID, token string) error

	roomsCalls   int
	createCalls  int
	deleteCalls  int
	deletedIDs   []string
	lastPayload  remote.BookingPayload
	lastRoomsQry domain.BookingQuery
}

func (m *mockBookingAPI) Rooms(ctx context.Context, query domain.BookingQuery) ([]domain.Room, error) {
	m.mu.Lock()
	m.roomsCalls++
	m.lastRoomsQry = query
	fn := m.roomsFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, query)
	}
	return []domain.Room{}, nil
}

func (m *mockBookingAPI) CreateBooking(ctx context.Context, payload remote.BookingPayload, token string) error {
	m.mu.Lock()
	m.createCalls++
	m.lastPayload = payload
	fn := m.createFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, payload, token)
	}
	return nil
}

func (m *mockBookingAPI) UserBookings(ctx context.Context, userName, token string) ([]domain.Booking, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userName, token)
	}
	return nil, nil
}

func (m *mockBookingAPI) DeleteBooking(ctx context.Context, bookingID, token string) error {
	m.mu.Lock()
	m.deleteCalls++
	m.deletedIDs = append(m.deletedIDs, bookingID)
	fn := m.deleteFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, bookingID, token)
	}
	return nil
}

func (m *mockBookingAPI) deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.deletedIDs))
	copy(out, m.deletedIDs)
	return out
}

func (m *mockBookingAPI) counts() (rooms, create, deletes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roomsCalls, m.createCalls, m.deleteCalls
}

// mockAuthAPI implements remote.AuthAPI
type mockAuthAPI struct {
	loginFn    func(ctx context.Context, usernameOrEmail, password string) (remote.LoginResult, error)
	registerFn func(ctx context.Context, input remote.RegisterInput) error

	loginCalls    int
	registerCalls int
}

func (m *mockAuthAPI) Login(ctx context.Context, usernameOrEmail, password string) (remote.LoginResult, error) {
	m.loginCalls++
	if m.loginFn != nil {
		return m.loginFn(ctx, usernameOrEmail, password)
	}
	return remote.LoginResult{}, nil
}

func (m *mockAuthAPI) Register(ctx context.Context, input remote.RegisterInput) error {
	m.registerCalls++
	if m.registerFn != nil {
		return m.registerFn(ctx, input)
	}
	return nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
