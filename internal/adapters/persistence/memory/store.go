// Package memory backs the stub server with map-based storage. The stub
// exists for local development and hermetic tests, so nothing here survives
// a restart.
package memory

import (
	"fmt"
	"sync"

	"studyspace-client/internal/core/domain"

	"github.com/google/uuid"
)

// User is a registered account as the booking service stores it
type User struct {
	FirstName    string
	LastName     string
	Username     string
	Email        string
	PasswordHash string
}

// FullName joins the name parts the way the service reports them at login
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// StoredBooking is a booking row with its server-assigned id
type StoredBooking struct {
	ID          string       `json:"_id"`
	Room        string       `json:"room"`
	Floor       domain.Floor `json:"floor"`
	BookingDate string       `json:"bookingDate"`
	BookingTime domain.Slot  `json:"bookingTime"`
	UserName    string       `json:"userName"`
	FullName    string       `json:"fullName"`
}

// Store holds users, rooms and bookings in memory
type Store struct {
	mu       sync.RWMutex
	users    map[string]User // keyed by username
	rooms    map[domain.Floor][]string
	bookings map[string]StoredBooking
}

// NewStore creates a store seeded with roomsPerFloor rooms on each bookable
// floor, labelled like "Room 201".
func NewStore(roomsPerFloor int) *Store {
	rooms := make(map[domain.Floor][]string, len(domain.Floors))
	for _, floor := range domain.Floors {
		labels := make([]string, 0, roomsPerFloor)
		for i := 1; i <= roomsPerFloor; i++ {
			labels = append(labels, fmt.Sprintf("Room %s%02d", floor, i))
		}
		rooms[floor] = labels
	}
	return &Store{
		users:    make(map[string]User),
		rooms:    rooms,
		bookings: make(map[string]StoredBooking),
	}
}

// CreateUser adds a user; reports false when the username or email is taken
func (s *Store) CreateUser(u User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return false
		}
	}
	s.users[u.Username] = u
	return true
}

// FindUser looks a user up by username or email
func (s *Store) FindUser(usernameOrEmail string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[usernameOrEmail]; ok {
		return u, true
	}
	for _, u := range s.users {
		if u.Email == usernameOrEmail {
			return u, true
		}
	}
	return User{}, false
}

// AvailableRooms lists rooms on the floor with no booking for the same
// date and slot
func (s *Store) AvailableRooms(floor domain.Floor, date string, slot domain.Slot) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booked := make(map[string]bool)
	for _, b := range s.bookings {
		if b.Floor == floor && b.BookingDate == date && b.BookingTime == slot {
			booked[b.Room] = true
		}
	}

	available := make([]string, 0, len(s.rooms[floor]))
	for _, room := range s.rooms[floor] {
		if !booked[room] {
			available = append(available, room)
		}
	}
	return available
}

// CountUserBookingsOn counts a user's bookings for one date
func (s *Store) CountUserBookingsOn(userName, date string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, b := range s.bookings {
		if b.UserName == userName && b.BookingDate == date {
			count++
		}
	}
	return count
}

// InsertBooking stores a booking and returns its generated id
func (s *Store) InsertBooking(b StoredBooking) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = uuid.New().String()
	s.bookings[b.ID] = b
	return b.ID
}

// DeleteBooking removes a booking; reports whether it existed
func (s *Store) DeleteBooking(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return false
	}
	delete(s.bookings, id)
	return true
}

// BookingsByUser lists one user's bookings
func (s *Store) BookingsByUser(userName string) []StoredBooking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StoredBooking, 0)
	for _, b := range s.bookings {
		if b.UserName == userName {
			out = append(out, b)
		}
	}
	return out
}
