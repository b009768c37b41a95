package remote

import (
	"context"

	"studyspace-client/internal/core/domain"
)

// AuthAPI covers the credential endpoints of the booking service
type AuthAPI interface {
	Login(ctx context.Context, usernameOrEmail, password string) (LoginResult, error)
	Register(ctx context.Context, input RegisterInput) error
}

// BookingAPI covers the room and booking endpoints of the booking service.
// The token parameter may be empty; implementations must then omit the
// Authorization header rather than send an empty bearer value.
type BookingAPI interface {
	Rooms(ctx context.Context, query domain.BookingQuery) ([]domain.Room, error)
	CreateBooking(ctx context.Context, payload BookingPayload, token string) error
	UserBookings(ctx context.Context, userName, token string) ([]domain.Booking, error)
	DeleteBooking(ctx context.Context, bookingID, token string) error
}

// LoginResult carries the identity returned by a successful login
type LoginResult struct {
	Username string
	FullName string
	Token    string
}

// RegisterInput represents registration input
type RegisterInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// BookingPayload is the body of a booking submission
type BookingPayload struct {
	Room        string       `json:"room"`
	Floor       domain.Floor `json:"floor"`
	BookingTime domain.Slot  `json:"bookingTime"`
	BookingDate string       `json:"bookingDate"`
	UserName    string       `json:"userName"`
	FullName    string       `json:"fullName"`
}
