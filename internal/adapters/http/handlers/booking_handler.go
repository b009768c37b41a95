package handlers

import (
	"studyspace-client/internal/adapters/persistence/memory"
	"studyspace-client/internal/core/domain"
	"studyspace-client/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// dailyBookingLimit is how many bookings one user may hold per day
const dailyBookingLimit = 4

// BookingHandler handles the booking endpoints
type BookingHandler struct {
	store *memory.Store
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(store *memory.Store) *BookingHandler {
	return &BookingHandler{store: store}
}

// CreateBookingRequest represents the booking submission body
type CreateBookingRequest struct {
	Room        string       `json:"room"`
	Floor       domain.Floor `json:"floor"`
	BookingTime domain.Slot  `json:"bookingTime"`
	BookingDate string       `json:"bookingDate"`
	UserName    string       `json:"userName"`
	FullName    string       `json:"fullName"`
}

// Create handles POST /bookings
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if h.store.CountUserBookingsOn(req.UserName, req.BookingDate) >= dailyBookingLimit {
		return response.BadRequest(c, "Daily booking limit reached (4).")
	}

	id := h.store.InsertBooking(memory.StoredBooking{
		Room:        req.Room,
		Floor:       req.Floor,
		BookingDate: req.BookingDate,
		BookingTime: req.BookingTime,
		UserName:    req.UserName,
		FullName:    req.FullName,
	})

	return c.JSON(fiber.Map{
		"message":    "Booking added and room updated successfully!",
		"booking_id": id,
	})
}

// UserBookings handles GET /user_bookings?userName=
func (h *BookingHandler) UserBookings(c *fiber.Ctx) error {
	userName := c.Query("userName")
	if userName == "" {
		return response.BadRequest(c, "Missing userName!")
	}

	return c.JSON(fiber.Map{"bookings": h.store.BookingsByUser(userName)})
}

// Delete handles DELETE /bookings/:id
func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.store.DeleteBooking(id) {
		return response.NotFound(c, "Booking not found!")
	}
	return c.JSON(fiber.Map{"message": "Booking deleted!"})
}
