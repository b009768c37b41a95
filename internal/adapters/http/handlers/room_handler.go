package handlers

import (
	"studyspace-client/internal/adapters/persistence/memory"
	"studyspace-client/internal/core/domain"
	"studyspace-client/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RoomHandler handles the availability endpoint
type RoomHandler struct {
	store *memory.Store
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(store *memory.Store) *RoomHandler {
	return &RoomHandler{store: store}
}

// Rooms handles GET /rooms?floor=&time=&date=
func (h *RoomHandler) Rooms(c *fiber.Ctx) error {
	floor := c.Query("floor")
	timeSlot := c.Query("time")
	date := c.Query("date")

	// Floor 1 has no bookable rooms
	if floor == "1" {
		return c.JSON(fiber.Map{"rooms": []fiber.Map{}})
	}
	if floor == "" || timeSlot == "" || date == "" {
		return response.BadRequest(c, "Missing floor, time, or date!")
	}

	available := h.store.AvailableRooms(domain.Floor(floor), date, domain.Slot(timeSlot))

	rooms := make([]fiber.Map, 0, len(available))
	for _, room := range available {
		rooms = append(rooms, fiber.Map{"room": room, "floor": floor})
	}
	return c.JSON(fiber.Map{"rooms": rooms})
}
