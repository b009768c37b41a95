package domain

// Floor represents a bookable floor in the building
type Floor string

const (
	FloorTwo   Floor = "2"
	FloorThree Floor = "3"
	FloorFour  Floor = "4"
)

// Floors lists the bookable floors in display order
var Floors = []Floor{FloorTwo, FloorThree, FloorFour}

// Valid reports whether the floor is one of the bookable floors
func (f Floor) Valid() bool {
	for _, fl := range Floors {
		if f == fl {
			return true
		}
	}
	return false
}

// Session represents the authenticated identity. All fields are empty when
// logged out; they are populated and cleared together.
type Session struct {
	Username string
	FullName string
	Token    string
}

// LoggedIn reports whether the session carries an authenticated user
func (s Session) LoggedIn() bool {
	return s.Username != ""
}

// Room represents an available room as returned by the remote service.
// Appearing in a response is what makes a room available; there is no
// separate status field.
type Room struct {
	RoomID       string
	DisplayLabel string
}

// BookingQuery drives one availability lookup
type BookingQuery struct {
	Floor Floor
	Date  string // YYYY-MM-DD
	Time  Slot
}

// Booking is a point-in-time copy of a server-owned booking
type Booking struct {
	ID          string
	Room        string
	Floor       Floor
	BookingDate string
	BookingTime Slot
	UserName    string
	FullName    string
}

// BookingDraft is an unsubmitted selection held only in UI state
type BookingDraft struct {
	Room  string
	Floor Floor
	Time  Slot
	Date  string // YYYY-MM-DD
	Name  string // manual fallback when the session has no full name
}

// Confirmation echoes the fields of a successful booking submission
type Confirmation struct {
	Room string
	Date string
	Time Slot
	Name string
}

// ItemState tracks a booking list item through the cancel workflow
type ItemState string

const (
	ItemActive   ItemState = "active"
	ItemDeleting ItemState = "deleting"
	ItemRemoved  ItemState = "removed"
)
