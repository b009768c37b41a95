package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"studyspace-client/internal/adapters/remote"
	"studyspace-client/internal/adapters/storage"
	"studyspace-client/internal/config"
	"studyspace-client/internal/core/domain"
	"studyspace-client/internal/core/services"
	"studyspace-client/internal/pkg/logger"
)

const usage = `Study Space booking client

Usage: studyspace <command> [flags]

Commands:
  login      Sign in (-user, -pass)
  register   Create an account (-first, -last, -user, -email, -pass, -confirm)
  rooms      List available rooms (-floor, -date, -time)
  book       Book a room (-room, -floor, -date, -time, -name)
  bookings   List your active bookings (expired ones are swept)
  cancel     Cancel a booking (-id)
  export     Export active bookings to .xlsx (-out)
  logout     Clear the local session
  whoami     Show the current session
`

// app bundles the wired controllers for the command handlers
type app struct {
	cfg          *config.Config
	sessions     *services.SessionService
	bookings     *services.BookingService
	availability *services.AvailabilityService
	slots        *services.SlotService
	export       *services.ExportService
}

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.IsDev())
	defer zlog.Sync()

	store := storage.NewFileStore(cfg.Client.SessionFile)
	client := remote.NewClient(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout})

	availability := services.NewAvailabilityService(client, zlog)
	a := &app{
		cfg:          cfg,
		sessions:     services.NewSessionService(client, store, zlog),
		bookings:     services.NewBookingService(client, store, availability, cfg.Client.CancelGrace, zlog),
		availability: availability,
		slots:        services.NewSlotService(),
		export:       services.NewExportService(),
	}

	ctx := context.Background()

	var runErr error
	switch os.Args[1] {
	case "login":
		runErr = a.login(ctx, os.Args[2:])
	case "register":
		runErr = a.register(ctx, os.Args[2:])
	case "rooms":
		runErr = a.rooms(ctx, os.Args[2:])
	case "book":
		runErr = a.book(ctx, os.Args[2:])
	case "bookings":
		runErr = a.list(ctx)
	case "cancel":
		runErr = a.cancel(ctx, os.Args[2:])
	case "export":
		runErr = a.exportBookings(ctx, os.Args[2:])
	case "logout":
		runErr = a.logout()
	case "whoami":
		runErr = a.whoami()
	default:
		fmt.Print(usage)
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Println(domain.UserMessage(runErr, "Something went wrong. Please try again."))
		os.Exit(1)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "username or email")
	pass := fs.String("pass", "", "password")
	fs.Parse(args)

	session, err := a.sessions.Login(ctx, *user, *pass)
	if err != nil {
		return err
	}

	name := session.FullName
	if name == "" {
		name = session.Username
	}
	fmt.Printf("Login successful! Welcome, %s.\n", name)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	user := fs.String("user", "", "username")
	email := fs.String("email", "", "email address")
	pass := fs.String("pass", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	fs.Parse(args)

	err := a.sessions.Register(ctx, remote.RegisterInput{
		FirstName:       *first,
		LastName:        *last,
		Username:        *user,
		Email:           *email,
		Password:        *pass,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		return err
	}

	fmt.Println("Registration successful! You can log in now.")
	return nil
}

// queryFlags parses floor/date/time with per-screen defaults recomputed
// from the wall clock
func (a *app) queryFlags(name string, args []string) (domain.BookingQuery, error) {
	now := time.Now()
	defaults := a.slots.DefaultQuery(now)

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	floor := fs.String("floor", string(defaults.Floor), "floor (2, 3 or 4)")
	date := fs.String("date", defaults.Date, "date (YYYY-MM-DD, up to 14 days ahead)")
	slot := fs.String("time", string(defaults.Time), "time slot (HH:MM)")
	fs.Parse(args)

	query := domain.BookingQuery{
		Floor: domain.Floor(*floor),
		Date:  *date,
		Time:  domain.Slot(*slot),
	}
	if !query.Floor.Valid() {
		return query, fmt.Errorf("floor must be one of 2, 3, 4")
	}
	if !a.slots.InWindow(query.Date, now) {
		return query, fmt.Errorf("date must be within the next %d days", domain.BookingWindowDays)
	}
	if !domain.ValidSlot(query.Time) {
		return query, fmt.Errorf("time must be a half-hour slot between %s and %s",
			domain.SlotCatalog[0], domain.SlotCatalog[len(domain.SlotCatalog)-1])
	}
	return query, nil
}

func (a *app) rooms(ctx context.Context, args []string) error {
	query, err := a.queryFlags("rooms", args)
	if err != nil {
		return err
	}

	rooms, err := a.availability.Fetch(ctx, query)
	if err != nil {
		return err
	}

	if len(rooms) == 0 {
		fmt.Println("No rooms available.")
		return nil
	}
	fmt.Printf("Available on floor %s, %s at %s:\n", query.Floor, query.Date, query.Time)
	for _, room := range rooms {
		fmt.Printf("  %s\n", room.DisplayLabel)
	}
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	now := time.Now()
	defaults := a.slots.DefaultQuery(now)

	fs := flag.NewFlagSet("book", flag.ExitOnError)
	room := fs.String("room", "", "room to book")
	floor := fs.String("floor", string(defaults.Floor), "floor (2, 3 or 4)")
	date := fs.String("date", defaults.Date, "date (YYYY-MM-DD)")
	slot := fs.String("time", string(defaults.Time), "time slot (HH:MM)")
	name := fs.String("name", "", "your name (used when not logged in)")
	fs.Parse(args)

	confirmation, err := a.bookings.Submit(ctx, domain.BookingDraft{
		Room:  *room,
		Floor: domain.Floor(*floor),
		Time:  domain.Slot(*slot),
		Date:  *date,
		Name:  *name,
	})
	if err != nil {
		return err
	}

	fmt.Println("Booking Successful!")
	fmt.Printf("  Name: %s\n  Date: %s\n  Time: %s\n  Room: %s\n",
		confirmation.Name, confirmation.Date, confirmation.Time, confirmation.Room)
	return nil
}

func (a *app) list(ctx context.Context) error {
	active, err := a.bookings.Load(ctx)
	if err != nil {
		return err
	}
	// Exiting must not abort the background sweep of expired bookings
	defer a.bookings.WaitSweep()

	if len(active) == 0 {
		fmt.Println("No bookings found.")
		return nil
	}
	for _, b := range active {
		name := b.FullName
		if name == "" {
			name = b.UserName
		}
		fmt.Printf("%s  %s | Floor %s | %s at %s | For: %s\n",
			b.ID, b.Room, b.Floor, b.BookingDate, b.BookingTime, name)
	}
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := fs.String("id", "", "booking id")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("booking id is required")
	}

	// The visible list must be loaded first so the item can be tracked
	if _, err := a.bookings.Load(ctx); err != nil {
		return err
	}
	defer a.bookings.WaitSweep()

	if a.bookings.ItemState(*id) != domain.ItemActive {
		fmt.Println("No such booking.")
		return nil
	}
	if err := a.bookings.Cancel(ctx, *id); err != nil {
		return err
	}

	fmt.Println("Booking cancelled.")
	return nil
}

func (a *app) exportBookings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "bookings.xlsx", "output file")
	fs.Parse(args)

	active, err := a.bookings.Load(ctx)
	if err != nil {
		return err
	}
	defer a.bookings.WaitSweep()

	path, err := a.export.ExportXLSX(active, *out)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d bookings to %s\n", len(active), path)
	return nil
}

func (a *app) logout() error {
	if err := a.sessions.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) whoami() error {
	session, err := a.sessions.Current()
	if err != nil {
		return err
	}
	if !session.LoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("Logged in as %s", session.Username)
	if session.FullName != "" {
		fmt.Printf(" (%s)", session.FullName)
	}
	fmt.Println()
	if a.sessions.TokenExpired(time.Now()) {
		fmt.Println("Session token has expired; please log in again.")
	}
	return nil
}
