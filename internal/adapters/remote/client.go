package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studyspace-client/internal/core/domain"
)

// Client talks HTTP to the booking service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a booking service client. A nil httpClient gets the
// default with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

var _ AuthAPI = (*Client)(nil)
var _ BookingAPI = (*Client)(nil)

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Token    string `json:"token"`
}

// Login authenticates against POST /login
func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (LoginResult, error) {
	body, err := c.postJSON(ctx, "/login", loginRequest{
		UsernameOrEmail: usernameOrEmail,
		Password:        password,
	}, "")
	if err != nil {
		return LoginResult{}, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return LoginResult{}, fmt.Errorf("%w: malformed login response", domain.ErrTransport)
	}

	return LoginResult{
		Username: resp.Username,
		FullName: resp.FullName,
		Token:    resp.Token,
	}, nil
}

// Register creates an account against POST /register
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	_, err := c.postJSON(ctx, "/register", input, "")
	return err
}

type roomsResponse struct {
	Rooms []struct {
		Room  string       `json:"room"`
		Floor domain.Floor `json:"floor"`
	} `json:"rooms"`
}

// Rooms fetches available rooms for GET /rooms?floor=&time=&date=
func (c *Client) Rooms(ctx context.Context, query domain.BookingQuery) ([]domain.Room, error) {
	params := url.Values{}
	params.Set("floor", string(query.Floor))
	params.Set("time", string(query.Time))
	params.Set("date", query.Date)

	body, err := c.get(ctx, "/rooms?"+params.Encode(), "")
	if err != nil {
		return nil, err
	}

	var resp roomsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed rooms response", domain.ErrTransport)
	}

	rooms := make([]domain.Room, 0, len(resp.Rooms))
	for _, r := range resp.Rooms {
		rooms = append(rooms, domain.Room{RoomID: r.Room, DisplayLabel: r.Room})
	}
	return rooms, nil
}

// CreateBooking submits a booking against POST /bookings
func (c *Client) CreateBooking(ctx context.Context, payload BookingPayload, token string) error {
	_, err := c.postJSON(ctx, "/bookings", payload, token)
	return err
}

type bookingsResponse struct {
	Bookings []struct {
		ID          string       `json:"_id"`
		Room        string       `json:"room"`
		Floor       domain.Floor `json:"floor"`
		BookingDate string       `json:"bookingDate"`
		BookingTime domain.Slot  `json:"bookingTime"`
		UserName    string       `json:"userName"`
		FullName    string       `json:"fullName"`
	} `json:"bookings"`
}

// UserBookings lists a user's bookings from GET /user_bookings?userName=
func (c *Client) UserBookings(ctx context.Context, userName, token string) ([]domain.Booking, error) {
	params := url.Values{}
	params.Set("userName", userName)

	body, err := c.get(ctx, "/user_bookings?"+params.Encode(), token)
	if err != nil {
		return nil, err
	}

	var resp bookingsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed bookings response", domain.ErrTransport)
	}

	bookings := make([]domain.Booking, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		bookings = append(bookings, domain.Booking{
			ID:          b.ID,
			Room:        b.Room,
			Floor:       b.Floor,
			BookingDate: b.BookingDate,
			BookingTime: b.BookingTime,
			UserName:    b.UserName,
			FullName:    b.FullName,
		})
	}
	return bookings, nil
}

// DeleteBooking removes a booking via DELETE /bookings/{id}
func (c *Client) DeleteBooking(ctx context.Context, bookingID, token string) error {
	_, err := c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(bookingID), nil, token)
	return err
}

func (c *Client) get(ctx context.Context, path, token string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, token)
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, token string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, data, token)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, token string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// No token means no header, never an empty bearer value
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(respBody),
		}
	}

	return respBody, nil
}

// serverMessage pulls the human-readable message out of an error body. Auth
// endpoints use "message", the rest use "error".
func serverMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
