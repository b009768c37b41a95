package handlers

import (
	"strings"

	"studyspace-client/internal/adapters/persistence/memory"
	"studyspace-client/internal/config"
	"studyspace-client/internal/pkg/jwt"
	"studyspace-client/internal/pkg/password"
	"studyspace-client/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles the credential endpoints
type AuthHandler struct {
	store *memory.Store
	cfg   *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store *memory.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		store: store,
		cfg:   cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// Register handles POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		return response.Message(c, fiber.StatusBadRequest, "All fields are required to be filled!")
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to register user")
	}

	ok := h.store.CreateUser(memory.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hashed,
	})
	if !ok {
		return response.Message(c, fiber.StatusBadRequest, "Email or Username already exists!")
	}

	return response.Message(c, fiber.StatusOK, "User registered!")
}

// Login handles POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, found := h.store.FindUser(req.UsernameOrEmail)
	if !found || !password.Verify(req.Password, user.PasswordHash) {
		return response.Message(c, fiber.StatusUnauthorized, "Invalid credentials!")
	}

	token, err := jwt.GenerateAccessToken(user.Username, h.cfg.Stub.JWTSecret, h.cfg.Stub.TokenMins)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue token")
	}

	return c.JSON(fiber.Map{
		"message":  "Login successful!",
		"username": user.Username,
		"fullName": user.FullName(),
		"token":    token,
	})
}
