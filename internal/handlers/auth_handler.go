package handlers

import (
	"errors"
	"log"

	"gemstore/internal/models"
	"gemstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and authentication.
type AuthHandler struct {
	authService  *services.AuthService
	authRequired fiber.Handler
	validate     *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, authRequired fiber.Handler) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		authRequired: authRequired,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/registration", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Get("/users/me", h.authRequired, h.HandleCurrentUser)
}

// RegistrationRequest represents the request body for registration.
type RegistrationRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Password  string `json:"password" validate:"required,min=6,max=256"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
	Email     string `json:"email" validate:"required,email"`
	IsSeller  bool   `json:"is_seller"`
}

// HandleRegister handles new user registration. Mismatched passwords and
// taken usernames are both client errors; nothing is written in either
// case.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing registration request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		IsSeller: req.IsSeller,
	}
	if err := h.authService.RegisterUser(&user, req.Password2); err != nil {
		switch {
		case errors.Is(err, models.ErrUsernameTaken), errors.Is(err, models.ErrPasswordMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		default:
			log.Printf("Error registering user: %v", err)
			return internalError(c, "Could not register user")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	token, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid username and/or password",
			})
		}
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return internalError(c, "Could not log in")
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

// HandleCurrentUser returns the authenticated caller's identity.
func (h *AuthHandler) HandleCurrentUser(c *fiber.Ctx) error {
	return c.JSON(actingUser(c))
}
