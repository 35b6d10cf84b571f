package handlers

import (
	"errors"
	"log"

	"courier/internal/models"
	"courier/internal/services"
	"courier/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles HTTP requests for the relational identity:
// atomic registration and store-side login.
type AccountHandler struct {
	accountService *services.AccountService
	sessions       *session.Manager
	validate       *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		sessions:       sessions,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates a user and its address as a single unit.
func (h *AccountHandler) HandleRegister(c *fiber.Ctx) error {
	var reg models.Registration
	if err := c.BodyParser(&reg); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing parameters",
		})
	}
	if err := h.validate.Struct(reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing parameters",
		})
	}

	user, err := h.accountService.Register(&reg)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Missing parameters",
			})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "User already has an account",
			})
		default:
			log.Printf("Error registering user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Exception occurred while registering",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User created",
		"user":    user,
	})
}

// HandleLogin verifies credentials inside the store, binds the session and
// issues a token.
func (h *AccountHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing parameters",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing parameters",
		})
	}

	user, token, err := h.accountService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Missing parameters",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			// Unknown email and wrong password share one message.
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Incorrect email/password",
			})
		default:
			log.Printf("Error logging in: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Exception occurred while logging in",
			})
		}
	}

	if err := h.sessions.Bind(c, user.ID); err != nil {
		log.Printf("Error binding session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Exception occurred while logging in",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token":    token,
		"username": user.Username,
	})
}
