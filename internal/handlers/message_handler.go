package handlers

import (
	"errors"
	"log"

	"courier/internal/services"
	"courier/internal/session"

	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles HTTP requests for message creation. The route
// group it registers on is token-guarded; the sender identity itself comes
// from the session.
type MessageHandler struct {
	messageService *services.MessageService
	sessions       *session.Manager
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService, sessions *session.Manager) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		sessions:       sessions,
	}
}

// RegisterRoutes registers the message routes with the Fiber app, guarded
// by the given token middleware.
func (h *MessageHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	messageRoutes := router.Group("/messages", authRequired)
	messageRoutes.Post("/create", h.HandleCreate)
}

// CreateMessageRequest represents the request body for message creation.
type CreateMessageRequest struct {
	Content  string `json:"content"`
	Receiver string `json:"receiver"`
}

// HandleCreate stores a new message from the session user to the receiver.
func (h *MessageHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing message request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing information",
		})
	}
	if req.Content == "" || req.Receiver == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing information",
		})
	}

	senderID, ok := h.sessions.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	message, err := h.messageService.Create(c.Context(), senderID, req.Receiver, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "missing information",
			})
		}
		log.Printf("Error creating message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}
