package handler

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"notes-hub-api/dto/req"
	"notes-hub-api/enum"
	"notes-hub-api/usecase"
)

// MessageHandler covers the per-message REST mirrors: reactions and
// sender-only deletion.
type MessageHandler struct {
	usecase.MessageUsecase
	*validator.Validate
	*logrus.Logger
	Router *EventRouter
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, validate *validator.Validate, logger *logrus.Logger, router *EventRouter) *MessageHandler {
	return &MessageHandler{
		MessageUsecase: messageUsecase,
		Validate:       validate,
		Logger:         logger,
		Router:         router,
	}
}

func (handler *MessageHandler) AddReaction(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	messageID := c.Params("messageId")

	payload := new(req.ReactionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := handler.Validate.Struct(payload); err != nil {
		return errorJSON(c, err)
	}

	broadcast, err := handler.MessageUsecase.React(c.Context(), userID, messageID, payload.Emoji, enum.ReactionAdd)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to add reaction")
		return errorJSON(c, err)
	}

	handler.Router.BroadcastReaction(broadcast)

	return c.Status(fiber.StatusOK).JSON(broadcast)
}

func (handler *MessageHandler) RemoveReaction(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	messageID := c.Params("messageId")

	// Emoji arrive percent-encoded in the path.
	emoji, err := url.PathUnescape(c.Params("emoji"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid emoji"})
	}

	broadcast, err := handler.MessageUsecase.React(c.Context(), userID, messageID, emoji, enum.ReactionRemove)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to remove reaction")
		return errorJSON(c, err)
	}

	handler.Router.BroadcastReaction(broadcast)

	return c.Status(fiber.StatusOK).JSON(broadcast)
}

func (handler *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	messageID := c.Params("messageId")

	broadcast, err := handler.MessageUsecase.DeleteMessage(c.Context(), userID, messageID)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to delete message")
		return errorJSON(c, err)
	}

	handler.Router.BroadcastDeleted(broadcast)

	return c.Status(fiber.StatusOK).JSON(broadcast)
}
