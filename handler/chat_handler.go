package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"notes-hub-api/dto/req"
	"notes-hub-api/dto/res"
	"notes-hub-api/entity"
	"notes-hub-api/usecase"
)

// ChatHandler is the REST mirror of the realtime operations: same
// preconditions, same persistence, with results re-broadcast to the chat's
// websocket room so connected clients stay in sync.
type ChatHandler struct {
	usecase.ChatUsecase
	usecase.MessageUsecase
	*validator.Validate
	*logrus.Logger
	Router *EventRouter
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, messageUsecase usecase.MessageUsecase, validate *validator.Validate, logger *logrus.Logger, router *EventRouter) *ChatHandler {
	return &ChatHandler{
		ChatUsecase:    chatUsecase,
		MessageUsecase: messageUsecase,
		Validate:       validate,
		Logger:         logger,
		Router:         router,
	}
}

func (handler *ChatHandler) GetChats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	chatResponses, err := handler.ChatUsecase.GetChatsByUser(c.Context(), userID)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to get chats")
		return errorJSON(c, err)
	}

	responses := res.CommonResponse[[]res.ChatResponse]{
		Message:    "Successfully retrieved chats",
		StatusCode: fiber.StatusOK,
		Data:       chatResponses,
	}
	return c.Status(fiber.StatusOK).JSON(responses)
}

// CreateDirectChat gets or creates the single direct chat between the
// caller and another user.
func (handler *ChatHandler) CreateDirectChat(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	payload := new(req.DirectChatRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := handler.Validate.Struct(payload); err != nil {
		return errorJSON(c, err)
	}
	if payload.UserID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot start a chat with yourself"})
	}

	chat, err := handler.ChatUsecase.EnsureDirectChat(c.Context(), userID, payload.UserID)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to ensure direct chat")
		return errorJSON(c, err)
	}

	response := res.CommonResponse[*entity.Chat]{
		Message:    "Successfully resolved direct chat",
		StatusCode: fiber.StatusOK,
		Data:       chat,
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

func (handler *ChatHandler) CreateGroupChat(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	payload := new(req.GroupChatRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := handler.Validate.Struct(payload); err != nil {
		return errorJSON(c, err)
	}

	chat, err := handler.ChatUsecase.CreateGroupChat(c.Context(), payload.Name, userID, payload.MemberIDs)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to create group chat")
		return errorJSON(c, err)
	}

	response := res.CommonResponse[*entity.Chat]{
		Message:    "Successfully created group chat",
		StatusCode: fiber.StatusCreated,
		Data:       chat,
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetMessages returns a page of history in chronological order. The cursor
// is a timestamp: ?before=RFC3339 returns messages older than it.
func (handler *ChatHandler) GetMessages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	chatID := c.Params("chatId")

	limit := c.QueryInt("limit", 0)
	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "before must be RFC3339"})
		}
		before = &parsed
	}

	messages, err := handler.MessageUsecase.GetMessages(c.Context(), userID, chatID, limit, before)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to get messages")
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"chatId":   chatID,
		"messages": messages,
	})
}

func (handler *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	chatID := c.Params("chatId")

	payload := new(req.MessageRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	payload.ChatID = chatID
	if err := handler.Validate.Struct(payload); err != nil {
		return errorJSON(c, err)
	}

	broadcast, err := handler.MessageUsecase.SendMessage(c.Context(), userID, *payload)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to send message")
		return errorJSON(c, err)
	}

	handler.Router.BroadcastMessage(broadcast, nil)

	response := res.CommonResponse[res.MessageResponse]{
		Message:    "Successfully sent message",
		StatusCode: fiber.StatusCreated,
		Data:       broadcast.MessageResponse,
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

func (handler *ChatHandler) MarkRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	chatID := c.Params("chatId")

	payload := new(req.ReadRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	payload.ChatID = chatID
	if err := handler.Validate.Struct(payload); err != nil {
		return errorJSON(c, err)
	}

	broadcast, err := handler.MessageUsecase.MarkRead(c.Context(), userID, chatID, payload.MessageIDs)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to mark messages read")
		return errorJSON(c, err)
	}

	handler.Router.BroadcastRead(broadcast, handler.Router.SessionOfUser(userID))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"chatId":     chatID,
		"messageIds": payload.MessageIDs,
	})
}

// ClearChat wipes the chat's history, member-only.
func (handler *ChatHandler) ClearChat(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	chatID := c.Params("chatId")

	if err := handler.ChatUsecase.ClearChat(c.Context(), chatID, userID); err != nil {
		handler.Logger.WithError(err).Error("Failed to clear chat")
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"chatId": chatID, "cleared": true})
}
