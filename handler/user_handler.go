package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"notes-hub-api/dto/res"
	"notes-hub-api/usecase"
)

type UserHandler struct {
	usecase.UserUsecase
	*logrus.Logger
}

func NewUserHandler(userUsecase usecase.UserUsecase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{UserUsecase: userUsecase, Logger: logger}
}

func (handler *UserHandler) GetUserByToken(ctx *fiber.Ctx) error {
	token := strings.TrimPrefix(ctx.Get("Authorization"), "Bearer ")
	if token == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing Authorization header",
		})
	}

	userResponse, err := handler.UserUsecase.GetUserByToken(ctx.Context(), token)
	if err != nil {
		handler.Logger.WithError(err).Errorln("Failed to get user by token")
		return errorJSON(ctx, err)
	}

	response := res.CommonResponse[res.UserResponse]{
		Message:    "Successfully retrieved current user",
		StatusCode: fiber.StatusOK,
		Data:       userResponse,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *UserHandler) GetAllUsers(ctx *fiber.Ctx) error {
	userResponses, err := handler.UserUsecase.GetAllUsers(ctx.Context())
	if err != nil {
		handler.Logger.WithError(err).Errorln("Failed to get all users")
		return errorJSON(ctx, err)
	}

	responses := res.CommonResponse[[]res.UserResponse]{
		Message:    "Successfully retrieved all users",
		StatusCode: fiber.StatusOK,
		Data:       userResponses,
	}
	return ctx.Status(fiber.StatusOK).JSON(responses)
}

// SearchUsers backs the new-chat picker: substring match on name or email,
// caller excluded.
func (handler *UserHandler) SearchUsers(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)
	query := ctx.Query("query")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query is required"})
	}

	userResponses, err := handler.UserUsecase.SearchUsers(ctx.Context(), userID, query)
	if err != nil {
		handler.Logger.WithError(err).Errorln("Failed to search users")
		return errorJSON(ctx, err)
	}

	responses := res.CommonResponse[[]res.UserResponse]{
		Message:    "Successfully searched users",
		StatusCode: fiber.StatusOK,
		Data:       userResponses,
	}
	return ctx.Status(fiber.StatusOK).JSON(responses)
}
