package handler

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-hub-api/entity"
)

func setupMessageApp(t *testing.T, userID string) (*fiber.App, *routerFixture) {
	f := setupRouter(t)

	log := logrus.New()
	log.SetOutput(io.Discard)
	messageHandler := NewMessageHandler(f.messages, validator.New(), log, f.router)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Delete("/api/messages/:messageId/reactions/:emoji", messageHandler.RemoveReaction)

	return app, f
}

func TestRemoveReactionDecodesEmojiFromPath(t *testing.T) {
	app, f := setupMessageApp(t, "userB")

	f.seedUser(t, "userA", "Alice")
	f.seedUser(t, "userB", "Bob")
	f.seedDirectChat(t, "c1", "userA", "userB")
	require.NoError(t, f.db.Create(&entity.Message{
		BaseEntity: entity.BaseEntity{ID: "m1", CreatedAt: time.Now()},
		ChatID:     "c1",
		SenderID:   "userA",
		Content:    "hello",
	}).Error)
	require.NoError(t, f.db.Create(&entity.MessageReaction{
		MessageID: "m1",
		UserID:    "userB",
		Emoji:     "👍",
	}).Error)

	// emoji are percent-encoded on the wire
	req := httptest.NewRequest(fiber.MethodDelete, "/api/messages/m1/reactions/%F0%9F%91%8D", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	f.db.Model(&entity.MessageReaction{}).Where("message_id = ?", "m1").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRemoveReactionUnknownMessage(t *testing.T) {
	app, _ := setupMessageApp(t, "userB")

	req := httptest.NewRequest(fiber.MethodDelete, "/api/messages/missing/reactions/%F0%9F%91%8D", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
