package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"notes-hub-api/handler"
	"notes-hub-api/middleware"
)

type ConfigRoute struct {
	*fiber.App
	*middleware.Middleware
	*handler.AuthHandler
	*handler.UserHandler
	*handler.ChatHandler
	*handler.MessageHandler
}

func (rc *ConfigRoute) GetRoute() {
	rc.GetPublicRoute()
	rc.GetProtectedRoute()
}

func (rc *ConfigRoute) GetPublicRoute() {
	app := rc.App.Group("/api")
	app.Post("/auth/register", rc.AuthHandler.RegisterUser)
	app.Post("/auth/login", rc.AuthHandler.LoginUser)
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api")
	app.Use(rc.Middleware.JWTProtected)
	app.Use(rc.Middleware.ExtractUserID)

	app.Get("/auth/me", rc.UserHandler.GetUserByToken)

	app.Get("/users", rc.UserHandler.GetAllUsers)
	app.Get("/users/search", rc.UserHandler.SearchUsers)

	app.Get("/chats", rc.ChatHandler.GetChats)
	app.Post("/chats/direct", rc.ChatHandler.CreateDirectChat)
	app.Post("/chats/group", rc.ChatHandler.CreateGroupChat)
	app.Get("/chats/:chatId/messages", rc.ChatHandler.GetMessages)
	app.Post("/chats/:chatId/messages", rc.ChatHandler.SendMessage)
	app.Delete("/chats/:chatId/messages", rc.ChatHandler.ClearChat)
	app.Post("/chats/:chatId/read", rc.ChatHandler.MarkRead)

	app.Post("/messages/:messageId/reactions", rc.MessageHandler.AddReaction)
	app.Delete("/messages/:messageId/reactions/:emoji", rc.MessageHandler.RemoveReaction)
	app.Delete("/messages/:messageId", rc.MessageHandler.DeleteMessage)
}

func (rc *ConfigRoute) GetWebSocketRoute(wsHandler *handler.WebSocketHandler) {
	rc.App.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	rc.App.Get("/ws", rc.Middleware.WebSocketGate, websocket.New(wsHandler.HandleWebSocket))
}
