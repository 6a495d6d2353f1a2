package handler

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"

	applogger "notes-hub-api/config/logger"
	"notes-hub-api/dto"
	"notes-hub-api/usecase"
	"notes-hub-api/ws"
)

// WebSocketHandler admits authenticated connections, syncs their chat room
// memberships and pumps inbound events into the router. The bearer token is
// checked by the upgrade middleware before this handler runs.
type WebSocketHandler struct {
	*logrus.Logger
	Log      *applogger.AppLogger
	Hub      *ws.Hub
	Presence *ws.Presence
	usecase.ChatUsecase
	Router *EventRouter
}

func NewWebSocketHandler(logger *logrus.Logger, appLog *applogger.AppLogger, hub *ws.Hub, presence *ws.Presence, chatUsecase usecase.ChatUsecase, router *EventRouter) *WebSocketHandler {
	return &WebSocketHandler{
		Logger:      logger,
		Log:         appLog,
		Hub:         hub,
		Presence:    presence,
		ChatUsecase: chatUsecase,
		Router:      router,
	}
}

func (handler *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	ctx := context.Background()

	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		handler.Logger.Warn("Websocket connection without authenticated user")
		c.Close()
		return
	}

	session := ws.NewSession(userID, c)
	handler.Hub.Register(session)
	handler.Presence.Register(userID, session.ID)
	handler.Log.WS.Info.Info().
		Str("user_id", userID).
		Str("session_id", session.ID).
		Msg("connected")

	// Membership sync: a failure leaves the connection live but without
	// room subscriptions; reconnecting is the only recovery path.
	chatIDs, err := handler.ChatUsecase.ChatIDsByUser(ctx, userID)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to sync chat rooms for user %s", userID)
	} else {
		for _, chatID := range chatIDs {
			handler.Hub.Join(chatID, session)
		}
	}

	// Presence events are global, not scoped to shared chats.
	handler.Hub.BroadcastAll(dto.EventUserOnline, dto.PresenceEvent{UserID: userID}, session)

	defer func() {
		handler.Hub.Unregister(session)
		if ownerID, ok := handler.Presence.Unregister(session.ID); ok {
			handler.Hub.BroadcastAll(dto.EventUserOffline, dto.PresenceEvent{UserID: ownerID}, session)
			handler.Log.WS.Info.Info().
				Str("user_id", ownerID).
				Str("session_id", session.ID).
				Msg("disconnected")
		}
		c.Close()
	}()

	for {
		var envelope dto.Envelope
		if err := c.ReadJSON(&envelope); err != nil {
			handler.Logger.Warnf("Read error: %v", err)
			break
		}

		handler.Router.Dispatch(ctx, session, envelope)
	}
}
