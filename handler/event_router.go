package handler

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"notes-hub-api/dto"
	"notes-hub-api/dto/req"
	"notes-hub-api/enum"
	"notes-hub-api/usecase"
	"notes-hub-api/ws"
)

// EventRouter dispatches inbound realtime events over a closed set of event
// names and owns the broadcast side, so the REST mirror and the websocket
// path emit identical events.
type EventRouter struct {
	Hub      *ws.Hub
	Presence *ws.Presence
	usecase.ChatUsecase
	usecase.MessageUsecase
	*logrus.Logger
}

func NewEventRouter(hub *ws.Hub, presence *ws.Presence, chatUsecase usecase.ChatUsecase, messageUsecase usecase.MessageUsecase, logger *logrus.Logger) *EventRouter {
	return &EventRouter{
		Hub:            hub,
		Presence:       presence,
		ChatUsecase:    chatUsecase,
		MessageUsecase: messageUsecase,
		Logger:         logger,
	}
}

// Dispatch routes one inbound envelope. Errors never propagate past here:
// the caller gets an error event, other connections are unaffected.
func (router *EventRouter) Dispatch(ctx context.Context, session *ws.Session, envelope dto.Envelope) {
	switch envelope.Event {
	case dto.EventTypingStart, dto.EventTypingStop:
		router.handleTyping(session, envelope)
	case dto.EventMessageSend:
		router.handleSend(ctx, session, envelope)
	case dto.EventMessageRead:
		router.handleRead(ctx, session, envelope)
	case dto.EventMessageReact:
		router.handleReact(ctx, session, envelope)
	case dto.EventMessageDelete:
		router.handleDelete(ctx, session, envelope)
	default:
		router.emitError(session, "unknown event: "+envelope.Event)
	}
}

// Typing indicators carry no persistence and no membership check; they are
// relayed to the rest of the room as-is.
func (router *EventRouter) handleTyping(session *ws.Session, envelope dto.Envelope) {
	var payload dto.TypingPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		router.emitError(session, "malformed typing payload")
		return
	}

	router.Hub.BroadcastToRoom(payload.ChatID, envelope.Event, dto.TypingEvent{
		UserID: session.UserID,
		ChatID: payload.ChatID,
	}, session)
}

func (router *EventRouter) handleSend(ctx context.Context, session *ws.Session, envelope dto.Envelope) {
	var payload req.MessageRequest
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		router.emitError(session, "malformed message payload")
		return
	}

	broadcast, err := router.MessageUsecase.SendMessage(ctx, session.UserID, payload)
	if err != nil {
		router.Logger.WithError(err).Warnf("message:send rejected for user %s", session.UserID)
		router.emitError(session, userFacing(err))
		return
	}

	// the sender receives its own echo
	router.BroadcastMessage(broadcast, nil)
}

func (router *EventRouter) handleRead(ctx context.Context, session *ws.Session, envelope dto.Envelope) {
	var payload dto.ReadPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		router.emitError(session, "malformed read payload")
		return
	}

	broadcast, err := router.MessageUsecase.MarkRead(ctx, session.UserID, payload.ChatID, payload.MessageIDs)
	if err != nil {
		router.Logger.WithError(err).Warnf("message:read failed for user %s", session.UserID)
		router.emitError(session, userFacing(err))
		return
	}

	router.BroadcastRead(broadcast, session)
}

func (router *EventRouter) handleReact(ctx context.Context, session *ws.Session, envelope dto.Envelope) {
	var payload dto.ReactPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		router.emitError(session, "malformed reaction payload")
		return
	}

	broadcast, err := router.MessageUsecase.React(ctx, session.UserID, payload.MessageID, payload.Emoji, enum.ReactionAction(payload.Action))
	if err != nil {
		router.Logger.WithError(err).Warnf("message:react failed for user %s", session.UserID)
		router.emitError(session, userFacing(err))
		return
	}

	router.BroadcastReaction(broadcast)
}

func (router *EventRouter) handleDelete(ctx context.Context, session *ws.Session, envelope dto.Envelope) {
	var payload dto.DeletePayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		router.emitError(session, "malformed delete payload")
		return
	}

	broadcast, err := router.MessageUsecase.DeleteMessage(ctx, session.UserID, payload.MessageID)
	if err != nil {
		router.Logger.WithError(err).Warnf("message:delete rejected for user %s", session.UserID)
		router.emitError(session, userFacing(err))
		return
	}

	router.BroadcastDeleted(broadcast)
}

// BroadcastMessage delivers message:new to the chat room and logs members
// who are offline and would need a push notification. No push is sent.
func (router *EventRouter) BroadcastMessage(broadcast dto.MessageBroadcast, except *ws.Session) {
	router.Hub.BroadcastToRoom(broadcast.ChatID, dto.EventMessageNew, broadcast, except)

	go func() {
		members, err := router.ChatUsecase.Members(context.Background(), broadcast.ChatID)
		if err != nil {
			router.Logger.WithError(err).Warnf("Failed to load members of chat %s for offline check", broadcast.ChatID)
			return
		}
		for _, member := range members {
			if member.UserID == broadcast.SenderID {
				continue
			}
			if _, online := router.Presence.Lookup(member.UserID); !online {
				router.Logger.Infof("User %s offline, should notify about message %s", member.UserID, broadcast.MessageID)
			}
		}
	}()
}

func (router *EventRouter) BroadcastRead(broadcast dto.ReadBroadcast, except *ws.Session) {
	router.Hub.BroadcastToRoom(broadcast.ChatID, dto.EventMessagesRead, broadcast, except)
}

func (router *EventRouter) BroadcastReaction(broadcast dto.ReactionBroadcast) {
	router.Hub.BroadcastToRoom(broadcast.ChatID, dto.EventMessageReaction, broadcast, nil)
}

func (router *EventRouter) BroadcastDeleted(broadcast dto.DeletedBroadcast) {
	router.Hub.BroadcastToRoom(broadcast.ChatID, dto.EventMessageDeleted, broadcast, nil)
}

// SessionOfUser lets the REST mirror exclude the caller's own websocket
// session from an echo.
func (router *EventRouter) SessionOfUser(userID string) *ws.Session {
	return router.Hub.SessionOfUser(userID)
}

func (router *EventRouter) emitError(session *ws.Session, message string) {
	if err := session.Emit(dto.EventError, dto.ErrorEvent{Message: message}); err != nil {
		router.Logger.WithError(err).Warnf("Failed to emit error to session %s", session.ID)
	}
}

// userFacing hides storage internals behind a generic message while the
// taxonomy errors pass through verbatim.
func userFacing(err error) string {
	switch err {
	case usecase.ErrNotChatMember, usecase.ErrNotMessageSender,
		usecase.ErrChatNotFound, usecase.ErrMessageNotFound:
		return err.Error()
	}
	return "something went wrong"
}
