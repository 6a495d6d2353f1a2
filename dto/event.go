package dto

import (
	"encoding/json"

	"notes-hub-api/dto/res"
)

// Wire format for the websocket channel, both directions:
// {"event": "<name>", "data": {...}}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type OutEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Inbound event names. The router dispatches over this closed set; anything
// else is answered with an error event.
const (
	EventTypingStart   = "typing:start"
	EventTypingStop    = "typing:stop"
	EventMessageSend   = "message:send"
	EventMessageRead   = "message:read"
	EventMessageReact  = "message:react"
	EventMessageDelete = "message:delete"
)

// Outbound event names.
const (
	EventUserOnline      = "user:online"
	EventUserOffline     = "user:offline"
	EventMessageNew      = "message:new"
	EventMessagesRead    = "messages:read"
	EventMessageReaction = "message:reaction"
	EventMessageDeleted  = "message:deleted"
	EventError           = "error"
)

type TypingPayload struct {
	ChatID string `json:"chatId"`
}

type ReadPayload struct {
	ChatID     string   `json:"chatId"`
	MessageIDs []string `json:"messageIds"`
}

type ReactPayload struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
	Action    string `json:"action"`
}

type DeletePayload struct {
	MessageID string `json:"messageId"`
}

type PresenceEvent struct {
	UserID string `json:"userId"`
}

type TypingEvent struct {
	UserID string `json:"userId"`
	ChatID string `json:"chatId"`
}

// MessageBroadcast is the composed message:new payload. FileType comes from
// the sender's request and is not persisted.
type MessageBroadcast struct {
	res.MessageResponse
	FileType string `json:"fileType,omitempty"`
}

type ReadBroadcast struct {
	UserID     string   `json:"userId"`
	MessageIDs []string `json:"messageIds"`
	ChatID     string   `json:"chatId"`
}

type ReactionBroadcast struct {
	MessageID string                 `json:"messageId"`
	ChatID    string                 `json:"chatId"`
	UserID    string                 `json:"userId"`
	Emoji     string                 `json:"emoji"`
	Action    string                 `json:"action"`
	Reactions []res.ReactionResponse `json:"reactions"`
}

type DeletedBroadcast struct {
	MessageID string `json:"messageId"`
	ChatID    string `json:"chatId"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}
