package usecase

import "errors"

// Sentinel errors let handlers pick the right status code and keep the
// authorization taxonomy in one place.
var (
	ErrNotChatMember      = errors.New("user is not a member of this chat")
	ErrNotMessageSender   = errors.New("only the sender can delete a message")
	ErrChatNotFound       = errors.New("chat not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
