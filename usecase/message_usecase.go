package usecase

import (
	"context"
	"time"

	"notes-hub-api/dto"
	"notes-hub-api/dto/req"
	"notes-hub-api/dto/res"
	"notes-hub-api/enum"
)

type MessageUsecase interface {
	SendMessage(ctx context.Context, senderID string, payload req.MessageRequest) (dto.MessageBroadcast, error)
	GetMessages(ctx context.Context, userID, chatID string, limit int, before *time.Time) ([]res.MessageResponse, error)
	MarkRead(ctx context.Context, userID, chatID string, messageIDs []string) (dto.ReadBroadcast, error)
	React(ctx context.Context, userID, messageID, emoji string, action enum.ReactionAction) (dto.ReactionBroadcast, error)
	DeleteMessage(ctx context.Context, userID, messageID string) (dto.DeletedBroadcast, error)
}
