package usecase

import (
	"context"

	"notes-hub-api/dto/res"
	"notes-hub-api/entity"
)

type ChatUsecase interface {
	EnsureDirectChat(ctx context.Context, userAID, userBID string) (*entity.Chat, error)
	CreateGroupChat(ctx context.Context, name string, creatorID string, memberIDs []string) (*entity.Chat, error)
	GetChatsByUser(ctx context.Context, userID string) ([]res.ChatResponse, error)
	ChatIDsByUser(ctx context.Context, userID string) ([]string, error)
	IsMember(ctx context.Context, chatID, userID string) (bool, error)
	Members(ctx context.Context, chatID string) ([]entity.ChatMember, error)
	ClearChat(ctx context.Context, chatID, userID string) error
}
