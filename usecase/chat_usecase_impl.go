package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"notes-hub-api/dto/res"
	"notes-hub-api/entity"
	"notes-hub-api/enum"
	"notes-hub-api/repository"
)

type ChatUsecaseImpl struct {
	*repository.ChatRepository
	*repository.MessageRepository
	*logrus.Logger
	*gorm.DB
}

func NewChatUsecase(chatRepository *repository.ChatRepository, messageRepository *repository.MessageRepository, logger *logrus.Logger, DB *gorm.DB) *ChatUsecaseImpl {
	return &ChatUsecaseImpl{ChatRepository: chatRepository, MessageRepository: messageRepository, Logger: logger, DB: DB}
}

// EnsureDirectChat returns the existing direct chat for the pair or creates
// one. The read-then-create has no transactional guard, so two truly
// concurrent first messages can race; see DESIGN.md.
func (uc *ChatUsecaseImpl) EnsureDirectChat(ctx context.Context, userAID, userBID string) (*entity.Chat, error) {
	existingChat, err := uc.ChatRepository.FindDirectChat(ctx, uc.DB, userAID, userBID)
	if err != nil {
		return nil, err
	}
	if existingChat != nil {
		return existingChat, nil
	}

	newChat := &entity.Chat{
		ChatType: enum.ChatTypeDirect,
	}

	members := []entity.ChatMember{
		{UserID: userAID},
		{UserID: userBID},
	}

	if err := uc.ChatRepository.CreateChatWithMembers(ctx, uc.DB, newChat, members); err != nil {
		return nil, err
	}

	return newChat, nil
}

func (uc *ChatUsecaseImpl) CreateGroupChat(ctx context.Context, name string, creatorID string, memberIDs []string) (*entity.Chat, error) {
	newChat := &entity.Chat{
		ChatType:  enum.ChatTypeGroup,
		GroupName: name,
	}

	members := make([]entity.ChatMember, 0, len(memberIDs)+1)
	members = append(members, entity.ChatMember{UserID: creatorID})
	for _, id := range memberIDs {
		if id == creatorID {
			continue
		}
		members = append(members, entity.ChatMember{UserID: id})
	}

	if err := uc.ChatRepository.CreateChatWithMembers(ctx, uc.DB, newChat, members); err != nil {
		return nil, err
	}

	return newChat, nil
}

func (uc *ChatUsecaseImpl) GetChatsByUser(ctx context.Context, userID string) ([]res.ChatResponse, error) {
	chats, err := uc.ChatRepository.FindAllByUserID(ctx, uc.DB, userID)
	if err != nil {
		uc.Logger.WithError(err).Error("Failed to get chats by user ID")
		return nil, err
	}

	chatResponses := make([]res.ChatResponse, 0, len(chats))

	for _, chat := range chats {
		response := res.ChatResponse{
			ChatID:   chat.ID,
			ChatType: string(chat.ChatType),
			ChatName: chat.GroupName,
		}

		for _, member := range chat.Members {
			if member.UserID == userID {
				if !member.LastRead.IsZero() {
					response.LastRead = member.LastRead.Format("2006-01-02 15:04:05")
				}
				continue
			}
			response.Members = append(response.Members, res.UserResponse{
				ID:     member.User.ID,
				Name:   member.User.Name,
				Email:  member.User.Email,
				Avatar: member.User.Avatar,
			})
			if chat.ChatType == enum.ChatTypeDirect {
				response.ChatName = member.User.Name
			}
		}

		unread, err := uc.ChatRepository.UnreadCount(ctx, uc.DB, chat.ID, userID)
		if err != nil {
			uc.Logger.WithError(err).Errorf("Failed to count unread for chat %s", chat.ID)
		} else {
			response.UnreadCount = unread
		}

		if last, err := uc.MessageRepository.FindPage(ctx, uc.DB, chat.ID, 1, nil); err == nil && len(last) > 0 {
			response.LastMessage = last[0].Content
			response.LastMessageTime = last[0].CreatedAt.Format("2006-01-02 15:04:05")
		}

		chatResponses = append(chatResponses, response)
	}

	return chatResponses, nil
}

func (uc *ChatUsecaseImpl) ChatIDsByUser(ctx context.Context, userID string) ([]string, error) {
	return uc.ChatRepository.ChatIDsByUser(ctx, uc.DB, userID)
}

func (uc *ChatUsecaseImpl) IsMember(ctx context.Context, chatID, userID string) (bool, error) {
	return uc.ChatRepository.IsUserInChat(ctx, uc.DB, chatID, userID)
}

func (uc *ChatUsecaseImpl) Members(ctx context.Context, chatID string) ([]entity.ChatMember, error) {
	return uc.ChatRepository.FindMembers(ctx, uc.DB, chatID)
}

// ClearChat removes every message in the chat, member-only.
func (uc *ChatUsecaseImpl) ClearChat(ctx context.Context, chatID, userID string) error {
	isMember, err := uc.ChatRepository.IsUserInChat(ctx, uc.DB, chatID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotChatMember
	}
	return uc.MessageRepository.ClearChat(ctx, uc.DB, chatID)
}
