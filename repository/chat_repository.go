package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"notes-hub-api/entity"
	"notes-hub-api/enum"
)

type ChatRepository struct {
	Repository[entity.Chat]
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

// FindDirectChat returns the direct chat shared by both users, or nil when
// none exists yet. Direct chats have exactly two members, so matching both
// user ids is sufficient.
func (repository ChatRepository) FindDirectChat(ctx context.Context, db *gorm.DB, userAID, userBID string) (*entity.Chat, error) {
	var chat entity.Chat
	err := db.WithContext(ctx).
		Joins("JOIN t_chat_member cm1 ON cm1.chat_id = t_chat.id").
		Joins("JOIN t_chat_member cm2 ON cm2.chat_id = t_chat.id").
		Where("cm1.user_id = ? AND cm2.user_id = ? AND t_chat.chat_type = ?", userAID, userBID, enum.ChatTypeDirect).
		First(&chat).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &chat, nil
}

func (repository ChatRepository) FindChatByID(ctx context.Context, db *gorm.DB, id string) (*entity.Chat, error) {
	var chat entity.Chat
	err := db.WithContext(ctx).Where("id = ?", id).First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (repository ChatRepository) CreateChatWithMembers(ctx context.Context, db *gorm.DB, chat *entity.Chat, members []entity.ChatMember) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].ChatID = chat.ID
		}
		return tx.Create(&members).Error
	})
}

func (repository ChatRepository) FindAllByUserID(ctx context.Context, db *gorm.DB, userID string) ([]entity.Chat, error) {
	var chats []entity.Chat

	err := db.WithContext(ctx).
		Model(&entity.Chat{}).
		Joins("JOIN t_chat_member cm ON cm.chat_id = t_chat.id").
		Where("cm.user_id = ?", userID).
		Order("t_chat.updated_at DESC").
		Preload("Members.User").
		Find(&chats).Error

	if err != nil {
		return nil, err
	}

	return chats, nil
}

func (repository ChatRepository) ChatIDsByUser(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&entity.ChatMember{}).
		Where("user_id = ?", userID).
		Pluck("chat_id", &ids).Error
	return ids, err
}

func (repository ChatRepository) IsUserInChat(ctx context.Context, db *gorm.DB, chatID, userID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (repository ChatRepository) FindMembers(ctx context.Context, db *gorm.DB, chatID string) ([]entity.ChatMember, error) {
	var members []entity.ChatMember
	err := db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Find(&members).Error
	return members, err
}

// UnreadCount counts messages the user has not acknowledged: sent by someone
// else and lacking a read receipt from the user.
func (repository ChatRepository) UnreadCount(ctx context.Context, db *gorm.DB, chatID, userID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("chat_id = ? AND sender_id <> ?", chatID, userID).
		Where("NOT EXISTS (SELECT 1 FROM t_message_read r WHERE r.message_id = t_message.id AND r.user_id = ?)", userID).
		Count(&count).Error
	return count, err
}

func (repository ChatRepository) BumpUpdatedAt(ctx context.Context, db *gorm.DB, chatID string) error {
	return db.WithContext(ctx).
		Model(&entity.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", time.Now()).Error
}

func (repository ChatRepository) UpdateLastRead(ctx context.Context, db *gorm.DB, chatID, userID string, readAt time.Time) error {
	return db.WithContext(ctx).
		Model(&entity.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Update("last_read", readAt).Error
}
