package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"notes-hub-api/entity"
)

type MessageRepository struct {
	Repository[entity.Message]
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// FindPage returns up to limit messages of a chat older than before, newest
// first. Callers reverse the slice for chronological display.
func (repository MessageRepository) FindPage(ctx context.Context, db *gorm.DB, chatID string, limit int, before *time.Time) ([]entity.Message, error) {
	query := db.WithContext(ctx).
		Preload("Sender").
		Where("chat_id = ?", chatID)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var messages []entity.Message
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (repository MessageRepository) FindWithSender(ctx context.Context, db *gorm.DB, id string) (*entity.Message, error) {
	var message entity.Message
	err := db.WithContext(ctx).
		Preload("Sender").
		Where("id = ?", id).
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// SoftDelete keeps the row and swaps the content for the fixed placeholder.
func (repository MessageRepository) SoftDelete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted": true,
			"content": entity.DeletedContent,
		}).Error
}

// InsertRead records a read receipt; duplicates for the same (message, user)
// pair are dropped at the database level.
func (repository MessageRepository) InsertRead(ctx context.Context, db *gorm.DB, read *entity.MessageRead) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(read).Error
}

// CreateReaction is idempotent per (message, user, emoji) triple.
func (repository MessageRepository) CreateReaction(ctx context.Context, db *gorm.DB, reaction *entity.MessageReaction) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}, {Name: "emoji"}},
			DoNothing: true,
		}).
		Create(reaction).Error
}

func (repository MessageRepository) DeleteReactions(ctx context.Context, db *gorm.DB, messageID, userID, emoji string) error {
	return db.WithContext(ctx).
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&entity.MessageReaction{}).Error
}

func (repository MessageRepository) ReactionsByMessage(ctx context.Context, db *gorm.DB, messageID string) ([]entity.MessageReaction, error) {
	var reactions []entity.MessageReaction
	err := db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Find(&reactions).Error
	return reactions, err
}

// ClearChat removes every message of a chat along with receipts and
// reactions. Unlike single-message deletion there is no thread left to keep
// intact, so the rows go away for real.
func (repository MessageRepository) ClearChat(ctx context.Context, db *gorm.DB, chatID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("message_id IN (?)", tx.Model(&entity.Message{}).Select("id").Where("chat_id = ?", chatID)).
			Delete(&entity.MessageRead{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("message_id IN (?)", tx.Model(&entity.Message{}).Select("id").Where("chat_id = ?", chatID)).
			Delete(&entity.MessageReaction{}).Error; err != nil {
			return err
		}
		return tx.Where("chat_id = ?", chatID).Delete(&entity.Message{}).Error
	})
}
