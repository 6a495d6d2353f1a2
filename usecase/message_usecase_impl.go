package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"notes-hub-api/dto"
	"notes-hub-api/dto/req"
	"notes-hub-api/dto/res"
	"notes-hub-api/entity"
	"notes-hub-api/enum"
	"notes-hub-api/repository"
)

const defaultPageSize = 50

type messageUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	messageRepo *repository.MessageRepository
	chatRepo    *repository.ChatRepository
}

func NewMessageUsecase(db *gorm.DB, log *logrus.Logger, messageRepo *repository.MessageRepository, chatRepo *repository.ChatRepository) MessageUsecase {
	return &messageUsecase{db: db, log: log, messageRepo: messageRepo, chatRepo: chatRepo}
}

// deriveType resolves the stored message type from file metadata: image
// mime wins, any other file metadata means file, otherwise the caller's
// type, defaulting to text.
func deriveType(payload req.MessageRequest) enum.MessageType {
	if strings.HasPrefix(payload.FileType, "image/") {
		return enum.MessageTypeImage
	}
	if payload.FileURL != "" || payload.FileName != "" || payload.FileType != "" {
		return enum.MessageTypeFile
	}
	switch enum.MessageType(payload.Type) {
	case enum.MessageTypeImage, enum.MessageTypeFile:
		return enum.MessageType(payload.Type)
	}
	return enum.MessageTypeText
}

func (uc *messageUsecase) SendMessage(ctx context.Context, senderID string, payload req.MessageRequest) (dto.MessageBroadcast, error) {
	isMember, err := uc.chatRepo.IsUserInChat(ctx, uc.db, payload.ChatID, senderID)
	if err != nil {
		return dto.MessageBroadcast{}, err
	}
	if !isMember {
		return dto.MessageBroadcast{}, ErrNotChatMember
	}

	var sender entity.User
	if err := uc.db.WithContext(ctx).Where("id = ?", senderID).First(&sender).Error; err != nil {
		return dto.MessageBroadcast{}, err
	}

	message := entity.Message{
		ChatID:      payload.ChatID,
		SenderID:    senderID,
		Content:     payload.Content,
		MessageType: deriveType(payload),
		ReplyToID:   payload.ReplyTo,
		FileURL:     payload.FileURL,
		FileName:    payload.FileName,
	}

	if err := uc.messageRepo.Save(ctx, uc.db, &message); err != nil {
		return dto.MessageBroadcast{}, err
	}

	if err := uc.chatRepo.BumpUpdatedAt(ctx, uc.db, payload.ChatID); err != nil {
		uc.log.WithError(err).Warnf("Failed to bump chat %s", payload.ChatID)
	}

	return dto.MessageBroadcast{
		MessageResponse: toMessageResponse(message, sender),
		FileType:        payload.FileType,
	}, nil
}

func (uc *messageUsecase) GetMessages(ctx context.Context, userID, chatID string, limit int, before *time.Time) ([]res.MessageResponse, error) {
	isMember, err := uc.chatRepo.IsUserInChat(ctx, uc.db, chatID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotChatMember
	}

	if limit <= 0 {
		limit = defaultPageSize
	}

	messages, err := uc.messageRepo.FindPage(ctx, uc.db, chatID, limit, before)
	if err != nil {
		return nil, err
	}

	// newest-first from storage, chronological for the client
	responses := make([]res.MessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		responses = append(responses, toMessageResponse(messages[i], messages[i].Sender))
	}

	return responses, nil
}

// MarkRead moves the member's lastRead marker and inserts receipts,
// skipping duplicates. Calling it twice with the same ids is a no-op.
func (uc *messageUsecase) MarkRead(ctx context.Context, userID, chatID string, messageIDs []string) (dto.ReadBroadcast, error) {
	if err := uc.chatRepo.UpdateLastRead(ctx, uc.db, chatID, userID, time.Now()); err != nil {
		return dto.ReadBroadcast{}, err
	}

	for _, messageID := range messageIDs {
		read := entity.MessageRead{MessageID: messageID, UserID: userID}
		if err := uc.messageRepo.InsertRead(ctx, uc.db, &read); err != nil {
			return dto.ReadBroadcast{}, err
		}
	}

	return dto.ReadBroadcast{
		UserID:     userID,
		MessageIDs: messageIDs,
		ChatID:     chatID,
	}, nil
}

func (uc *messageUsecase) React(ctx context.Context, userID, messageID, emoji string, action enum.ReactionAction) (dto.ReactionBroadcast, error) {
	message, err := uc.messageRepo.FindWithSender(ctx, uc.db, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReactionBroadcast{}, ErrMessageNotFound
		}
		return dto.ReactionBroadcast{}, err
	}

	switch action {
	case enum.ReactionAdd:
		reaction := entity.MessageReaction{MessageID: messageID, UserID: userID, Emoji: emoji}
		if err := uc.messageRepo.CreateReaction(ctx, uc.db, &reaction); err != nil {
			return dto.ReactionBroadcast{}, err
		}
	case enum.ReactionRemove:
		if err := uc.messageRepo.DeleteReactions(ctx, uc.db, messageID, userID, emoji); err != nil {
			return dto.ReactionBroadcast{}, err
		}
	}

	reactions, err := uc.messageRepo.ReactionsByMessage(ctx, uc.db, messageID)
	if err != nil {
		return dto.ReactionBroadcast{}, err
	}

	reactionResponses := make([]res.ReactionResponse, 0, len(reactions))
	for _, reaction := range reactions {
		reactionResponses = append(reactionResponses, res.ReactionResponse{
			MessageID: reaction.MessageID,
			UserID:    reaction.UserID,
			Emoji:     reaction.Emoji,
		})
	}

	return dto.ReactionBroadcast{
		MessageID: messageID,
		ChatID:    message.ChatID,
		UserID:    userID,
		Emoji:     emoji,
		Action:    string(action),
		Reactions: reactionResponses,
	}, nil
}

func (uc *messageUsecase) DeleteMessage(ctx context.Context, userID, messageID string) (dto.DeletedBroadcast, error) {
	message, err := uc.messageRepo.FindWithSender(ctx, uc.db, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DeletedBroadcast{}, ErrMessageNotFound
		}
		return dto.DeletedBroadcast{}, err
	}

	if message.SenderID != userID {
		return dto.DeletedBroadcast{}, ErrNotMessageSender
	}

	if err := uc.messageRepo.SoftDelete(ctx, uc.db, messageID); err != nil {
		return dto.DeletedBroadcast{}, err
	}

	return dto.DeletedBroadcast{
		MessageID: messageID,
		ChatID:    message.ChatID,
	}, nil
}

func toMessageResponse(message entity.Message, sender entity.User) res.MessageResponse {
	return res.MessageResponse{
		MessageID:    message.ID,
		ChatID:       message.ChatID,
		SenderID:     message.SenderID,
		SenderName:   sender.Name,
		SenderAvatar: sender.Avatar,
		Content:      message.Content,
		Type:         string(message.MessageType),
		ReplyTo:      message.ReplyToID,
		FileURL:      message.FileURL,
		FileName:     message.FileName,
		Deleted:      message.Deleted,
		CreatedAt:    message.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
