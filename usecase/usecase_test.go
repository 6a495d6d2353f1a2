package usecase

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"notes-hub-api/config/logger"
	"notes-hub-api/entity"
	"notes-hub-api/enum"
	"notes-hub-api/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.Account{},
		&entity.User{},
		&entity.Chat{},
		&entity.ChatMember{},
		&entity.Message{},
		&entity.MessageRead{},
		&entity.MessageReaction{},
	)
	require.NoError(t, err)

	return db
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newChatUsecase(db *gorm.DB) *ChatUsecaseImpl {
	return NewChatUsecase(repository.NewChatRepository(), repository.NewMessageRepository(), quietLogger(), db)
}

func newMessageUsecase(db *gorm.DB) MessageUsecase {
	return NewMessageUsecase(db, quietLogger(), repository.NewMessageRepository(), repository.NewChatRepository())
}

func newUserUsecase(db *gorm.DB) UserUsecase {
	quiet := zerolog.New(io.Discard)
	channel := logger.CommonLogger{Info: quiet, Error: quiet, Trace: quiet, Warning: quiet}
	return NewUserUsecase(repository.NewUserRepository(), db, &logger.AppLogger{Http: channel, WS: channel}, nil)
}

func seedUser(t *testing.T, db *gorm.DB, id, name string) entity.User {
	user := entity.User{
		BaseEntity: entity.BaseEntity{ID: id},
		Name:       name,
		Email:      name + "@example.com",
		AuthId:     id + "-auth",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedDirectChat(t *testing.T, db *gorm.DB, id string, userIDs ...string) entity.Chat {
	chat := entity.Chat{
		BaseEntity: entity.BaseEntity{ID: id},
		ChatType:   enum.ChatTypeDirect,
	}
	require.NoError(t, db.Create(&chat).Error)
	for _, userID := range userIDs {
		member := entity.ChatMember{ChatID: id, UserID: userID}
		require.NoError(t, db.Create(&member).Error)
	}
	return chat
}

func seedMessage(t *testing.T, db *gorm.DB, id, chatID, senderID, content string, createdAt time.Time) entity.Message {
	message := entity.Message{
		BaseEntity:  entity.BaseEntity{ID: id, CreatedAt: createdAt},
		ChatID:      chatID,
		SenderID:    senderID,
		Content:     content,
		MessageType: enum.MessageTypeText,
	}
	require.NoError(t, db.Create(&message).Error)
	return message
}
