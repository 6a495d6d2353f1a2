package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-hub-api/entity"
	"notes-hub-api/enum"
)

func TestEnsureDirectChatCreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	uc := newChatUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")

	first, err := uc.EnsureDirectChat(ctx, "userA", "userB")
	require.NoError(t, err)

	second, err := uc.EnsureDirectChat(ctx, "userA", "userB")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// order of the pair must not matter
	reversed, err := uc.EnsureDirectChat(ctx, "userB", "userA")
	require.NoError(t, err)
	assert.Equal(t, first.ID, reversed.ID)

	var count int64
	db.Model(&entity.Chat{}).Where("chat_type = ?", enum.ChatTypeDirect).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateGroupChatDedupesCreator(t *testing.T) {
	db := setupTestDB(t)
	uc := newChatUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")

	chat, err := uc.CreateGroupChat(ctx, "study group", "userA", []string{"userA", "userB"})
	require.NoError(t, err)
	assert.Equal(t, enum.ChatTypeGroup, chat.ChatType)

	var members []entity.ChatMember
	db.Where("chat_id = ?", chat.ID).Find(&members)
	assert.Len(t, members, 2)
}

func TestGetChatsByUserUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	chatUC := newChatUsecase(db)
	messageUC := newMessageUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedDirectChat(t, db, "chat1", "userA", "userB")

	now := time.Now()
	seedMessage(t, db, "m1", "chat1", "userB", "hello", now.Add(-3*time.Minute))
	seedMessage(t, db, "m2", "chat1", "userB", "anyone there?", now.Add(-2*time.Minute))
	seedMessage(t, db, "m3", "chat1", "userA", "hi", now.Add(-1*time.Minute))

	chats, err := chatUC.GetChatsByUser(ctx, "userA")
	require.NoError(t, err)
	require.Len(t, chats, 1)

	// own message must not count against the caller
	assert.Equal(t, int64(2), chats[0].UnreadCount)
	assert.Equal(t, "Bob", chats[0].ChatName)

	_, err = messageUC.MarkRead(ctx, "userA", "chat1", []string{"m1", "m2"})
	require.NoError(t, err)

	chats, err = chatUC.GetChatsByUser(ctx, "userA")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, int64(0), chats[0].UnreadCount)
	assert.NotEmpty(t, chats[0].LastRead)
}

func TestClearChatMemberOnly(t *testing.T) {
	db := setupTestDB(t)
	uc := newChatUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedUser(t, db, "userC", "Carol")
	seedDirectChat(t, db, "chat1", "userA", "userB")
	seedMessage(t, db, "m1", "chat1", "userA", "hello", time.Now())

	err := uc.ClearChat(ctx, "chat1", "userC")
	assert.ErrorIs(t, err, ErrNotChatMember)

	var count int64
	db.Model(&entity.Message{}).Where("chat_id = ?", "chat1").Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, uc.ClearChat(ctx, "chat1", "userA"))

	db.Model(&entity.Message{}).Where("chat_id = ?", "chat1").Count(&count)
	assert.Equal(t, int64(0), count)
}
