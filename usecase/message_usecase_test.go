package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-hub-api/dto/req"
	"notes-hub-api/entity"
	"notes-hub-api/enum"
)

func TestSendMessageRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedUser(t, db, "userX", "Mallory")
	seedDirectChat(t, db, "chat1", "userA", "userB")

	_, err := uc.SendMessage(ctx, "userX", req.MessageRequest{ChatID: "chat1", Content: "hi"})
	assert.ErrorIs(t, err, ErrNotChatMember)

	var count int64
	db.Model(&entity.Message{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSendMessagePersistsAndComposesBroadcast(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedDirectChat(t, db, "chat1", "userA", "userB")

	broadcast, err := uc.SendMessage(ctx, "userA", req.MessageRequest{
		ChatID:   "chat1",
		Content:  "see attachment",
		FileURL:  "https://files.example.com/notes.png",
		FileName: "notes.png",
		FileType: "image/png",
	})
	require.NoError(t, err)

	assert.Equal(t, "chat1", broadcast.ChatID)
	assert.Equal(t, "Alice", broadcast.SenderName)
	assert.Equal(t, string(enum.MessageTypeImage), broadcast.Type)
	// fileType travels on the broadcast only
	assert.Equal(t, "image/png", broadcast.FileType)

	var stored entity.Message
	require.NoError(t, db.First(&stored, "id = ?", broadcast.MessageID).Error)
	assert.Equal(t, enum.MessageTypeImage, stored.MessageType)
	assert.False(t, stored.Deleted)
}

func TestSendMessageBumpsChatUpdatedAt(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	chat := seedDirectChat(t, db, "chat1", "userA", "userB")

	before := chat.UpdatedAt
	time.Sleep(10 * time.Millisecond)

	_, err := uc.SendMessage(ctx, "userA", req.MessageRequest{ChatID: "chat1", Content: "bump"})
	require.NoError(t, err)

	var reloaded entity.Chat
	require.NoError(t, db.First(&reloaded, "id = ?", "chat1").Error)
	assert.True(t, reloaded.UpdatedAt.After(before))
}

func TestDeriveType(t *testing.T) {
	tests := []struct {
		name    string
		payload req.MessageRequest
		want    enum.MessageType
	}{
		{"plain text", req.MessageRequest{Content: "hi"}, enum.MessageTypeText},
		{"image mime", req.MessageRequest{FileURL: "u", FileType: "image/jpeg"}, enum.MessageTypeImage},
		{"other file", req.MessageRequest{FileURL: "u", FileName: "doc.pdf", FileType: "application/pdf"}, enum.MessageTypeFile},
		{"file without mime", req.MessageRequest{FileURL: "u"}, enum.MessageTypeFile},
		{"caller supplied", req.MessageRequest{Content: "x", Type: "image"}, enum.MessageTypeImage},
		{"unknown caller type", req.MessageRequest{Content: "x", Type: "sticker"}, enum.MessageTypeText},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveType(tc.payload))
		})
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedDirectChat(t, db, "chat1", "userA", "userB")
	seedMessage(t, db, "m1", "chat1", "userB", "hello", time.Now().Add(-time.Minute))
	seedMessage(t, db, "m2", "chat1", "userB", "again", time.Now())

	_, err := uc.MarkRead(ctx, "userA", "chat1", []string{"m1", "m2"})
	require.NoError(t, err)

	_, err = uc.MarkRead(ctx, "userA", "chat1", []string{"m1", "m2"})
	require.NoError(t, err)

	var count int64
	db.Model(&entity.MessageRead{}).Where("user_id = ?", "userA").Count(&count)
	assert.Equal(t, int64(2), count)

	var member entity.ChatMember
	require.NoError(t, db.First(&member, "chat_id = ? AND user_id = ?", "chat1", "userA").Error)
	assert.False(t, member.LastRead.IsZero())
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedDirectChat(t, db, "chat1", "userA", "userB")
	seedMessage(t, db, "m1", "chat1", "userA", "secret", time.Now())

	_, err := uc.DeleteMessage(ctx, "userB", "m1")
	assert.ErrorIs(t, err, ErrNotMessageSender)

	var unchanged entity.Message
	require.NoError(t, db.First(&unchanged, "id = ?", "m1").Error)
	assert.False(t, unchanged.Deleted)
	assert.Equal(t, "secret", unchanged.Content)

	broadcast, err := uc.DeleteMessage(ctx, "userA", "m1")
	require.NoError(t, err)
	assert.Equal(t, "chat1", broadcast.ChatID)

	// soft delete: placeholder content, row kept for replies
	var deleted entity.Message
	require.NoError(t, db.First(&deleted, "id = ?", "m1").Error)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, entity.DeletedContent, deleted.Content)
}

func TestDeleteMessageNotFound(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)

	_, err := uc.DeleteMessage(context.Background(), "userA", "missing")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestReactAddThenRemove(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedDirectChat(t, db, "chat1", "userA", "userB")
	seedMessage(t, db, "m1", "chat1", "userA", "nice notes", time.Now())

	added, err := uc.React(ctx, "userB", "m1", "👍", enum.ReactionAdd)
	require.NoError(t, err)
	require.Len(t, added.Reactions, 1)
	assert.Equal(t, "👍", added.Reactions[0].Emoji)
	assert.Equal(t, "chat1", added.ChatID)

	removed, err := uc.React(ctx, "userB", "m1", "👍", enum.ReactionRemove)
	require.NoError(t, err)
	assert.Empty(t, removed.Reactions)
}

func TestReactAddIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedDirectChat(t, db, "chat1", "userA", "userB")
	seedMessage(t, db, "m1", "chat1", "userA", "nice notes", time.Now())

	_, err := uc.React(ctx, "userB", "m1", "👍", enum.ReactionAdd)
	require.NoError(t, err)
	again, err := uc.React(ctx, "userB", "m1", "👍", enum.ReactionAdd)
	require.NoError(t, err)
	require.Len(t, again.Reactions, 1)

	var count int64
	db.Model(&entity.MessageReaction{}).Where("message_id = ?", "m1").Count(&count)
	assert.Equal(t, int64(1), count)

	// one remove clears the reaction entirely
	removed, err := uc.React(ctx, "userB", "m1", "👍", enum.ReactionRemove)
	require.NoError(t, err)
	assert.Empty(t, removed.Reactions)
}

func TestReactUnknownMessage(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)

	_, err := uc.React(context.Background(), "userA", "missing", "👍", enum.ReactionAdd)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestGetMessagesPaginatesChronologically(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)
	ctx := context.Background()

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedDirectChat(t, db, "chat1", "userA", "userB")

	now := time.Now()
	seedMessage(t, db, "m1", "chat1", "userA", "first", now.Add(-3*time.Minute))
	seedMessage(t, db, "m2", "chat1", "userB", "second", now.Add(-2*time.Minute))
	seedMessage(t, db, "m3", "chat1", "userA", "third", now.Add(-1*time.Minute))

	page, err := uc.GetMessages(ctx, "userA", "chat1", 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	// newest two, oldest first
	assert.Equal(t, "m2", page[0].MessageID)
	assert.Equal(t, "m3", page[1].MessageID)

	cursor := now.Add(-2 * time.Minute)
	older, err := uc.GetMessages(ctx, "userA", "chat1", 2, &cursor)
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, "m1", older[0].MessageID)
}

func TestGetMessagesRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	uc := newMessageUsecase(db)

	seedUser(t, db, "userA", "Alice")
	seedUser(t, db, "userB", "Bob")
	seedUser(t, db, "userX", "Mallory")
	seedDirectChat(t, db, "chat1", "userA", "userB")

	_, err := uc.GetMessages(context.Background(), "userX", "chat1", 0, nil)
	assert.ErrorIs(t, err, ErrNotChatMember)
}
