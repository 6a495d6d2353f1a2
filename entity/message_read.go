package entity

// MessageRead is a read receipt. The (message, user) pair is unique and
// inserts are idempotent: acknowledging the same message twice keeps one row.
type MessageRead struct {
	BaseEntity
	MessageID string `json:"messageId" gorm:"type:varchar(255);not null;index:idx_message_read,unique"`
	UserID    string `json:"userId" gorm:"type:varchar(255);not null;index:idx_message_read,unique"`
}

// MessageReaction keys on (message, user, emoji) so adding the same
// reaction twice keeps one row, mirroring MessageRead.
type MessageReaction struct {
	BaseEntity
	MessageID string `json:"messageId" gorm:"type:varchar(255);not null;index:idx_message_reaction,unique"`
	UserID    string `json:"userId" gorm:"type:varchar(255);not null;index:idx_message_reaction,unique"`
	Emoji     string `json:"emoji" gorm:"type:varchar(16);not null;index:idx_message_reaction,unique"`
}
