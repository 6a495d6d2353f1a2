package entity

import "notes-hub-api/enum"

// DeletedContent replaces Message.Content on soft delete. The row is kept
// so replies pointing at the message stay resolvable.
const DeletedContent = "This message was deleted"

type Message struct {
	BaseEntity
	ChatID      string           `json:"chatId" gorm:"type:varchar(255);not null;index"`
	SenderID    string           `json:"senderId" gorm:"type:varchar(255);not null;index"`
	Content     string           `json:"content" gorm:"type:TEXT"`
	MessageType enum.MessageType `json:"type" gorm:"type:varchar(5);default:'text'"`
	ReplyToID   *string          `json:"replyTo,omitempty" gorm:"type:varchar(255);index"`
	FileURL     string           `json:"fileUrl,omitempty" gorm:"type:text"`
	FileName    string           `json:"fileName,omitempty" gorm:"type:varchar(255)"`
	Deleted     bool             `json:"deleted" gorm:"default:false"`

	Chat      Chat              `json:"-" gorm:"foreignKey:ChatID;references:ID"`
	Sender    User              `json:"-" gorm:"foreignKey:SenderID;references:ID"`
	ReplyTo   *Message          `json:"-" gorm:"foreignKey:ReplyToID;references:ID"`
	Reads     []MessageRead     `json:"-" gorm:"foreignKey:MessageID"`
	Reactions []MessageReaction `json:"-" gorm:"foreignKey:MessageID"`
}
