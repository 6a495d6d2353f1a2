package entity

import (
	"time"

	"notes-hub-api/enum"
)

// Chat.UpdatedAt is bumped on every new message so the chat list can be
// ordered by recent activity.
type Chat struct {
	BaseEntity
	ChatType  enum.ChatType `json:"chatType" gorm:"type:varchar(6);index"`
	GroupName string        `json:"groupName,omitempty" gorm:"type:varchar(50);null"`

	Members  []ChatMember `json:"members" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
	Messages []Message    `json:"messages" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
}

// ChatMember lives for as long as its chat does. LastRead moves forward
// whenever the member acknowledges messages.
type ChatMember struct {
	BaseEntity
	ChatID   string    `json:"chatId" gorm:"type:varchar(255);not null;index:idx_chat_member,unique"`
	UserID   string    `json:"userId" gorm:"type:varchar(255);not null;index:idx_chat_member,unique"`
	LastRead time.Time `json:"lastRead" gorm:"null"`

	Chat Chat `json:"-" gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE;"`
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
