package res

// ChatResponse annotates a chat with what the list view needs: the other
// members, the caller's unread count and the caller's lastRead marker.
type ChatResponse struct {
	ChatID          string         `json:"chatId"`
	ChatType        string         `json:"chatType"`
	ChatName        string         `json:"chatName"`
	Members         []UserResponse `json:"members"`
	UnreadCount     int64          `json:"unreadCount"`
	LastRead        string         `json:"lastRead,omitempty"`
	LastMessage     string         `json:"lastMessage,omitempty"`
	LastMessageTime string         `json:"lastMessageTime,omitempty"`
}

type MessageResponse struct {
	MessageID    string   `json:"messageId"`
	ChatID       string   `json:"chatId"`
	SenderID     string   `json:"senderId"`
	SenderName   string   `json:"senderName"`
	SenderAvatar string   `json:"senderAvatar,omitempty"`
	Content      string   `json:"content"`
	Type         string   `json:"type"`
	ReplyTo      *string  `json:"replyTo,omitempty"`
	FileURL      string   `json:"fileUrl,omitempty"`
	FileName     string   `json:"fileName,omitempty"`
	Deleted      bool     `json:"deleted"`
	CreatedAt    string   `json:"createdAt"`
}
