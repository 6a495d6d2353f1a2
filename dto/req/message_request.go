package req

// MessageRequest is shared by the websocket message:send event and the REST
// send endpoint. FileType is transient metadata used to derive the stored
// message type; it is broadcast but never persisted.
type MessageRequest struct {
	ChatID   string  `json:"chatId"`
	Content  string  `json:"content" validate:"required_without=FileURL"`
	Type     string  `json:"type,omitempty"`
	ReplyTo  *string `json:"replyTo,omitempty"`
	FileURL  string  `json:"fileUrl,omitempty"`
	FileName string  `json:"fileName,omitempty"`
	FileType string  `json:"fileType,omitempty"`
}

type ReadRequest struct {
	ChatID     string   `json:"chatId"`
	MessageIDs []string `json:"messageIds" validate:"required,min=1"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,max=16"`
}
