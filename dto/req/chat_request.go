package req

type DirectChatRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type GroupChatRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=50"`
	MemberIDs []string `json:"memberIds" validate:"required,min=1"`
}
