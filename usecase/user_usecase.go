package usecase

import (
	"context"

	"notes-hub-api/dto/res"
)

type UserUsecase interface {
	GetUserByToken(ctx context.Context, token string) (res.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]res.UserResponse, error)
	SearchUsers(ctx context.Context, callerID, query string) ([]res.UserResponse, error)
}
