package usecase

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"notes-hub-api/config/logger"
	"notes-hub-api/dto/res"
	"notes-hub-api/entity"
	"notes-hub-api/repository"
	"notes-hub-api/security"
)

// Result cap for the new-chat user picker.
const searchResultLimit = 10

type UserUsecaseImpl struct {
	*repository.UserRepository
	*gorm.DB
	Log *logger.AppLogger
	*security.JWT
}

func NewUserUsecase(userRepository *repository.UserRepository, DB *gorm.DB, log *logger.AppLogger, JWT *security.JWT) UserUsecase {
	return &UserUsecaseImpl{UserRepository: userRepository, DB: DB, Log: log, JWT: JWT}
}

func (uc *UserUsecaseImpl) GetUserByToken(ctx context.Context, token string) (res.UserResponse, error) {
	uc.Log.Http.Trace.Trace().Msg("Extracting user ID from token")

	userIdFromToken, err := uc.JWT.GetUserIdFromToken(token)
	if err != nil {
		uc.Log.Http.Error.Error().
			Err(err).
			Msg("Failed to extract user ID from token")
		return res.UserResponse{}, errors.New("invalid token")
	}

	var user entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &user, userIdFromToken); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			uc.Log.Http.Warning.Warn().
				Str("userId", userIdFromToken).
				Msg("User not found")
		} else {
			uc.Log.Http.Error.Error().
				Err(err).
				Str("userId", userIdFromToken).
				Msg("Failed to find user")
		}
		return res.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

func (uc *UserUsecaseImpl) GetAllUsers(ctx context.Context) ([]res.UserResponse, error) {
	var users []entity.User
	if err := uc.UserRepository.FindAll(ctx, uc.DB, &users); err != nil {
		uc.Log.Http.Error.Error().
			Err(err).
			Msg("Failed to get all users")
		return nil, err
	}

	userResponses := make([]res.UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, toUserResponse(user))
	}

	return userResponses, nil
}

func (uc *UserUsecaseImpl) SearchUsers(ctx context.Context, callerID, query string) ([]res.UserResponse, error) {
	uc.Log.Http.Trace.Trace().
		Str("query", query).
		Msg("Searching users")

	users, err := uc.UserRepository.Search(ctx, uc.DB, callerID, query, searchResultLimit)
	if err != nil {
		uc.Log.Http.Error.Error().
			Err(err).
			Str("query", query).
			Msg("Failed to search users")
		return nil, err
	}

	userResponses := make([]res.UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, toUserResponse(user))
	}

	return userResponses, nil
}

func toUserResponse(user entity.User) res.UserResponse {
	return res.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
