package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"notes-hub-api/dto/req"
	"notes-hub-api/dto/res"
	"notes-hub-api/entity"
	"notes-hub-api/repository"
	"notes-hub-api/security"
	"notes-hub-api/util"
)

type AuthUsecaseImpl struct {
	*repository.AuthRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
	*security.JWT
}

func NewAuthUsecase(authRepository *repository.AuthRepository, validate *validator.Validate, DB *gorm.DB, logger *logrus.Logger, JWT *security.JWT) AuthUsecase {
	return &AuthUsecaseImpl{AuthRepository: authRepository, Validate: validate, DB: DB, Logger: logger, JWT: JWT}
}

func (uc *AuthUsecaseImpl) RegisterUser(ctx context.Context, request *req.RegisterRequest) (res.RegisterResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		uc.Logger.WithError(err).Errorf("failed to validate register request: %v", err)
		return res.RegisterResponse{}, err
	}

	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	hashPassword, err := util.HashPassword(request.Password)
	if err != nil {
		return res.RegisterResponse{}, err
	}

	newUser := &entity.User{
		Name:  request.Name,
		Email: request.Email,
	}

	newAccount := &entity.Account{
		UserName: request.Username,
		Password: hashPassword,
		User:     *newUser,
	}

	if err := uc.AuthRepository.Save(ctx, trx, newAccount); err != nil {
		uc.Logger.WithError(err).Errorf("failed to save user: %v", err)
		return res.RegisterResponse{}, err
	}

	if err := trx.Commit().Error; err != nil {
		uc.Logger.WithError(err).Errorf("failed to commit user: %v", err)
		return res.RegisterResponse{}, err
	}

	return res.RegisterResponse{
		ID:       newAccount.User.ID,
		Username: newAccount.UserName,
		Email:    newAccount.User.Email,
	}, nil
}

func (uc *AuthUsecaseImpl) LoginUser(ctx context.Context, request *req.LoginRequest) (res.LoginResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		uc.Logger.WithError(err).Errorf("failed to validate login request: %v", err)
		return res.LoginResponse{}, err
	}

	currentAccount, err := uc.AuthRepository.FindByUsername(uc.DB.WithContext(ctx), request.Username)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to find username: %v", err)
		return res.LoginResponse{}, ErrInvalidCredentials
	}

	if matchPassword := util.ComparePassword(currentAccount.Password, request.Password); !matchPassword {
		uc.Logger.Warnf("password mismatch for user %s", request.Username)
		return res.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := uc.JWT.GenerateToken(&currentAccount.User)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to generate token: %v", err)
		return res.LoginResponse{}, err
	}

	return res.LoginResponse{Token: token}, nil
}
