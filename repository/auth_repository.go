package repository

import (
	"gorm.io/gorm"

	"notes-hub-api/entity"
)

type AuthRepository struct {
	Repository[entity.Account]
}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{}
}

func (repository AuthRepository) FindByUsername(db *gorm.DB, username string) (entity.Account, error) {
	account := &entity.Account{}
	err := db.Preload("User").Where("user_name = ?", username).First(account).Error
	if err != nil {
		return *account, err
	}
	return *account, nil
}
