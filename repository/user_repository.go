package repository

import (
	"context"

	"gorm.io/gorm"

	"notes-hub-api/entity"
)

type UserRepository struct {
	Repository[entity.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Search matches name or email substrings case-insensitively, excludes the
// caller and caps the result for the new-chat picker.
func (repository UserRepository) Search(ctx context.Context, db *gorm.DB, callerID, query string, limit int) ([]entity.User, error) {
	var users []entity.User
	pattern := "%" + query + "%"
	err := db.WithContext(ctx).
		Where("id <> ?", callerID).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}
