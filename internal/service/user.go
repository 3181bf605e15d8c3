package service

import (
	"ModelFlow/config"
	"ModelFlow/internal/repo"
	"ModelFlow/model"
	"ModelFlow/utils"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// CreateUser hashes the password and creates a user. The role is resolved
// from the admin allow-list once, at creation time.
func CreateUser(user *model.User) error {
	user.Password = utils.GetPwd(user.Password)
	if user.Role == "" {
		user.Role = model.RoleUser
		if config.IsAdminEmail(user.Email) {
			user.Role = model.RoleAdmin
		}
	}
	if err := repo.Db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

// FindUserByEmail returns a user by email.
func FindUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := repo.Db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, utils.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// IsEmailExist checks whether an email exists.
func IsEmailExist(email string) error {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}
	return nil
}

// CheckPassword verifies a user's password by email.
func CheckPassword(email, password string) error {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}
	if !utils.CheckPwd(password, user.Password) {
		return errors.New("password error")
	}
	return nil
}
