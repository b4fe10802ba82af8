package gormstore

import (
	"context"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"gorm.io/gorm"
)

func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, s.db)
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return get[models.User](ctx, s.db, id, store.ErrUserNotFound)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, store.ErrUserNotFound)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, store.ErrUserNotFound)
	}
	return &user, nil
}

// checkUnique reports which unique field, if any, another user already
// holds. self is excluded.
func checkUnique(tx *gorm.DB, self uint, username, email string) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("username = ? AND id <> ?", username, self).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return store.ErrUsernameTaken
	}
	if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, self).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return store.ErrEmailTaken
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUnique(tx, 0, user.Username, user.Email); err != nil {
			return err
		}
		return translate(tx.Create(&user).Error, store.ErrUserNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return translate(err, store.ErrUserNotFound)
		}
		if update.Username != nil {
			user.Username = *update.Username
		}
		if update.Email != nil {
			user.Email = *update.Email
		}
		if err := checkUnique(tx, id, user.Username, user.Email); err != nil {
			return err
		}
		if update.PasswordHash != nil {
			user.PasswordHash = *update.PasswordHash
		}
		if update.Role != nil {
			user.Role = *update.Role
		}
		if update.Active != nil {
			user.Active = *update.Active
		}
		return translate(tx.Save(&user).Error, store.ErrUserNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	return remove[models.User](ctx, s.db, id, store.ErrUserNotFound)
}
