package user

import (
	"errors"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/notevault/core/internal/models"
	sessionpkg "github.com/notevault/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Get(userID string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update applies profile changes after re-verifying the current password.
func (s *Service) Update(userID string, dto *UpdateDTO) (*models.UserModel, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.CurrentPassword)); err != nil {
		return nil, errWrongPassword
	}

	updates := map[string]any{}
	if dto.Email != "" && dto.Email != u.Email {
		updates["email"] = dto.Email
	}
	if dto.Name != "" && dto.Name != u.Name {
		updates["name"] = dto.Name
	}
	if dto.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		return u, nil
	}

	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		var mysqlErr *mysqlDriver.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, errEmailTaken
		}
		return nil, err
	}
	return s.Get(userID)
}

// Delete removes the account and everything it owns in one transaction.
func (s *Service) Delete(userID string) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.NoteModel{}).Error; err != nil {
			return err
		}
		if err := sessionpkg.DeleteAllForUser(tx, userID); err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&models.UserModel{}).Error
	})
}
