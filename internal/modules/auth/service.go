package auth

import (
	"errors"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/notevault/core/internal/models"
	"github.com/notevault/core/internal/pkg/jwt"
	"github.com/notevault/core/internal/pkg/requestinfo"
	sessionpkg "github.com/notevault/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Register creates a new user account. The unique index on email is the
// backstop for concurrent signups racing past the pre-check.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).
		Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{Email: dto.Email, Name: dto.Name, Password: string(hash)}
	if err := s.db.Create(&u).Error; err != nil {
		var mysqlErr *mysqlDriver.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, errEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// Login verifies credentials. An unknown email and a wrong password return
// the same error, and both take the same slow path.
func (s *Service) Login(email, password string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(3 * time.Second)
		return nil, errInvalidCredentials
	}
	return &u, nil
}

// IssueSession records a session with the request origin snapshot and signs
// a token bound to it.
func (s *Service) IssueSession(userID string, info requestinfo.Info, ttl time.Duration) (string, *models.SessionModel, error) {
	sess, err := sessionpkg.Create(s.db, userID, info)
	if err != nil {
		return "", nil, err
	}
	token, err := jwt.Sign(userID, sess.ID, ttl)
	if err != nil {
		return "", nil, err
	}
	return token, sess, nil
}
