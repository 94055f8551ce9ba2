package note

import (
	"errors"

	"github.com/notevault/core/internal/models"
	"github.com/notevault/core/internal/pkg/pagination"
	"github.com/notevault/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns the user's notes, oldest first, paginated.
func (s *Service) List(userID string, q pagination.Query) ([]models.NoteModel, response.Pagination, error) {
	notes := make([]models.NoteModel, 0)
	query := s.db.Model(&models.NoteModel{}).
		Where("user_id = ?", userID).
		Order("created_at ASC")
	page, err := pagination.Paginate(query, q, &notes)
	return notes, page, err
}

func (s *Service) Create(userID, content string) (*models.NoteModel, error) {
	n := &models.NoteModel{UserID: userID, Content: content}
	return n, s.db.Create(n).Error
}

// Get returns the note, or nil when it does not exist or belongs to someone
// else. A foreign note is indistinguishable from a missing one.
func (s *Service) Get(noteID, userID string) (*models.NoteModel, error) {
	var n models.NoteModel
	if err := s.db.Where("id = ? AND user_id = ?", noteID, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (s *Service) Update(noteID, userID, content string) (*models.NoteModel, error) {
	n, err := s.Get(noteID, userID)
	if err != nil || n == nil {
		return nil, err
	}
	if err := s.db.Model(n).Update("content", content).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes one note, scoped to its owner. Zero affected rows is not an
// error.
func (s *Service) Delete(noteID, userID string) error {
	return s.db.Where("id = ? AND user_id = ?", noteID, userID).
		Delete(&models.NoteModel{}).Error
}

// DeleteAll removes every note the user owns.
func (s *Service) DeleteAll(userID string) error {
	return s.db.Where("user_id = ?", userID).
		Delete(&models.NoteModel{}).Error
}
