package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/models"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func answerOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// Empty answer/upvote lists serialize as [] on the wire, not null.
func normalizeQuestion(q *models.Question) {
	if q.Answers == nil {
		q.Answers = []models.Answer{}
	}
	if q.Upvotes == nil {
		q.Upvotes = []models.Upvote{}
	}
}

func (r *QuestionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

// GetAll returns every question with answers and upvotes, newest first.
func (r *QuestionRepository) GetAll() ([]models.Question, error) {
	var questions []models.Question
	err := r.db.
		Preload("Answers", answerOrder).
		Preload("Upvotes").
		Order("created_at DESC").
		Find(&questions).Error
	for i := range questions {
		normalizeQuestion(&questions[i])
	}
	return questions, err
}

// GetByID returns one question with answers and upvotes, or nil if absent.
func (r *QuestionRepository) GetByID(id uuid.UUID) (*models.Question, error) {
	var question models.Question
	err := r.db.
		Preload("Answers", answerOrder).
		Preload("Upvotes").
		Where("id = ?", id).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	normalizeQuestion(&question)
	return &question, nil
}

func (r *QuestionRepository) AddAnswer(answer *models.Answer) error {
	return r.db.Create(answer).Error
}

// GetUpvote returns the requesting user's upvote on a question, or nil if
// they have none.
func (r *QuestionRepository) GetUpvote(questionID, userID uuid.UUID) (*models.Upvote, error) {
	var upvote models.Upvote
	err := r.db.
		Where("question_id = ? AND user_id = ?", questionID, userID).
		First(&upvote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upvote, nil
}

func (r *QuestionRepository) AddUpvote(upvote *models.Upvote) error {
	return r.db.Create(upvote).Error
}

func (r *QuestionRepository) RemoveUpvote(questionID, userID uuid.UUID) error {
	return r.db.
		Where("question_id = ? AND user_id = ?", questionID, userID).
		Delete(&models.Upvote{}).Error
}

// Delete removes a question and its dependent answers and upvotes.
func (r *QuestionRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Upvote{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Question{}).Error
	})
}

// DeleteAllByUser removes every question a user authored, including the
// answers and upvotes hanging off them.
func (r *QuestionRepository) DeleteAllByUser(userID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&models.Question{}).
			Where("user_id = ?", userID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("question_id IN ?", ids).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN ?", ids).Delete(&models.Upvote{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Question{}).Error
	})
}
