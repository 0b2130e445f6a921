package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/models"
	"github.com/knowhive/knowhive/internal/repository"
	"github.com/knowhive/knowhive/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotAuthor        = errors.New("only the author can delete a question")
)

type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// List returns all questions, newest first.
func (s *QuestionService) List() ([]models.Question, error) {
	questions, err := s.questionRepo.GetAll()
	if err != nil {
		logger.Log.Error("Failed to list questions", zap.Error(err))
		return nil, err
	}
	return questions, nil
}

// Create posts a question, capturing the author's id and display name at
// creation time.
func (s *QuestionService) Create(author *models.User, textOne, textTwo string) (*models.Question, error) {
	question := &models.Question{
		ID:      uuid.New(),
		UserID:  author.ID,
		Name:    author.Name,
		TextOne: textOne,
		TextTwo: textTwo,
		Answers: []models.Answer{},
		Upvotes: []models.Upvote{},
	}

	if err := s.questionRepo.Create(question); err != nil {
		logger.Log.Error("Failed to create question",
			zap.String("user_id", author.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Question created",
		zap.String("question_id", question.ID.String()),
		zap.String("user_id", author.ID.String()),
	)

	return question, nil
}

// AddAnswer appends one answer to a question. The answer's author name is
// taken from the authenticated user, not the request.
func (s *QuestionService) AddAnswer(author *models.User, questionID uuid.UUID, text string) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		logger.Log.Error("Failed to fetch question",
			zap.String("question_id", questionID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	answer := &models.Answer{
		ID:         uuid.New(),
		QuestionID: question.ID,
		UserID:     author.ID,
		Name:       author.Name,
		Text:       text,
	}

	if err := s.questionRepo.AddAnswer(answer); err != nil {
		logger.Log.Error("Failed to save answer",
			zap.String("question_id", questionID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Answer added",
		zap.String("question_id", questionID.String()),
		zap.String("user_id", author.ID.String()),
	)

	return s.questionRepo.GetByID(questionID)
}

// ToggleUpvote adds the user's upvote if absent, removes it if present,
// and returns the updated question. Concurrent toggles from the same user
// resolve last-write-wins, bounded by the unique (question, user) index.
func (s *QuestionService) ToggleUpvote(userID, questionID uuid.UUID) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	existing, err := s.questionRepo.GetUpvote(questionID, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.questionRepo.RemoveUpvote(questionID, userID); err != nil {
			logger.Log.Error("Failed to remove upvote",
				zap.String("question_id", questionID.String()),
				zap.Error(err),
			)
			return nil, err
		}
	} else {
		upvote := &models.Upvote{
			ID:         uuid.New(),
			QuestionID: questionID,
			UserID:     userID,
		}
		if err := s.questionRepo.AddUpvote(upvote); err != nil {
			logger.Log.Error("Failed to add upvote",
				zap.String("question_id", questionID.String()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	logger.Log.Info("Upvote toggled",
		zap.String("question_id", questionID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("removed", existing != nil),
	)

	return s.questionRepo.GetByID(questionID)
}

// Delete removes one question. Only the author may delete it.
func (s *QuestionService) Delete(userID, questionID uuid.UUID) error {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}
	if question.UserID != userID {
		logger.Log.Warn("Question delete rejected: requester is not the author",
			zap.String("question_id", questionID.String()),
			zap.String("user_id", userID.String()),
		)
		return ErrNotAuthor
	}

	if err := s.questionRepo.Delete(questionID); err != nil {
		logger.Log.Error("Failed to delete question",
			zap.String("question_id", questionID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Question deleted", zap.String("question_id", questionID.String()))
	return nil
}

// DeleteAll removes every question the user authored.
func (s *QuestionService) DeleteAll(userID uuid.UUID) error {
	if err := s.questionRepo.DeleteAllByUser(userID); err != nil {
		logger.Log.Error("Failed to delete user's questions",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("All questions deleted", zap.String("user_id", userID.String()))
	return nil
}
