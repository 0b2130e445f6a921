package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/middleware"
	"github.com/knowhive/knowhive/internal/service"
	"github.com/knowhive/knowhive/pkg/logger"
	"go.uber.org/zap"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type QuestionRequest struct {
	TextOne string `json:"textone" binding:"required"`
	TextTwo string `json:"texttwo"`
}

type AnswerRequest struct {
	Text string `json:"text" binding:"required"`
}

// List returns all questions, newest first. Public.
func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questionService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Create posts a new question under the authenticated user's name.
func (h *QuestionHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Question request parsing failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	question, err := h.questionService.Create(user, req.TextOne, req.TextTwo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusOK, question)
}

// Answer appends one answer to the named question.
func (h *QuestionHandler) Answer(c *gin.Context) {
	user := middleware.CurrentUser(c)

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"questionnotfound": "Question not found"})
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Answer request parsing failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	question, err := h.questionService.AddAnswer(user, questionID, req.Text)
	if err != nil {
		if err == service.ErrQuestionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"questionnotfound": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save answer"})
		return
	}

	c.JSON(http.StatusOK, question)
}

// Upvote toggles the requester's upvote on a question and returns the
// updated question.
func (h *QuestionHandler) Upvote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"questionnotfound": "Question not found"})
		return
	}

	question, err := h.questionService.ToggleUpvote(user.ID, questionID)
	if err != nil {
		if err == service.ErrQuestionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"questionnotfound": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle upvote"})
		return
	}

	c.JSON(http.StatusOK, question)
}

// Delete removes one question; only its author may do so.
func (h *QuestionHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"questionnotfound": "Question not found"})
		return
	}

	if err := h.questionService.Delete(user.ID, questionID); err != nil {
		switch err {
		case service.ErrQuestionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"questionnotfound": "Question not found"})
		case service.ErrNotAuthor:
			c.JSON(http.StatusForbidden, gin.H{"notauthorized": "Only the author can delete this question"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionremoved": "Question successfully removed"})
}

// DeleteAll removes every question the requester authored.
func (h *QuestionHandler) DeleteAll(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.questionService.DeleteAll(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionremoved": "All questions removed successfully"})
}
