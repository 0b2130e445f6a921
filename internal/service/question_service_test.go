package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/models"
	"github.com/knowhive/knowhive/internal/repository"
	"github.com/knowhive/knowhive/internal/service"
	"github.com/knowhive/knowhive/internal/testutil"
	"github.com/knowhive/knowhive/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type QuestionServiceTestSuite struct {
	suite.Suite
	testDB          *testutil.TestDatabase
	questionService *service.QuestionService
	author          *models.User
	other           *models.User
}

func (s *QuestionServiceTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.questionService = service.NewQuestionService(repository.NewQuestionRepository(s.testDB.DB))
}

func (s *QuestionServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *QuestionServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	author, err := testutil.CreateTestUser("Author", "author@example.com", "pass1234", "male")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(author).Error)
	s.author = author

	other, err := testutil.CreateTestUser("Other", "other@example.com", "pass1234", "female")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(other).Error)
	s.other = other
}

func (s *QuestionServiceTestSuite) TestCreateCapturesAuthorName() {
	question, err := s.questionService.Create(s.author, "How do goroutines work?", "details")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.author.ID, question.UserID)
	assert.Equal(s.T(), "Author", question.Name)
}

func (s *QuestionServiceTestSuite) TestListNewestFirst() {
	older := testutil.CreateTestQuestion(s.author, "older", "")
	older.CreatedAt = time.Now().Add(-1 * time.Hour)
	require.NoError(s.T(), s.testDB.DB.Create(older).Error)

	newer := testutil.CreateTestQuestion(s.author, "newer", "")
	newer.CreatedAt = time.Now()
	require.NoError(s.T(), s.testDB.DB.Create(newer).Error)

	questions, err := s.questionService.List()
	require.NoError(s.T(), err)
	require.Len(s.T(), questions, 2)
	assert.Equal(s.T(), "newer", questions[0].TextOne)
	assert.Equal(s.T(), "older", questions[1].TextOne)
}

func (s *QuestionServiceTestSuite) TestAddAnswerUsesAuthenticatedName() {
	question, err := s.questionService.Create(s.author, "question text", "")
	require.NoError(s.T(), err)

	updated, err := s.questionService.AddAnswer(s.other, question.ID, "an answer")

	require.NoError(s.T(), err)
	require.Len(s.T(), updated.Answers, 1)
	assert.Equal(s.T(), s.other.ID, updated.Answers[0].UserID)
	assert.Equal(s.T(), "Other", updated.Answers[0].Name)
}

func (s *QuestionServiceTestSuite) TestAddAnswerMissingQuestion() {
	_, err := s.questionService.AddAnswer(s.other, uuid.New(), "an answer")

	assert.ErrorIs(s.T(), err, service.ErrQuestionNotFound)
}

func (s *QuestionServiceTestSuite) TestToggleUpvoteTwiceRestoresCount() {
	question, err := s.questionService.Create(s.author, "question text", "")
	require.NoError(s.T(), err)

	updated, err := s.questionService.ToggleUpvote(s.other.ID, question.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), updated.Upvotes, 1)

	updated, err = s.questionService.ToggleUpvote(s.other.ID, question.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), updated.Upvotes, 0)
}

func (s *QuestionServiceTestSuite) TestUpvotesFromDistinctUsersAccumulate() {
	question, err := s.questionService.Create(s.author, "question text", "")
	require.NoError(s.T(), err)

	_, err = s.questionService.ToggleUpvote(s.author.ID, question.ID)
	require.NoError(s.T(), err)

	updated, err := s.questionService.ToggleUpvote(s.other.ID, question.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), updated.Upvotes, 2)
}

func (s *QuestionServiceTestSuite) TestDeleteByNonAuthorRejected() {
	question, err := s.questionService.Create(s.author, "question text", "")
	require.NoError(s.T(), err)

	err = s.questionService.Delete(s.other.ID, question.ID)
	assert.ErrorIs(s.T(), err, service.ErrNotAuthor)

	questions, err := s.questionService.List()
	require.NoError(s.T(), err)
	assert.Len(s.T(), questions, 1, "question must survive a non-author delete")
}

func (s *QuestionServiceTestSuite) TestDeleteByAuthor() {
	question, err := s.questionService.Create(s.author, "question text", "")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.questionService.Delete(s.author.ID, question.ID))

	questions, err := s.questionService.List()
	require.NoError(s.T(), err)
	assert.Len(s.T(), questions, 0)
}

func (s *QuestionServiceTestSuite) TestDeleteAllOnlyRemovesOwnQuestions() {
	_, err := s.questionService.Create(s.author, "mine one", "")
	require.NoError(s.T(), err)
	_, err = s.questionService.Create(s.author, "mine two", "")
	require.NoError(s.T(), err)
	_, err = s.questionService.Create(s.other, "theirs", "")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.questionService.DeleteAll(s.author.ID))

	questions, err := s.questionService.List()
	require.NoError(s.T(), err)
	require.Len(s.T(), questions, 1)
	assert.Equal(s.T(), "theirs", questions[0].TextOne)
}

func TestQuestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuestionServiceTestSuite))
}
