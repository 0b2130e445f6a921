package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/knowhive/knowhive/internal/models"
	"github.com/knowhive/knowhive/internal/repository"
	"github.com/knowhive/knowhive/internal/service"
	"github.com/knowhive/knowhive/internal/testutil"
	"github.com/knowhive/knowhive/internal/utils"
	"github.com/knowhive/knowhive/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	userRepo    *repository.UserRepository
	authService *service.AuthService
}

func (s *AuthServiceTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.userRepo = repository.NewUserRepository(s.testDB.DB)
	s.authService = service.NewAuthService(s.userRepo, "test-secret-key", 1*time.Hour)
}

func (s *AuthServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthServiceTestSuite) TestRegisterHashesPassword() {
	user, err := s.authService.Register("Alice", "alice@example.com", "plaintext-pass", "female")

	require.NoError(s.T(), err)
	assert.NotEqual(s.T(), "plaintext-pass", user.Password)
	assert.True(s.T(), strings.HasPrefix(user.Password, "$2"), "expected a bcrypt hash at rest")
	assert.True(s.T(), utils.CheckPassword("plaintext-pass", user.Password))
	assert.Equal(s.T(), models.DefaultAvatarFemale, user.Avatar)
}

func (s *AuthServiceTestSuite) TestRegisterDefaultsGenderToMale() {
	user, err := s.authService.Register("Bob", "bob@example.com", "somepassword", "")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "male", user.Gender)
	assert.Equal(s.T(), models.DefaultAvatarMale, user.Avatar)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, err := s.authService.Register("Alice", "dup@example.com", "pass-one", "male")
	require.NoError(s.T(), err)

	_, err = s.authService.Register("Other Alice", "dup@example.com", "pass-two", "female")
	assert.ErrorIs(s.T(), err, service.ErrEmailTaken)

	var count int64
	s.testDB.DB.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

func (s *AuthServiceTestSuite) TestLoginReturnsTokenForSameUser() {
	registered, err := s.authService.Register("Alice", "alice@example.com", "plaintext-pass", "female")
	require.NoError(s.T(), err)

	token, err := s.authService.Login("alice@example.com", "plaintext-pass")
	require.NoError(s.T(), err)

	claims, err := utils.ValidateToken(token, "test-secret-key")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), registered.ID, claims.UserID)
	assert.Equal(s.T(), "alice@example.com", claims.Email)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := s.authService.Register("Alice", "alice@example.com", "right-pass", "female")
	require.NoError(s.T(), err)

	token, err := s.authService.Login("alice@example.com", "wrong-pass")

	assert.ErrorIs(s.T(), err, service.ErrWrongPassword)
	assert.Empty(s.T(), token)
}

func (s *AuthServiceTestSuite) TestLoginUnknownEmail() {
	token, err := s.authService.Login("nobody@example.com", "whatever")

	assert.ErrorIs(s.T(), err, service.ErrUserNotFound)
	assert.Empty(s.T(), token)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
