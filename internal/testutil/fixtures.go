package testutil

import (
	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/models"
	"github.com/knowhive/knowhive/internal/utils"
)

// CreateTestUser builds a user with a real bcrypt hash of the password.
func CreateTestUser(name, email, password, gender string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
		Gender:   gender,
		Avatar:   models.DefaultAvatar(gender),
	}, nil
}

// DefaultTestUser returns a ready-made account for tests that just need
// someone to be logged in.
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("Test User", "test@example.com", "Test123456", "male")
}

// CreateTestQuestion builds a question authored by the given user.
func CreateTestQuestion(author *models.User, textOne, textTwo string) *models.Question {
	return &models.Question{
		ID:      uuid.New(),
		UserID:  author.ID,
		Name:    author.Name,
		TextOne: textOne,
		TextTwo: textTwo,
	}
}

// CreateTestProfile builds a minimal profile for the given user.
func CreateTestProfile(user *models.User, username string, languages ...string) *models.Profile {
	return &models.Profile{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  username,
		Languages: models.StringList(languages),
	}
}
