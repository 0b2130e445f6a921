package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/models"
	"github.com/knowhive/knowhive/internal/repository"
	"github.com/knowhive/knowhive/internal/utils"
	"github.com/knowhive/knowhive/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken    = errors.New("email is already registered")
	ErrUserNotFound  = errors.New("user not found with this email")
	ErrWrongPassword = errors.New("password is not correct")
)

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Register creates a user with a bcrypt-hashed password and a
// gender-appropriate default avatar. Fails if the email is taken.
func (s *AuthService) Register(name, email, password, gender string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Registration rejected: email already registered",
			zap.String("email", email),
		)
		return nil, ErrEmailTaken
	}

	if gender == "" {
		gender = "male"
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
		Gender:   gender,
		Avatar:   models.DefaultAvatar(gender),
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", email),
	)

	return user, nil
}

// Login verifies credentials and issues a signed bearer token embedding
// the user's id and basic profile fields.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found", zap.String("email", email))
		return "", ErrUserNotFound
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Log.Warn("Login failed: wrong password",
			zap.String("user_id", user.ID.String()),
		)
		return "", ErrWrongPassword
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		logger.Log.Error("Failed to sign token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", err
	}

	logger.Log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return token, nil
}
