package service

import (
	"errors"
	"time"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/app/storage"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
	"github.com/moonhaven/moonjournal-backend/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

type AuthService interface {
	Register(username, password string) (*model.User, error)
	Login(username, password string) (string, *model.User, error)
}

type authService struct {
	store        storage.Storage
	jwtSecret    string
	accessExpiry time.Duration
}

func NewAuthService(store storage.Storage, jwtSecret string, accessExpiry time.Duration) AuthService {
	return &authService{
		store:        store,
		jwtSecret:    jwtSecret,
		accessExpiry: accessExpiry,
	}
}

func (s *authService) Register(username, password string) (*model.User, error) {
	logger.Info("Registering user", map[string]interface{}{
		"username": username,
	})

	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			logger.Warn("Registration rejected: username taken", map[string]interface{}{
				"username": username,
			})
			return nil, ErrUsernameTaken
		}
		logger.Error("Failed to create user", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *authService) Login(username, password string) (string, *model.User, error) {
	logger.Info("User login attempt", map[string]interface{}{
		"username": username,
	})

	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("Login failed: unknown username", map[string]interface{}{
				"username": username,
			})
			return "", nil, ErrInvalidCredentials
		}
		logger.Error("Failed to fetch user for login", err, map[string]interface{}{
			"username": username,
		})
		return "", nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"username": username,
		})
		return "", nil, ErrInvalidCredentials
	}

	token, err := util.GenerateAccessToken(user.ID, user.Username, string(user.Role), s.jwtSecret, s.accessExpiry)
	if err != nil {
		logger.Error("Failed to generate access token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return token, user, nil
}
