package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moonhaven/moonjournal-backend/internal/app/service"
	apperrors "github.com/moonhaven/moonjournal-backend/internal/errors"
	"github.com/moonhaven/moonjournal-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Username must be 3-50 characters and password at least 8")
		return
	}

	user, err := ac.authService.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			apperrors.BadRequest(c, apperrors.AuthUsernameExists, "Username already taken")
			return
		}
		log.Error("Failed to register user", err, map[string]interface{}{
			"username": req.Username,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "user register")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Username and password are required")
		return
	}

	token, user, err := ac.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid username or password")
			return
		}
		log.Error("Failed to log in user", err, map[string]interface{}{
			"username": req.Username,
		})
		apperrors.InternalError(c, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
