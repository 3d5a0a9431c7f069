package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moonhaven/moonjournal-backend/internal/app/service"
	apperrors "github.com/moonhaven/moonjournal-backend/internal/errors"
	"github.com/moonhaven/moonjournal-backend/internal/middleware"
)

type NewsletterController struct {
	newsletterService service.NewsletterService
}

func NewNewsletterController(newsletterService service.NewsletterService) *NewsletterController {
	return &NewsletterController{
		newsletterService: newsletterService,
	}
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe handles POST /api/newsletter/subscribe
func (nc *NewsletterController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.NewsletterInvalidEmail, "A valid email address is required")
		return
	}

	subscription, err := nc.newsletterService.Subscribe(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubscribed) {
			apperrors.BadRequest(c, apperrors.NewsletterAlreadySubscribed, "This email is already subscribed")
			return
		}
		log.Error("Failed to create subscription", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "newsletter subscribe")
		return
	}

	c.JSON(http.StatusCreated, subscription)
}
