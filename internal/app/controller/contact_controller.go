package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/app/service"
	apperrors "github.com/moonhaven/moonjournal-backend/internal/errors"
	"github.com/moonhaven/moonjournal-backend/internal/middleware"
)

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,min=2"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required,min=10"`
}

// SubmitMessage handles POST /api/contact
func (cc *ContactController) SubmitMessage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ContactInvalidMessage, "Name, email, subject and a message of at least 10 characters are required")
		return
	}

	message := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := cc.contactService.SubmitMessage(message); err != nil {
		log.Error("Failed to save contact message", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "contact submit")
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetAllMessages handles GET /api/admin/contact/messages
func (cc *ContactController) GetAllMessages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	messages, err := cc.contactService.GetAllMessages()
	if err != nil {
		log.Error("Failed to fetch contact messages", err)
		apperrors.InternalError(c, "Failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}

// ExportMessages handles GET /api/admin/contact/messages/export
// Streams the messages as an xlsx workbook.
func (cc *ContactController) ExportMessages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, err := cc.contactService.ExportMessages()
	if err != nil {
		log.Error("Failed to export contact messages", err)
		apperrors.InternalError(c, "Failed to export messages")
		return
	}

	filename := fmt.Sprintf("contact-messages-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
