package service

import (
	"bytes"
	"fmt"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/app/storage"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type ContactService interface {
	SubmitMessage(message *model.ContactMessage) error
	GetAllMessages() ([]model.ContactMessage, error)
	ExportMessages() (*bytes.Buffer, error)
}

type contactService struct {
	store storage.Storage
}

func NewContactService(store storage.Storage) ContactService {
	return &contactService{store: store}
}

func (s *contactService) SubmitMessage(message *model.ContactMessage) error {
	logger.Info("Submitting contact message", map[string]interface{}{
		"email":   message.Email,
		"subject": message.Subject,
	})

	if err := s.store.CreateContactMessage(message); err != nil {
		logger.Error("Failed to submit contact message", err, map[string]interface{}{
			"email": message.Email,
		})
		return err
	}

	logger.Info("Contact message submitted", map[string]interface{}{
		"message_id": message.ID,
	})
	return nil
}

func (s *contactService) GetAllMessages() ([]model.ContactMessage, error) {
	messages, err := s.store.GetAllContactMessages()
	if err != nil {
		logger.Error("Failed to list contact messages", err, nil)
		return nil, err
	}

	logger.Info("Contact messages listed", map[string]interface{}{
		"count": len(messages),
	})
	return messages, nil
}

// ExportMessages renders every contact message into an XLSX workbook
// for the admin download.
func (s *contactService) ExportMessages() (*bytes.Buffer, error) {
	messages, err := s.store.GetAllContactMessages()
	if err != nil {
		logger.Error("Failed to load contact messages for export", err, nil)
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"ID", "Name", "Email", "Subject", "Message", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, m := range messages {
		values := []interface{}{m.ID, m.Name, m.Email, m.Subject, m.Message, m.CreatedAt.Format("2006-01-02 15:04:05")}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render contact message export", err, nil)
		return nil, fmt.Errorf("failed to render export: %w", err)
	}

	logger.Info("Contact messages exported", map[string]interface{}{
		"count": len(messages),
	})
	return buf, nil
}
