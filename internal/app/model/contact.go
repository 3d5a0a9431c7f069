package model

import (
	"time"
)

// ContactMessage is write-only from the storefront; retrieval exists only
// for the admin listing and export.
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Subject   string    `gorm:"not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
