package model

import (
	"time"
)

// NewsletterSubscription is immutable once created; there is no
// unsubscribe operation.
type NewsletterSubscription struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `gorm:"autoCreateTime" json:"subscribedAt"`
}

func (NewsletterSubscription) TableName() string {
	return "newsletter_subscriptions"
}
