package service

import (
	"errors"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/app/storage"
	"github.com/moonhaven/moonjournal-backend/pkg/logger"
)

var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

type NewsletterService interface {
	Subscribe(email string) (*model.NewsletterSubscription, error)
}

type newsletterService struct {
	store storage.Storage
}

func NewNewsletterService(store storage.Storage) NewsletterService {
	return &newsletterService{store: store}
}

func (s *newsletterService) Subscribe(email string) (*model.NewsletterSubscription, error) {
	logger.Info("Creating newsletter subscription", map[string]interface{}{
		"email": email,
	})

	// The facade leaves uniqueness to the caller, so look up first.
	existing, err := s.store.GetNewsletterSubscriptionByEmail(email)
	if err != nil && !errors.Is(err, storage.ErrSubscriptionNotFound) {
		logger.Error("Failed to check existing subscription", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Duplicate newsletter subscription rejected", map[string]interface{}{
			"email": email,
		})
		return nil, ErrAlreadySubscribed
	}

	subscription := &model.NewsletterSubscription{Email: email}
	if err := s.store.CreateNewsletterSubscription(subscription); err != nil {
		// A persistent backend's unique constraint catches the race
		// the pre-check cannot.
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, ErrAlreadySubscribed
		}
		logger.Error("Failed to create newsletter subscription", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("Newsletter subscription created", map[string]interface{}{
		"subscription_id": subscription.ID,
	})
	return subscription, nil
}
