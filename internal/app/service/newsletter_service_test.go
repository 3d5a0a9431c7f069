package service

import (
	"testing"

	"github.com/moonhaven/moonjournal-backend/internal/app/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletterService_Subscribe(t *testing.T) {
	svc := NewNewsletterService(storage.NewMemoryStorage())

	sub, err := svc.Subscribe("luna@example.com")
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)
	assert.Equal(t, "luna@example.com", sub.Email)
	assert.False(t, sub.SubscribedAt.IsZero())
}

func TestNewsletterService_Subscribe_Duplicate(t *testing.T) {
	svc := NewNewsletterService(storage.NewMemoryStorage())

	_, err := svc.Subscribe("luna@example.com")
	require.NoError(t, err)

	_, err = svc.Subscribe("luna@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}
