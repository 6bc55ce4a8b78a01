package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotification(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Parallel()
		notification, err := NewNotification("guardtest-1", "Watcher@Example.com")
		assert.Nil(t, err)
		assert.Equal(t, "guardtest-1", notification.QueueName)
		assert.Equal(t, "watcher@example.com", notification.Email)
		assert.True(t, notification.IsInValidState())
	})
	t.Run("EmptyQueueName", func(t *testing.T) {
		t.Parallel()
		_, err := NewNotification("", "watcher@example.com")
		assert.Equal(t, ErrInsufficientInformationForCreating, err)
	})
	t.Run("BadEmail", func(t *testing.T) {
		t.Parallel()
		_, err := NewNotification("guardtest-1", "not-an-email")
		assert.Equal(t, ErrInsufficientInformationForCreating, err)
	})
}
