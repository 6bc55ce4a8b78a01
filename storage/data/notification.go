package data

import (
	"strings"

	"github.com/rs/xid"
)

// Notification represents an additional email address subscribed to warnings
// for a specific queue, beyond the owning account
type Notification struct {
	BasePaginateable
	QueueName string
	Email     string
}

// QuickFix fixes the model to set default ID, created and updated at to current time and lower cases the email
func (notification *Notification) QuickFix() bool {
	madeChanges := notification.BasePaginateable.QuickFix()
	if lowered := strings.ToLower(notification.Email); lowered != notification.Email {
		notification.Email = lowered
		madeChanges = true
	}
	return madeChanges
}

// IsInValidState returns false if queue name is empty or email is not of the user@host form
func (notification *Notification) IsInValidState() bool {
	if len(notification.QueueName) <= 0 {
		return false
	}
	atIndex := strings.Index(notification.Email, "@")
	return atIndex > 0 && atIndex < len(notification.Email)-1
}

// NewNotification creates a new Notification subscription for the queue and email
func NewNotification(queueName, email string) (*Notification, error) {
	notification := &Notification{BasePaginateable: BasePaginateable{ID: xid.New()}, QueueName: queueName, Email: strings.ToLower(email)}
	if !notification.IsInValidState() {
		return nil, ErrInsufficientInformationForCreating
	}
	return notification, nil
}
