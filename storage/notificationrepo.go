package storage

import (
	"database/sql"

	"github.com/newscred/queue-guardian/storage/data"
)

// NotificationDBRepository is the RDBMS implementation for NotificationRepository
type NotificationDBRepository struct {
	db *sql.DB
}

// Store inserts the notification subscription; there is a single row per (queue, email) pair
func (notificationRepo *NotificationDBRepository) Store(notification *data.Notification) (*data.Notification, error) {
	inNotification, err := notificationRepo.get(notification.QueueName, notification.Email)
	if err == nil {
		return inNotification, nil
	}
	notification.QuickFix()
	if !notification.IsInValidState() {
		return notification, ErrInvalidStateToSave
	}
	err = transactionalSingleRowWriteExec(notificationRepo.db, emptyOps, "INSERT INTO notification (id, queueName, email, createdAt, updatedAt) VALUES (?, ?, ?, ?, ?)",
		args2SliceFnWrapper(notification.ID, notification.QueueName, notification.Email, notification.CreatedAt, notification.UpdatedAt))
	return notification, err
}

func (notificationRepo *NotificationDBRepository) get(queueName, email string) (*data.Notification, error) {
	notification := &data.Notification{}
	err := querySingleRow(notificationRepo.db, "SELECT id, queueName, email, createdAt, updatedAt FROM notification WHERE queueName = ? AND email like ?",
		args2SliceFnWrapper(queueName, email),
		args2SliceFnWrapper(&notification.ID, &notification.QueueName, &notification.Email, &notification.CreatedAt, &notification.UpdatedAt))
	return notification, err
}

// Delete removes the notification subscription
func (notificationRepo *NotificationDBRepository) Delete(notification *data.Notification) error {
	return transactionalSingleRowWriteExec(notificationRepo.db, emptyOps, "DELETE FROM notification WHERE queueName = ? AND email like ?",
		args2SliceFnWrapper(notification.QueueName, notification.Email))
}

// GetForQueue returns the subscriptions for warnings on the queue
func (notificationRepo *NotificationDBRepository) GetForQueue(queueName string) ([]*data.Notification, error) {
	notifications := make([]*data.Notification, 0)
	scanArgs := func() []interface{} {
		notification := &data.Notification{}
		notifications = append(notifications, notification)
		return []interface{}{&notification.ID, &notification.QueueName, &notification.Email, &notification.CreatedAt, &notification.UpdatedAt}
	}
	err := queryRows(notificationRepo.db, "SELECT id, queueName, email, createdAt, updatedAt FROM notification WHERE queueName = ? ORDER BY email", args2SliceFnWrapper(queueName), scanArgs)
	return notifications, err
}

// NewNotificationRepository retrieves new instance of notification repository
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	panicIfNoDBConnectionPool(db)
	return &NotificationDBRepository{db: db}
}
