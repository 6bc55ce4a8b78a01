package storage

import (
	"github.com/newscred/queue-guardian/config"
	"github.com/newscred/queue-guardian/storage/data"

	"time"
)

// DataAccessor is the facade to all the data repository
type DataAccessor interface {
	GetAppRepository() AppRepository
	GetAccountRepository() AccountRepository
	GetBrokerPrincipalRepository() BrokerPrincipalRepository
	GetMonitoredQueueRepository() MonitoredQueueRepository
	GetNotificationRepository() NotificationRepository
	GetLockRepository() LockRepository
	Close()
}

// AppRepository allows storage operation interaction for App
type AppRepository interface {
	GetApp() (*data.App, error)
	StartAppInit(data *config.SeedData) error
	CompleteAppInit() error
}

// AccountRepository allows storage operation interaction for Account
type AccountRepository interface {
	Store(account *data.Account) (*data.Account, error)
	GetByEmail(email string) (*data.Account, error)
	GetList(page *data.Pagination) ([]*data.Account, *data.Pagination, error)
	// DeleteWithCascade removes the account, its principals and their queue
	// records in a single transaction
	DeleteWithCascade(account *data.Account) error
}

// BrokerPrincipalRepository allows storage operation interaction for BrokerPrincipal
type BrokerPrincipalRepository interface {
	Store(principal *data.BrokerPrincipal) (*data.BrokerPrincipal, error)
	GetByUsername(username string) (*data.BrokerPrincipal, error)
	// GetAll returns every principal; the reconciler matches queue names
	// against this full listing
	GetAll() ([]*data.BrokerPrincipal, error)
	GetList(page *data.Pagination) ([]*data.BrokerPrincipal, *data.Pagination, error)
	// Delete removes the principal and its queue records in a single transaction
	Delete(principal *data.BrokerPrincipal) error
}

// MonitoredQueueRepository allows storage operation interaction for MonitoredQueue
type MonitoredQueueRepository interface {
	GetByName(name string) (*data.MonitoredQueue, error)
	GetAll() ([]*data.MonitoredQueue, error)
	Create(queue *data.MonitoredQueue) (*data.MonitoredQueue, error)
	// SetWarned marks the queue as warned; the flag is never cleared while
	// the record lives
	SetWarned(queue *data.MonitoredQueue) error
	Delete(queue *data.MonitoredQueue) error
	WarnedQueueNames() ([]string, error)
}

// NotificationRepository allows storage operation interaction for Notification
type NotificationRepository interface {
	Store(notification *data.Notification) (*data.Notification, error)
	Delete(notification *data.Notification) error
	// GetForQueue returns the email addresses subscribed to warnings for the queue
	GetForQueue(queueName string) ([]*data.Notification, error)
}

// LockRepository allows storage operation for Lock
type LockRepository interface {
	TryLock(lock *data.Lock) error
	ReleaseLock(lock *data.Lock) error
	TimeoutLocks(threshold time.Duration) error
}
