package storage

import (
	"database/sql"
	"time"

	"github.com/newscred/queue-guardian/storage/data"
)

const (
	queueSelectCommonQuery = "SELECT id, name, principalUsername, warned, createdAt, updatedAt FROM queue"
)

// MonitoredQueueDBRepository is the RDBMS implementation for MonitoredQueueRepository
type MonitoredQueueDBRepository struct {
	db                  *sql.DB
	principalRepository BrokerPrincipalRepository
}

// Create inserts the queue record; a record per queue name so the insert fails on duplicate
func (queueRepo *MonitoredQueueDBRepository) Create(queue *data.MonitoredQueue) (*data.MonitoredQueue, error) {
	queue.QuickFix()
	if !queue.IsInValidState() {
		return queue, ErrInvalidStateToSave
	}
	err := transactionalSingleRowWriteExec(queueRepo.db, emptyOps, "INSERT INTO queue (id, name, principalUsername, warned, createdAt, updatedAt) VALUES (?, ?, ?, ?, ?, ?)",
		args2SliceFnWrapper(queue.ID, queue.Name, nullablePrincipalUsername(queue), queue.Warned, queue.CreatedAt, queue.UpdatedAt))
	return queue, err
}

func nullablePrincipalUsername(queue *data.MonitoredQueue) sql.NullString {
	if queue.IsOwned() {
		return sql.NullString{String: queue.Principal.Username, Valid: true}
	}
	return sql.NullString{}
}

// GetByName retrieves the queue record with matching name
func (queueRepo *MonitoredQueueDBRepository) GetByName(name string) (*data.MonitoredQueue, error) {
	queue := &data.MonitoredQueue{}
	var principalUsername sql.NullString
	err := querySingleRow(queueRepo.db, queueSelectCommonQuery+" WHERE name = ?", args2SliceFnWrapper(name),
		args2SliceFnWrapper(&queue.ID, &queue.Name, &principalUsername, &queue.Warned, &queue.CreatedAt, &queue.UpdatedAt))
	if err == nil && principalUsername.Valid {
		queue.Principal, err = queueRepo.principalRepository.GetByUsername(principalUsername.String)
	}
	return queue, err
}

// GetAll retrieves every queue record; the reconciler diffs this set against the broker snapshot
func (queueRepo *MonitoredQueueDBRepository) GetAll() ([]*data.MonitoredQueue, error) {
	queues := make([]*data.MonitoredQueue, 0)
	principalUsernames := make([]sql.NullString, 0)
	scanArgs := func() []interface{} {
		queue := &data.MonitoredQueue{}
		queues = append(queues, queue)
		principalUsernames = append(principalUsernames, sql.NullString{})
		return []interface{}{&queue.ID, &queue.Name, &principalUsernames[len(principalUsernames)-1], &queue.Warned, &queue.CreatedAt, &queue.UpdatedAt}
	}
	err := queryRows(queueRepo.db, queueSelectCommonQuery+" ORDER BY name", nilArgs, scanArgs)
	for index, queue := range queues {
		if err != nil {
			break
		}
		if principalUsernames[index].Valid {
			queue.Principal, err = queueRepo.principalRepository.GetByUsername(principalUsernames[index].String)
		}
	}
	return queues, err
}

// SetWarned marks the queue as warned; it never transitions back while the record lives
func (queueRepo *MonitoredQueueDBRepository) SetWarned(queue *data.MonitoredQueue) error {
	return transactionalSingleRowWriteExec(queueRepo.db, func() {
		queue.Warned = true
		queue.UpdatedAt = time.Now()
	}, "UPDATE queue SET warned = ?, updatedAt = ? WHERE name = ? AND warned = ?",
		args2SliceFnWrapper(&queue.Warned, &queue.UpdatedAt, &queue.Name, false))
}

// Delete removes the queue record
func (queueRepo *MonitoredQueueDBRepository) Delete(queue *data.MonitoredQueue) error {
	return transactionalSingleRowWriteExec(queueRepo.db, emptyOps, "DELETE FROM queue WHERE name = ?", args2SliceFnWrapper(queue.Name))
}

// WarnedQueueNames retrieves the names of queues currently flagged as warned
func (queueRepo *MonitoredQueueDBRepository) WarnedQueueNames() ([]string, error) {
	names := make([]string, 0)
	scanArgs := func() []interface{} {
		names = append(names, "")
		return []interface{}{&names[len(names)-1]}
	}
	err := queryRows(queueRepo.db, "SELECT name FROM queue WHERE warned = ? ORDER BY name", args2SliceFnWrapper(true), scanArgs)
	return names, err
}

// NewMonitoredQueueRepository retrieves new instance of monitored queue repository
func NewMonitoredQueueRepository(db *sql.DB, principalRepository BrokerPrincipalRepository) MonitoredQueueRepository {
	panicIfNoDBConnectionPool(db)
	return &MonitoredQueueDBRepository{db: db, principalRepository: principalRepository}
}
