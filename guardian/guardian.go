package guardian

import (
	"context"
	"sync"
	"time"

	"github.com/google/wire"
	"github.com/newscred/queue-guardian/broker"
	"github.com/newscred/queue-guardian/config"
	"github.com/newscred/queue-guardian/mailer"
	"github.com/newscred/queue-guardian/storage"
	"github.com/newscred/queue-guardian/storage/data"
	"github.com/rs/zerolog/log"
)

const (
	panicString = "parameters null"

	cycleLockID = "queue-guardian-enforcement-cycle"
)

// ServiceInjector is the provider set for the guardian service
var ServiceInjector = wire.NewSet(NewAuditTrail, NewGuardianConfiguration, NewQueueGuardian)

// QueueGuardian is the contract for the queue enforcement service
type QueueGuardian interface {
	// Start begins the enforcement loop
	Start()
	// Stop halts the enforcement loop; a running cycle completes first
	Stop()
	// DeletedLastCycle returns the queue names deleted in the most recent cycle
	DeletedLastCycle() []string
	// WarnedQueues returns the names of queues currently carrying the warned flag
	WarnedQueues() ([]string, error)
	// LastCycleAt returns when the most recent cycle completed; zero before the first one
	LastCycleAt() time.Time
}

// GuardianConfiguration holds dependencies for the guardian service
type GuardianConfiguration struct {
	QueueRepo        storage.MonitoredQueueRepository
	PrincipalRepo    storage.BrokerPrincipalRepository
	NotificationRepo storage.NotificationRepository
	LockRepo         storage.LockRepository
	BrokerGateway    broker.Gateway
	MailDispatcher   mailer.Dispatcher
	GuardianCfg      config.GuardianConfig
	Audit            *AuditTrail
	Metrics          *MetricsContainer
}

// NewGuardianConfiguration creates a new configuration for the guardian service
func NewGuardianConfiguration(
	queueRepo storage.MonitoredQueueRepository,
	principalRepo storage.BrokerPrincipalRepository,
	notificationRepo storage.NotificationRepository,
	lockRepo storage.LockRepository,
	brokerGateway broker.Gateway,
	mailDispatcher mailer.Dispatcher,
	guardianCfg config.GuardianConfig,
	audit *AuditTrail,
	metrics *MetricsContainer,
) *GuardianConfiguration {
	return &GuardianConfiguration{
		QueueRepo:        queueRepo,
		PrincipalRepo:    principalRepo,
		NotificationRepo: notificationRepo,
		LockRepo:         lockRepo,
		BrokerGateway:    brokerGateway,
		MailDispatcher:   mailDispatcher,
		GuardianCfg:      guardianCfg,
		Audit:            audit,
		Metrics:          metrics,
	}
}

// cycleLock is the Lockable guarding the enforcement cycle across instances
type cycleLock struct {
}

func (l *cycleLock) GetLockID() string {
	return cycleLockID
}

// QueueGuardianImpl implements QueueGuardian
type QueueGuardianImpl struct {
	queueRepo        storage.MonitoredQueueRepository
	notificationRepo storage.NotificationRepository
	lockRepo         storage.LockRepository
	brokerGateway    broker.Gateway
	mailDispatcher   mailer.Dispatcher
	guardianConfig   config.GuardianConfig
	audit            *AuditTrail
	metrics          *MetricsContainer
	reconciler       *Reconciler
	policy           Policy
	stopChan         chan struct{}
	wg               sync.WaitGroup
	mu               sync.Mutex
	deletedLastCycle []string
	lastCycleAt      time.Time
}

// NewQueueGuardian creates a new queue guardian service
func NewQueueGuardian(configuration *GuardianConfiguration) QueueGuardian {
	if configuration.QueueRepo == nil || configuration.PrincipalRepo == nil ||
		configuration.NotificationRepo == nil || configuration.LockRepo == nil ||
		configuration.BrokerGateway == nil || configuration.MailDispatcher == nil ||
		configuration.GuardianCfg == nil || configuration.Audit == nil ||
		configuration.Metrics == nil {
		panic(panicString)
	}
	return &QueueGuardianImpl{
		queueRepo:        configuration.QueueRepo,
		notificationRepo: configuration.NotificationRepo,
		lockRepo:         configuration.LockRepo,
		brokerGateway:    configuration.BrokerGateway,
		mailDispatcher:   configuration.MailDispatcher,
		guardianConfig:   configuration.GuardianCfg,
		audit:            configuration.Audit,
		metrics:          configuration.Metrics,
		reconciler:       NewReconciler(configuration.QueueRepo, configuration.PrincipalRepo),
		policy:           NewPolicy(configuration.GuardianCfg),
		stopChan:         make(chan struct{}),
	}
}

// Start begins the enforcement loop
func (guardian *QueueGuardianImpl) Start() {
	guardian.wg.Add(1)
	go func() {
		defer guardian.wg.Done()
		ticker := time.NewTicker(guardian.guardianConfig.GetGuardianPollInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				guardian.processCycle()
			case <-guardian.stopChan:
				return
			}
		}
	}()
}

// Stop halts the enforcement loop
func (guardian *QueueGuardianImpl) Stop() {
	close(guardian.stopChan)
	guardian.wg.Wait()
}

// DeletedLastCycle returns the queue names deleted in the most recent cycle
func (guardian *QueueGuardianImpl) DeletedLastCycle() []string {
	guardian.mu.Lock()
	defer guardian.mu.Unlock()
	deleted := make([]string, len(guardian.deletedLastCycle))
	copy(deleted, guardian.deletedLastCycle)
	return deleted
}

// WarnedQueues returns the names of queues currently carrying the warned flag
func (guardian *QueueGuardianImpl) WarnedQueues() ([]string, error) {
	return guardian.queueRepo.WarnedQueueNames()
}

// LastCycleAt returns when the most recent cycle completed
func (guardian *QueueGuardianImpl) LastCycleAt() time.Time {
	guardian.mu.Lock()
	defer guardian.mu.Unlock()
	return guardian.lastCycleAt
}

// processCycle runs one enforcement cycle under the shared cycle lock; a lock
// held by another instance skips the cycle
func (guardian *QueueGuardianImpl) processCycle() {
	// clear locks left behind by crashed instances
	staleThreshold := 2 * guardian.guardianConfig.GetGuardianPollInterval()
	if err := guardian.lockRepo.TimeoutLocks(staleThreshold); err != nil {
		log.Error().Err(err).Msg("failed to time out stale locks")
	}
	err := inLockRun(guardian.lockRepo, &cycleLock{}, func() error {
		guardian.runCycle()
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to run enforcement cycle")
	}
}

// inLockRun acquires a lock, runs a function, and releases the lock
func inLockRun(lockRepo storage.LockRepository, lockable data.Lockable, run func() error) (err error) {
	lock, err := data.NewLock(lockable)
	if err == nil {
		err = lockRepo.TryLock(lock)
	}
	if err == nil {
		defer lockRepo.ReleaseLock(lock)
		err = run()
	}
	if err == storage.ErrAlreadyLocked {
		log.Debug().Msg("enforcement cycle skipped: lock held by another instance")
		err = nil
	}
	return err
}

func (guardian *QueueGuardianImpl) runCycle() {
	cycleStart := time.Now()
	ctx := context.Background()
	snapshot, err := guardian.brokerGateway.ListQueues(ctx)
	if err != nil {
		guardian.metrics.FetchFailures.Inc()
		log.Error().Err(err).Msg("could not fetch queue snapshot, waiting for next cycle")
		return
	}
	guardian.metrics.QueuesObserved.Set(float64(len(snapshot)))
	records, err := guardian.reconciler.Reconcile(snapshot)
	if err != nil {
		log.Error().Err(err).Msg("could not reconcile queue records, waiting for next cycle")
		return
	}
	deleted := make([]string, 0)
	for _, record := range records {
		if guardian.enforceQueue(ctx, record) {
			deleted = append(deleted, record.Name)
		}
	}
	guardian.mu.Lock()
	guardian.deletedLastCycle = deleted
	guardian.lastCycleAt = time.Now()
	guardian.mu.Unlock()
	guardian.metrics.CyclesRun.Inc()
	guardian.metrics.CycleDuration.Set(time.Since(cycleStart).Seconds())
}

// enforceQueue applies the threshold policy to a single queue; a failure or
// panic here never spills over to the other queues of the cycle
func (guardian *QueueGuardianImpl) enforceQueue(ctx context.Context, record *data.MonitoredQueue) (deleted bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("queueName", record.Name).Msg("recovered from panic while enforcing queue")
		}
	}()
	switch guardian.policy.Evaluate(record.MessagesReady, record.Warned) {
	case ActionDelete:
		deleted = guardian.deleteQueue(ctx, record)
	case ActionWarn:
		guardian.warnQueue(record)
	}
	return deleted
}

func (guardian *QueueGuardianImpl) deleteQueue(ctx context.Context, record *data.MonitoredQueue) bool {
	err := guardian.brokerGateway.DeleteQueue(ctx, record.Name)
	if err == broker.ErrQueueNotFound {
		// already gone broker side, the outcome we wanted
		log.Info().Str("queueName", record.Name).Msg("queue to delete was already gone")
		err = nil
	}
	if err != nil {
		log.Error().Err(err).Str("queueName", record.Name).Msg("could not delete queue, record kept for next cycle")
		return false
	}
	if storeErr := guardian.queueRepo.Delete(record); storeErr != nil {
		// broker delete went through; reconciliation will drop the record next cycle
		log.Error().Err(storeErr).Str("queueName", record.Name).Msg("could not remove record of deleted queue")
	}
	log.Info().Str("queueName", record.Name).Uint("messagesReady", record.MessagesReady).Msg("queue deleted for crossing the delete threshold")
	guardian.metrics.QueuesDeleted.Inc()
	guardian.audit.Record(AuditRecord{
		Timestamp:     time.Now(),
		QueueName:     record.Name,
		Action:        ActionDelete.String(),
		ObservedSize:  record.MessagesReady,
		OwnerUsername: ownerUsernameOf(record),
	})
	return true
}

func (guardian *QueueGuardianImpl) warnQueue(record *data.MonitoredQueue) {
	recipients := guardian.collectRecipients(record)
	for _, address := range recipients {
		err := guardian.mailDispatcher.NotifyQueueWarning(address, record.Name, record.MessagesReady,
			guardian.guardianConfig.GetWarnQueueSize(), guardian.guardianConfig.GetDeleteQueueSize())
		if err != nil {
			log.Error().Err(err).Str("queueName", record.Name).Str("address", address).Msg("failed to dispatch queue warning")
		}
	}
	// warned is set even when every dispatch failed so a flapping SMTP server
	// cannot turn the single warning into a mail storm
	if err := guardian.queueRepo.SetWarned(record); err != nil {
		log.Error().Err(err).Str("queueName", record.Name).Msg("could not persist warned flag")
		return
	}
	log.Info().Str("queueName", record.Name).Uint("messagesReady", record.MessagesReady).
		Int("recipients", len(recipients)).Msg("queue warned for crossing the warn threshold")
	guardian.metrics.WarningsSent.Inc()
	guardian.audit.Record(AuditRecord{
		Timestamp:      time.Now(),
		QueueName:      record.Name,
		Action:         ActionWarn.String(),
		ObservedSize:   record.MessagesReady,
		OwnerUsername:  ownerUsernameOf(record),
		RecipientCount: len(recipients),
	})
}

// collectRecipients gathers the owning account's address plus any per queue
// subscriptions, deduplicated; an unowned queue may still have subscribers
func (guardian *QueueGuardianImpl) collectRecipients(record *data.MonitoredQueue) []string {
	seen := make(map[string]bool)
	recipients := make([]string, 0, 2)
	if record.IsOwned() && record.Principal.HasOwner() {
		seen[record.Principal.Owner.Email] = true
		recipients = append(recipients, record.Principal.Owner.Email)
	}
	subscriptions, err := guardian.notificationRepo.GetForQueue(record.Name)
	if err != nil {
		log.Error().Err(err).Str("queueName", record.Name).Msg("could not load warning subscriptions")
		return recipients
	}
	for _, subscription := range subscriptions {
		if !seen[subscription.Email] {
			seen[subscription.Email] = true
			recipients = append(recipients, subscription.Email)
		}
	}
	return recipients
}

func ownerUsernameOf(record *data.MonitoredQueue) string {
	if record.IsOwned() {
		return record.Principal.Username
	}
	return ""
}
