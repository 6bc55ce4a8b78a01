package guardian

import (
	"strings"

	"github.com/newscred/queue-guardian/broker"
	"github.com/newscred/queue-guardian/storage"
	"github.com/newscred/queue-guardian/storage/data"
	"github.com/rs/zerolog/log"
)

// Reconciler aligns the persisted queue records with the broker snapshot so
// that a record exists exactly for the queues the broker reported
type Reconciler struct {
	queueRepo     storage.MonitoredQueueRepository
	principalRepo storage.BrokerPrincipalRepository
}

// NewReconciler creates a reconciler over the queue and principal repositories
func NewReconciler(queueRepo storage.MonitoredQueueRepository, principalRepo storage.BrokerPrincipalRepository) *Reconciler {
	if queueRepo == nil || principalRepo == nil {
		panic(panicString)
	}
	return &Reconciler{queueRepo: queueRepo, principalRepo: principalRepo}
}

// resolveOwner matches a queue name against the principal listing using the
// username-prefix naming convention; the longest matching username wins. A
// queue no principal claims stays unowned for its whole life.
func resolveOwner(queueName string, principals []*data.BrokerPrincipal) *data.BrokerPrincipal {
	var owner *data.BrokerPrincipal
	for _, principal := range principals {
		if !strings.HasPrefix(queueName, principal.Username) {
			continue
		}
		if owner == nil || len(principal.Username) > len(owner.Username) {
			owner = principal
		}
	}
	return owner
}

// Reconcile takes the broker snapshot and returns the persisted records for
// exactly the snapshot's queues, each annotated with its observed sizes.
// Records for queues the broker no longer reports are removed without any
// broker call. Running it twice on the same snapshot changes nothing.
func (reconciler *Reconciler) Reconcile(snapshot []broker.QueueStat) ([]*data.MonitoredQueue, error) {
	existing, err := reconciler.queueRepo.GetAll()
	if err != nil {
		return nil, err
	}
	statsByName := make(map[string]broker.QueueStat, len(snapshot))
	for _, stat := range snapshot {
		statsByName[stat.Name] = stat
	}
	recordsByName := make(map[string]*data.MonitoredQueue, len(existing))
	for _, record := range existing {
		if _, reported := statsByName[record.Name]; !reported {
			// queue vanished broker side, drop the record only
			if err = reconciler.queueRepo.Delete(record); err != nil {
				log.Error().Err(err).Str("queueName", record.Name).Msg("could not remove record of vanished queue")
			}
			continue
		}
		recordsByName[record.Name] = record
	}
	var principals []*data.BrokerPrincipal
	reconciled := make([]*data.MonitoredQueue, 0, len(snapshot))
	for _, stat := range snapshot {
		record, known := recordsByName[stat.Name]
		if !known {
			if principals == nil {
				if principals, err = reconciler.principalRepo.GetAll(); err != nil {
					return nil, err
				}
			}
			newRecord, newErr := data.NewMonitoredQueue(stat.Name, resolveOwner(stat.Name, principals))
			if newErr != nil {
				log.Error().Err(newErr).Str("queueName", stat.Name).Msg("could not build record for new queue")
				continue
			}
			if record, err = reconciler.queueRepo.Create(newRecord); err != nil {
				log.Error().Err(err).Str("queueName", stat.Name).Msg("could not persist record for new queue")
				continue
			}
		}
		record.MessagesReady = stat.MessagesReady
		record.Consumers = stat.Consumers
		reconciled = append(reconciled, record)
	}
	return reconciled, nil
}
