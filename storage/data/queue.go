package data

import "github.com/rs/xid"

// MonitoredQueue represents a broker queue under watch. A record exists only
// while the broker keeps reporting the queue; once the queue vanishes broker
// side the record goes with it.
type MonitoredQueue struct {
	BasePaginateable
	Name      string
	Principal *BrokerPrincipal
	// Warned is set the first time the queue crosses the warn threshold and
	// never reset while the record lives
	Warned bool
	// MessagesReady is the observed backlog from the current cycle snapshot;
	// it is not persisted
	MessagesReady uint
	// Consumers is the observed consumer count from the current cycle
	// snapshot; it is not persisted
	Consumers uint
}

// QuickFix fixes the model to set default ID, created and updated at to current time
func (queue *MonitoredQueue) QuickFix() bool {
	return queue.BasePaginateable.QuickFix()
}

// IsInValidState returns false if queue name is empty
func (queue *MonitoredQueue) IsInValidState() bool {
	return len(queue.Name) > 0
}

// IsOwned returns whether the queue maps to a principal
func (queue *MonitoredQueue) IsOwned() bool {
	return queue.Principal != nil
}

// NewMonitoredQueue creates a new MonitoredQueue; principal may be nil for an unowned queue
func NewMonitoredQueue(name string, principal *BrokerPrincipal) (*MonitoredQueue, error) {
	if len(name) <= 0 {
		return nil, ErrInsufficientInformationForCreating
	}
	return &MonitoredQueue{BasePaginateable: BasePaginateable{ID: xid.New()}, Name: name, Principal: principal}, nil
}
