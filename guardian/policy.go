package guardian

import (
	"github.com/newscred/queue-guardian/config"
)

// Action is the enforcement decision for a single monitored queue
type Action int

const (
	// ActionNone leaves the queue untouched this cycle
	ActionNone Action = iota
	// ActionWarn notifies the interested addresses once for the queue's lifetime
	ActionWarn
	// ActionDelete removes the queue from the broker along with its messages
	ActionDelete
)

func (action Action) String() string {
	switch action {
	case ActionWarn:
		return "warn"
	case ActionDelete:
		return "delete"
	default:
		return "none"
	}
}

// Policy decides the enforcement action from the observed ready message count
// and whether the queue was already warned. warnSize is expected to be below
// deleteSize.
type Policy struct {
	warnSize   uint
	deleteSize uint
}

// NewPolicy creates the threshold policy from guardian configuration
func NewPolicy(guardianConfig config.GuardianConfig) Policy {
	return Policy{warnSize: guardianConfig.GetWarnQueueSize(), deleteSize: guardianConfig.GetDeleteQueueSize()}
}

// Evaluate returns the action for a queue. Delete takes precedence over warn,
// so a queue past the delete threshold is deleted even if it was never warned.
// An already warned queue below the delete threshold is left alone.
func (policy Policy) Evaluate(observedSize uint, warned bool) Action {
	if observedSize > policy.deleteSize {
		return ActionDelete
	}
	if observedSize > policy.warnSize && !warned {
		return ActionWarn
	}
	return ActionNone
}
