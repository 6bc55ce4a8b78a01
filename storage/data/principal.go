package data

import "github.com/rs/xid"

// BrokerPrincipal represents a broker level username whose queues are watched over.
// Queue ownership follows the naming convention `<username>-<suffix>`; the owning
// account is reached through the principal. A principal without an owner is valid,
// its queues just have nobody to warn.
type BrokerPrincipal struct {
	BasePaginateable
	Username string
	Owner    *Account
}

// QuickFix fixes the model to set default ID, created and updated at to current time
func (principal *BrokerPrincipal) QuickFix() bool {
	return principal.BasePaginateable.QuickFix()
}

// IsInValidState returns false if username is empty
func (principal *BrokerPrincipal) IsInValidState() bool {
	return len(principal.Username) > 0
}

// HasOwner returns whether the principal is mapped to an account
func (principal *BrokerPrincipal) HasOwner() bool {
	return principal.Owner != nil
}

// NewBrokerPrincipal creates a new BrokerPrincipal; owner may be nil for an unmapped principal
func NewBrokerPrincipal(username string, owner *Account) (*BrokerPrincipal, error) {
	if len(username) <= 0 {
		return nil, ErrInsufficientInformationForCreating
	}
	return &BrokerPrincipal{BasePaginateable: BasePaginateable{ID: xid.New()}, Username: username, Owner: owner}, nil
}
