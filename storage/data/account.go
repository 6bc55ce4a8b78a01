package data

import (
	"strings"

	"github.com/rs/xid"
)

// Account represents a person who owns broker principals and receives queue warnings
type Account struct {
	BasePaginateable
	Email string
	Admin bool
}

// QuickFix fixes the model to set default ID, created and updated at to current time and lower cases the email
func (account *Account) QuickFix() bool {
	madeChanges := account.BasePaginateable.QuickFix()
	if lowered := strings.ToLower(account.Email); lowered != account.Email {
		account.Email = lowered
		madeChanges = true
	}
	return madeChanges
}

// IsInValidState returns false if email is empty or not of the user@host form
func (account *Account) IsInValidState() bool {
	atIndex := strings.Index(account.Email, "@")
	return atIndex > 0 && atIndex < len(account.Email)-1
}

// NewAccount creates a new Account for the email
func NewAccount(email string, admin bool) (*Account, error) {
	account := &Account{BasePaginateable: BasePaginateable{ID: xid.New()}, Email: strings.ToLower(email), Admin: admin}
	if !account.IsInValidState() {
		return nil, ErrInsufficientInformationForCreating
	}
	return account, nil
}
