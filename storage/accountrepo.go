package storage

import (
	"database/sql"
	"sync"
	"time"

	"github.com/newscred/queue-guardian/storage/data"
)

type PseudoAccountRepository AccountRepository

// CachedAccountRepository is a decorator for AccountRepository that caches account lookups.
// The warn path resolves owner contacts on every breach so the hot lookup is served from memory.
type CachedAccountRepository struct {
	delegate AccountRepository
	cache    *MemoryCache[string, *data.Account]
	mutex    sync.RWMutex
}

// NewCachedAccountRepository creates a new CachedAccountRepository.
func NewCachedAccountRepository(delegate PseudoAccountRepository, ttl time.Duration) AccountRepository {
	return &CachedAccountRepository{
		delegate: delegate,
		cache:    NewMemoryCache[string, *data.Account](ttl),
	}
}

// GetByEmail retrieves an account by email, first checking the cache.
func (repo *CachedAccountRepository) GetByEmail(email string) (*data.Account, error) {
	repo.mutex.RLock()
	if item, ok := repo.cache.Get(email); ok {
		repo.mutex.RUnlock()
		return item, nil
	}
	repo.mutex.RUnlock()

	account, err := repo.delegate.GetByEmail(email)
	if err != nil {
		return account, err
	}

	repo.mutex.Lock()
	repo.cache.Set(email, account)
	repo.mutex.Unlock()

	return account, nil
}

// Store delegates storing to the underlying repository and invalidates the cache.
func (repo *CachedAccountRepository) Store(account *data.Account) (*data.Account, error) {
	account, err := repo.delegate.Store(account)
	if err == nil {
		repo.mutex.Lock()
		repo.cache.Delete(account.Email)
		repo.mutex.Unlock()
	}
	return account, err
}

// GetList retrieves the list of accounts based on pagination params supplied
func (repo *CachedAccountRepository) GetList(page *data.Pagination) ([]*data.Account, *data.Pagination, error) {
	return repo.delegate.GetList(page)
}

// DeleteWithCascade delegates the cascading delete and invalidates the cache.
func (repo *CachedAccountRepository) DeleteWithCascade(account *data.Account) error {
	err := repo.delegate.DeleteWithCascade(account)
	if err == nil {
		repo.mutex.Lock()
		repo.cache.Delete(account.Email)
		repo.mutex.Unlock()
	}
	return err
}

// Close closes the underlying cache
func (repo *CachedAccountRepository) Close() {
	repo.cache.Close()
}

// NewAccountRepository retrieves new instance of account repository
func NewAccountRepository(db *sql.DB) PseudoAccountRepository {
	panicIfNoDBConnectionPool(db)
	return &AccountDBRepository{db: db}
}

// AccountDBRepository account repository implementation for RDBMS
type AccountDBRepository struct {
	db *sql.DB
}

// Store either creates or updates the account information
func (repo *AccountDBRepository) Store(account *data.Account) (*data.Account, error) {
	inAccount, err := repo.GetByEmail(account.Email)
	if err != nil {
		return repo.insertAccount(account)
	}
	if account.Admin != inAccount.Admin {
		if !account.IsInValidState() {
			return &data.Account{}, ErrInvalidStateToSave
		}
		return repo.updateAccount(inAccount, account.Admin)
	}
	return inAccount, err
}

func (repo *AccountDBRepository) updateAccount(account *data.Account, admin bool) (*data.Account, error) {
	err := transactionalSingleRowWriteExec(repo.db, func() {
		account.Admin = admin
		account.UpdatedAt = time.Now()
	}, "UPDATE account SET isAdmin = ?, updatedAt = ? WHERE email like ?",
		args2SliceFnWrapper(&account.Admin, &account.UpdatedAt, &account.Email))
	return account, err
}

func (repo *AccountDBRepository) insertAccount(account *data.Account) (*data.Account, error) {
	account.QuickFix()
	if !account.IsInValidState() {
		return account, ErrInvalidStateToSave
	}
	err := transactionalSingleRowWriteExec(repo.db, emptyOps, "INSERT INTO account (id, email, isAdmin, createdAt, updatedAt) VALUES (?, ?, ?, ?, ?)",
		args2SliceFnWrapper(account.ID, account.Email, account.Admin, account.CreatedAt, account.UpdatedAt))
	return account, err
}

// GetByEmail retrieves the account with matching email
func (repo *AccountDBRepository) GetByEmail(email string) (*data.Account, error) {
	account := &data.Account{}
	err := querySingleRow(repo.db, "SELECT id, email, isAdmin, createdAt, updatedAt FROM account WHERE email like ?", args2SliceFnWrapper(email),
		args2SliceFnWrapper(&account.ID, &account.Email, &account.Admin, &account.CreatedAt, &account.UpdatedAt))
	return account, err
}

// GetList retrieves the list of accounts based on pagination params supplied. It will return a error if both after and before is present at the same time
func (repo *AccountDBRepository) GetList(page *data.Pagination) ([]*data.Account, *data.Pagination, error) {
	accounts := make([]*data.Account, 0)
	pagination := &data.Pagination{}
	if page == nil || (page.Next != nil && page.Previous != nil) {
		return accounts, pagination, ErrPaginationDeadlock
	}
	baseQuery := "SELECT id, email, isAdmin, createdAt, updatedAt FROM account" + getPaginationQueryFragment(page, false)
	scanArgs := func() []interface{} {
		account := &data.Account{}
		accounts = append(accounts, account)
		return []interface{}{&account.ID, &account.Email, &account.Admin, &account.CreatedAt, &account.UpdatedAt}
	}
	err := queryRows(repo.db, baseQuery, args2SliceFnWrapper(getPaginationTimestampQueryArgs(page)...), scanArgs)
	if err == nil {
		accountCount := len(accounts)
		if accountCount > 0 {
			pagination = data.NewPagination(accounts[accountCount-1], accounts[0])
		}
	}
	return accounts, pagination, err
}

// DeleteWithCascade removes the account, its principals and their queue records in one transaction.
// Queue and principal deletes expect no specific row count since the account may own nothing.
func (repo *AccountDBRepository) DeleteWithCascade(account *data.Account) error {
	return transactionalWrites(repo.db,
		func(tx *sql.Tx) error {
			return inTransactionExec(tx, emptyOps, "DELETE FROM queue WHERE principalUsername IN (SELECT username FROM principal WHERE ownerEmail like ?)", args2SliceFnWrapper(account.Email), int64(0))
		},
		func(tx *sql.Tx) error {
			return inTransactionExec(tx, emptyOps, "DELETE FROM principal WHERE ownerEmail like ?", args2SliceFnWrapper(account.Email), int64(0))
		},
		func(tx *sql.Tx) error {
			return inTransactionExec(tx, emptyOps, "DELETE FROM account WHERE email like ?", args2SliceFnWrapper(account.Email), int64(1))
		})
}
