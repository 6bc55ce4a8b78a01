package storage

import (
	"database/sql"
	"time"

	"github.com/newscred/queue-guardian/storage/data"
)

const (
	principalSelectCommonQuery = "SELECT id, username, ownerEmail, createdAt, updatedAt FROM principal"
)

// BrokerPrincipalDBRepository is the RDBMS implementation for BrokerPrincipalRepository
type BrokerPrincipalDBRepository struct {
	db                *sql.DB
	accountRepository AccountRepository
}

// Store stores broker principal with either update or insert
func (principalRepo *BrokerPrincipalDBRepository) Store(principal *data.BrokerPrincipal) (*data.BrokerPrincipal, error) {
	if principal.HasOwner() {
		owner, err := principalRepo.accountRepository.GetByEmail(principal.Owner.Email)
		if err != nil {
			return &data.BrokerPrincipal{}, err
		}
		principal.Owner = owner
	}
	inPrincipal, err := principalRepo.GetByUsername(principal.Username)
	if err != nil {
		return principalRepo.insertPrincipal(principal)
	}
	if ownerEmailOf(principal) != ownerEmailOf(inPrincipal) {
		if !principal.IsInValidState() {
			return &data.BrokerPrincipal{}, ErrInvalidStateToSave
		}
		return principalRepo.updatePrincipal(inPrincipal, principal.Owner)
	}
	return inPrincipal, err
}

func ownerEmailOf(principal *data.BrokerPrincipal) string {
	if principal.HasOwner() {
		return principal.Owner.Email
	}
	return ""
}

func (principalRepo *BrokerPrincipalDBRepository) updatePrincipal(principal *data.BrokerPrincipal, owner *data.Account) (*data.BrokerPrincipal, error) {
	err := transactionalSingleRowWriteExec(principalRepo.db, func() {
		principal.Owner = owner
		principal.UpdatedAt = time.Now()
	}, "UPDATE principal SET ownerEmail = ?, updatedAt = ? WHERE username like ?",
		args2SliceFnWrapper(nullableOwnerEmail(principal), &principal.UpdatedAt, &principal.Username))
	return principal, err
}

func (principalRepo *BrokerPrincipalDBRepository) insertPrincipal(principal *data.BrokerPrincipal) (*data.BrokerPrincipal, error) {
	principal.QuickFix()
	if !principal.IsInValidState() {
		return principal, ErrInvalidStateToSave
	}
	err := transactionalSingleRowWriteExec(principalRepo.db, emptyOps, "INSERT INTO principal (id, username, ownerEmail, createdAt, updatedAt) VALUES (?, ?, ?, ?, ?)",
		args2SliceFnWrapper(principal.ID, principal.Username, nullableOwnerEmail(principal), principal.CreatedAt, principal.UpdatedAt))
	return principal, err
}

func nullableOwnerEmail(principal *data.BrokerPrincipal) sql.NullString {
	if principal.HasOwner() {
		return sql.NullString{String: principal.Owner.Email, Valid: true}
	}
	return sql.NullString{}
}

// GetByUsername retrieves the principal with matching username
func (principalRepo *BrokerPrincipalDBRepository) GetByUsername(username string) (*data.BrokerPrincipal, error) {
	principal := &data.BrokerPrincipal{}
	var ownerEmail sql.NullString
	err := querySingleRow(principalRepo.db, principalSelectCommonQuery+" WHERE username like ?", args2SliceFnWrapper(username),
		args2SliceFnWrapper(&principal.ID, &principal.Username, &ownerEmail, &principal.CreatedAt, &principal.UpdatedAt))
	if err == nil && ownerEmail.Valid {
		principal.Owner, err = principalRepo.accountRepository.GetByEmail(ownerEmail.String)
	}
	return principal, err
}

// GetAll retrieves every principal; the reconciler matches queue names against this listing
func (principalRepo *BrokerPrincipalDBRepository) GetAll() ([]*data.BrokerPrincipal, error) {
	principals := make([]*data.BrokerPrincipal, 0)
	ownerEmails := make([]sql.NullString, 0)
	scanArgs := func() []interface{} {
		principal := &data.BrokerPrincipal{}
		principals = append(principals, principal)
		ownerEmails = append(ownerEmails, sql.NullString{})
		return []interface{}{&principal.ID, &principal.Username, &ownerEmails[len(ownerEmails)-1], &principal.CreatedAt, &principal.UpdatedAt}
	}
	err := queryRows(principalRepo.db, principalSelectCommonQuery+" ORDER BY username", nilArgs, scanArgs)
	for index, principal := range principals {
		if err != nil {
			break
		}
		if ownerEmails[index].Valid {
			principal.Owner, err = principalRepo.accountRepository.GetByEmail(ownerEmails[index].String)
		}
	}
	return principals, err
}

// GetList retrieves the list of principals based on pagination params supplied. It will return a error if both after and before is present at the same time
func (principalRepo *BrokerPrincipalDBRepository) GetList(page *data.Pagination) ([]*data.BrokerPrincipal, *data.Pagination, error) {
	principals := make([]*data.BrokerPrincipal, 0)
	pagination := &data.Pagination{}
	if page == nil || (page.Next != nil && page.Previous != nil) {
		return principals, pagination, ErrPaginationDeadlock
	}
	ownerEmails := make([]sql.NullString, 0)
	baseQuery := principalSelectCommonQuery + getPaginationQueryFragment(page, false)
	scanArgs := func() []interface{} {
		principal := &data.BrokerPrincipal{}
		principals = append(principals, principal)
		ownerEmails = append(ownerEmails, sql.NullString{})
		return []interface{}{&principal.ID, &principal.Username, &ownerEmails[len(ownerEmails)-1], &principal.CreatedAt, &principal.UpdatedAt}
	}
	err := queryRows(principalRepo.db, baseQuery, args2SliceFnWrapper(getPaginationTimestampQueryArgs(page)...), scanArgs)
	for index, principal := range principals {
		if err != nil {
			break
		}
		if ownerEmails[index].Valid {
			principal.Owner, err = principalRepo.accountRepository.GetByEmail(ownerEmails[index].String)
		}
	}
	if err == nil {
		principalCount := len(principals)
		if principalCount > 0 {
			pagination = data.NewPagination(principals[principalCount-1], principals[0])
		}
	}
	return principals, pagination, err
}

// Delete removes the principal and its queue records in one transaction
func (principalRepo *BrokerPrincipalDBRepository) Delete(principal *data.BrokerPrincipal) error {
	return transactionalWrites(principalRepo.db,
		func(tx *sql.Tx) error {
			return inTransactionExec(tx, emptyOps, "DELETE FROM queue WHERE principalUsername like ?", args2SliceFnWrapper(principal.Username), int64(0))
		},
		func(tx *sql.Tx) error {
			return inTransactionExec(tx, emptyOps, "DELETE FROM principal WHERE username like ?", args2SliceFnWrapper(principal.Username), int64(1))
		})
}

// NewBrokerPrincipalRepository retrieves new instance of broker principal repository
func NewBrokerPrincipalRepository(db *sql.DB, accountRepository AccountRepository) BrokerPrincipalRepository {
	panicIfNoDBConnectionPool(db)
	return &BrokerPrincipalDBRepository{db: db, accountRepository: accountRepository}
}
