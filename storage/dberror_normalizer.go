package storage

import (
	"github.com/go-sql-driver/mysql"
	sqlite "github.com/mattn/go-sqlite3"
)

func normalizeDBError(dbDriverErr error, mappedError map[uint16]error) (err error) {
	err = dbDriverErr
	if mysqlErr, ok := dbDriverErr.(*mysql.MySQLError); ok {
		if mappedErr, ok := mappedError[mysqlErr.Number]; ok {
			err = mappedErr
		}
	} else if sqliteErr, ok := dbDriverErr.(sqlite.Error); ok {
		if sqliteErr.Code == sqlite.ErrConstraint {
			// unique constraint breach maps the same way as MySQL 1062
			if mappedErr, ok := mappedError[1062]; ok {
				err = mappedErr
			}
		}
	}
	return err
}
