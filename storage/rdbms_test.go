package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/newscred/queue-guardian/config"
	"github.com/newscred/queue-guardian/storage/data"
	"github.com/stretchr/testify/assert"
)

var (
	testDB               *sql.DB
	migrationLocation, _ = filepath.Abs("../migration/sqls/")
	defaultMigrationConf = &MigrationConfig{MigrationEnabled: true, MigrationSource: "file://" + migrationLocation}
)

func TestMain(m *testing.M) {
	// Setup DB and migration
	os.Remove("./queue-guardian.sqlite3")
	configuration, _ := config.GetAutoConfiguration()
	var dbErr error
	testDB, dbErr = GetConnectionPool(configuration, defaultMigrationConf, configuration)
	if dbErr == nil {
		m.Run()
	}
	testDB.Close()
}

func dbPanicDeferAssert(t *testing.T) {
	r := recover()
	assert.Equal(t, ErrDBConnectionNeverInitialized, r)
}

func TestRepositoryCreationPanicOnNilPool(t *testing.T) {
	t.Run("App", func(t *testing.T) {
		defer dbPanicDeferAssert(t)
		NewAppRepository(nil)
	})
	t.Run("Account", func(t *testing.T) {
		defer dbPanicDeferAssert(t)
		NewAccountRepository(nil)
	})
	t.Run("Principal", func(t *testing.T) {
		defer dbPanicDeferAssert(t)
		NewBrokerPrincipalRepository(nil, nil)
	})
	t.Run("Queue", func(t *testing.T) {
		defer dbPanicDeferAssert(t)
		NewMonitoredQueueRepository(nil, nil)
	})
	t.Run("Notification", func(t *testing.T) {
		defer dbPanicDeferAssert(t)
		NewNotificationRepository(nil)
	})
}

func TestGetNewDataAccessor(t *testing.T) {
	configuration, _ := config.GetAutoConfiguration()
	t.Run("DBConnectionErr", func(t *testing.T) {
		dataAccessorInitializer = sync.Once{}
		oldGetDB := getDB
		defer func() { getDB = oldGetDB }()
		dbConnectionErr := errors.New("DB Connection Error")
		getDB = func(dialect, connectionURL string) (*sql.DB, error) {
			return nil, dbConnectionErr
		}
		_, err := GetNewDataAccessor(configuration, defaultMigrationConf, configuration)
		assert.Equal(t, dbConnectionErr, err)
		t.Run("RetryingAfterConnectionErr", func(t *testing.T) {
			_, err := GetNewDataAccessor(configuration, defaultMigrationConf, configuration)
			assert.Equal(t, ErrDBConnectionNeverInitialized, err)
		})
	})
	t.Run("MigrationDriverErr", func(t *testing.T) {
		dataAccessorInitializer = sync.Once{}
		oldGetMigrationDriver := getMigrationDriver
		defer func() { getMigrationDriver = oldGetMigrationDriver }()
		migrationErr := errors.New("Migration Driver Error")
		getMigrationDriver = func(db *sql.DB, dbConfig config.RelationalDatabaseConfig) (database.Driver, error) {
			return nil, migrationErr
		}
		_, err := GetNewDataAccessor(configuration, defaultMigrationConf, configuration)
		assert.Equal(t, migrationErr, err)
	})
	t.Run("MigrationSourceErr", func(t *testing.T) {
		dataAccessorInitializer = sync.Once{}
		badMigrationConf := &MigrationConfig{MigrationEnabled: true, MigrationSource: "file:///path/does/not/exist"}
		_, err := GetNewDataAccessor(configuration, badMigrationConf, configuration)
		assert.NotNil(t, err)
	})
	t.Run("Success", func(t *testing.T) {
		dataAccessorInitializer = sync.Once{}
		dataAccessor, err := GetNewDataAccessor(configuration, defaultMigrationConf, configuration)
		assert.Nil(t, err)
		assert.NotNil(t, dataAccessor.GetAppRepository())
		assert.NotNil(t, dataAccessor.GetAccountRepository())
		assert.NotNil(t, dataAccessor.GetBrokerPrincipalRepository())
		assert.NotNil(t, dataAccessor.GetMonitoredQueueRepository())
		assert.NotNil(t, dataAccessor.GetNotificationRepository())
		assert.NotNil(t, dataAccessor.GetLockRepository())
	})
}

func TestAppRepository(t *testing.T) {
	configuration, _ := config.GetAutoConfiguration()
	seedData := configuration.GetSeedData()
	appRepo := NewAppRepository(testDB)
	t.Run("GetApp", func(t *testing.T) {
		app, err := appRepo.GetApp()
		assert.Nil(t, err)
		assert.NotNil(t, app)
		assert.Equal(t, seedData.DataHash, app.GetSeedData().DataHash)
	})
	t.Run("InitCycle", func(t *testing.T) {
		app, err := appRepo.GetApp()
		assert.Nil(t, err)
		if app.GetStatus() == data.Initializing {
			assert.Nil(t, appRepo.CompleteAppInit())
		}
		changedSeedData := seedData
		changedSeedData.DataHash = "changed-hash-for-test"
		err = appRepo.StartAppInit(&changedSeedData)
		assert.Nil(t, err)
		assert.Equal(t, ErrAppInitializing, appRepo.StartAppInit(&changedSeedData))
		assert.Nil(t, appRepo.CompleteAppInit())
		assert.Equal(t, ErrCompleteWhileNotBeingInitialized, appRepo.CompleteAppInit())
		assert.Equal(t, ErrNoDataChangeFromInitialized, appRepo.StartAppInit(&changedSeedData))
		// restore configured seed for other tests
		assert.Nil(t, appRepo.StartAppInit(&seedData))
		assert.Nil(t, appRepo.CompleteAppInit())
	})
	t.Run("GetAppDBErr", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		expectedErr := errors.New("query error")
		mock.ExpectQuery("SELECT seedData, appStatus FROM app").WillReturnError(expectedErr)
		repo := &AppDBRepository{db: db}
		_, err := repo.GetApp()
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run("StartAppInitGetErr", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		expectedErr := errors.New("query error")
		mock.ExpectQuery("SELECT seedData, appStatus FROM app").WillReturnError(expectedErr)
		repo := &AppDBRepository{db: db}
		err := repo.StartAppInit(&seedData)
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, mock.ExpectationsWereMet())
	})
}
