package config

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"net/url"
	"strings"
	"time"
)

// DBDialect is the RDBMS dialect identifier used for driver and migration selection
type DBDialect string

const (
	// MySQLDialect represents the MySQL dialect
	MySQLDialect DBDialect = "mysql"
	// SQLite3Dialect represents the SQLite3 dialect
	SQLite3Dialect DBDialect = "sqlite3"
)

// LogLevel is the log level for the application wide logger
type LogLevel string

const (
	// DebugLevel is the most verbose level
	DebugLevel LogLevel = "debug"
	// InfoLevel is the default level
	InfoLevel LogLevel = "info"
	// ErrorLevel logs errors only
	ErrorLevel LogLevel = "error"
)

// RelationalDatabaseConfig represents DB configuration related behaviors
type RelationalDatabaseConfig interface {
	GetDBDialect() DBDialect
	GetDBConnectionURL() string
	GetDBConnectionMaxIdleTime() time.Duration
	GetDBConnectionMaxLifetime() time.Duration
	GetMaxIdleDBConnections() uint16
	GetMaxOpenDBConnections() uint16
}

// HTTPConfig represents the HTTP configuration related behaviors
type HTTPConfig interface {
	GetHTTPListeningAddr() string
	GetHTTPReadTimeout() time.Duration
	GetHTTPWriteTimeout() time.Duration
}

// LogConfig represents the interface for log related configuration
type LogConfig interface {
	GetLogLevel() LogLevel
	IsLoggerConfigAvailable() bool
	GetLogFilename() string
	GetMaxLogFileSize() uint
	GetMaxLogBackups() uint
	GetMaxAgeForALogFile() uint
	IsCompressionEnabledOnLogBackups() bool
}

// BrokerConnectionConfig provides the management API connection parameters of the guarded broker
type BrokerConnectionConfig interface {
	// GetManagementURL returns the base URL of the broker management API, e.g. http://localhost:15672
	GetManagementURL() *url.URL
	// GetBrokerVHost returns the vhost this guardian instance watches over
	GetBrokerVHost() string
	GetBrokerUsername() string
	GetBrokerPassword() string
	GetBrokerConnectionTimeout() time.Duration
}

// GuardianConfig provides the enforcement loop configuration
type GuardianConfig interface {
	// GetWarnQueueSize returns the message count above which a queue owner is warned once
	GetWarnQueueSize() uint
	// GetDeleteQueueSize returns the message count above which a queue is force deleted
	GetDeleteQueueSize() uint
	// GetGuardianPollInterval returns the sleep duration between two enforcement cycles
	GetGuardianPollInterval() time.Duration
	// IsMailEnabled returns whether warning notifications are actually sent out
	IsMailEnabled() bool
}

// AuditExportConfig provides the interface for configuring enforcement action audit export
type AuditExportConfig interface {
	// IsAuditExportEnabled returns true if enforcement actions should be archived
	IsAuditExportEnabled() bool
	// GetExportPath returns the local filesystem path for the audit archive
	GetExportPath() string
	// GetExportNodeName returns a prefix to be added to the archive object name
	GetExportNodeName() string
	// GetRemoteExportURL returns the root URL for the remote archive destination; nil disables remote export
	GetRemoteExportURL() *url.URL
	// GetRemoteFilePrefix returns the prefix for archive objects uploaded to the remote destination
	GetRemoteFilePrefix() string
	// GetMaxArchiveFileSizeInMB returns the max archive object size before rotation
	GetMaxArchiveFileSizeInMB() uint
}

// MailConfig provides the SMTP transport configuration for warning notifications
type MailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() uint16
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetMailSenderAddress() string
}

// SeedAccount represents a pre configured application account via configuration
type SeedAccount struct {
	// Email is the contact address of the account, also its unique key
	Email string
	// Admin marks the account as administrative
	Admin bool
}

// SeedPrincipal represents a pre configured broker principal via configuration
type SeedPrincipal struct {
	// Username is the broker level username owning queues by prefix convention
	Username string
	// OwnerEmail is the email of the owning account; empty leaves the principal unmapped
	OwnerEmail string
}

// SeedData represents data specified in configuration to ensure is present when app starts up
type SeedData struct {
	DataHash   string
	Accounts   []SeedAccount
	Principals []SeedPrincipal
}

// Scan de-serializes SeedData for reading from DB
func (u *SeedData) Scan(value interface{}) (err error) {
	if stringVal, ok := value.(string); ok {
		err = json.NewDecoder(strings.NewReader(stringVal)).Decode(u)
	} else if sqlRawBytes, ok := value.(sql.RawBytes); ok {
		err = json.NewDecoder(strings.NewReader(string(sqlRawBytes))).Decode(u)
	} else if rawBytes, ok := value.([]byte); ok {
		err = json.NewDecoder(strings.NewReader(string(rawBytes))).Decode(u)
	}
	return err
}

// Value serializes SeedData to write to DB
func (u SeedData) Value() (driver.Value, error) {
	var buf bytes.Buffer
	err := json.NewEncoder(&buf).Encode(u)
	return buf.Bytes(), err
}

// SeedDataConfig provides the interface for working with SeedData in configuration
type SeedDataConfig interface {
	GetSeedData() SeedData
}
