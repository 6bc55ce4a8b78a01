package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"os/user"
	"sort"
	"strings"
	"time"

	"github.com/go-ini/ini"
)

// AppVersion is the version string type
type AppVersion string

// GetVersion provides the current version of the project
func GetVersion() AppVersion {
	return "0.1-dev"
}

const (
	// ConfigFilename is the default config file name
	ConfigFilename = "queue-guardian.cfg"
	// DefaultSystemConfigFilePath is the default system location of the configuration
	DefaultSystemConfigFilePath = "/etc/queue-guardian/" + ConfigFilename
	// DefaultCurrentDirConfigFilePath is the config file path based on current working dir
	DefaultCurrentDirConfigFilePath = ConfigFilename
)

var (
	// EmptyConfigurationForError Represents the configuration instance to be
	// used when there is a configuration error during load
	EmptyConfigurationForError = &Config{}

	// ErrInvalidThresholds is returned when the warn threshold is not strictly below the delete threshold
	ErrInvalidThresholds = errors.New("guardian warn-queue-size must be strictly less than delete-queue-size")
	// ErrInvalidBrokerURL is returned when the broker management URL can not be parsed as an absolute URL
	ErrInvalidBrokerURL = errors.New("broker management-url must be an absolute URL")

	defaultLoadFunc = func(configFilePath string) (*ini.File, error) {
		if len(configFilePath) > 0 {
			return ini.LooseLoad([]byte(DefaultConfiguration), DefaultSystemConfigFilePath, getUserHomeDirBasedDefaultConfigFileLocation(), DefaultCurrentDirConfigFilePath, configFilePath)
		}
		return ini.LooseLoad([]byte(DefaultConfiguration), DefaultSystemConfigFilePath, getUserHomeDirBasedDefaultConfigFileLocation(), DefaultCurrentDirConfigFilePath)
	}
	loadConfiguration = defaultLoadFunc
)

var currentUser = user.Current

func getUserHomeDirBasedDefaultConfigFileLocation() string {
	user, err := currentUser()
	if err != nil {
		return DefaultCurrentDirConfigFilePath
	}
	return user.HomeDir + "/.queue-guardian/" + ConfigFilename
}

// Config represents the application configuration
type Config struct {
	dbDialect                  DBDialect
	dbConnectionURL            string
	dbConnectionMaxIdleTime    time.Duration
	dbConnectionMaxLifetime    time.Duration
	dbMaxIdleConnections       uint16
	dbMaxOpenConnections       uint16
	httpListeningAddr          string
	httpReadTimeout            time.Duration
	httpWriteTimeout           time.Duration
	logFilename                string
	logLevel                   LogLevel
	maxFileSize                uint
	maxBackups                 uint
	maxAge                     uint
	compressBackupsEnabled     bool
	brokerManagementURL        *url.URL
	brokerVHost                string
	brokerUsername             string
	brokerPassword             string
	brokerConnectionTimeout    time.Duration
	warnQueueSize              uint
	deleteQueueSize            uint
	guardianPollInterval       time.Duration
	mailEnabled                bool
	auditExportEnabled         bool
	auditExportPath            string
	auditExportNodeName        string
	auditRemoteExportURL       *url.URL
	auditRemoteFilePrefix      string
	auditMaxArchiveFileSizeMB  uint
	smtpHost                   string
	smtpPort                   uint16
	smtpUsername               string
	smtpPassword               string
	mailSenderAddress          string
	// SeedData is exposed directly for status reporting besides the SeedDataConfig accessor
	SeedData SeedData
}

// GetDBDialect returns the DB dialect of the configuration
func (config *Config) GetDBDialect() DBDialect {
	return config.dbDialect
}

// GetDBConnectionURL returns the DB Connection URL string
func (config *Config) GetDBConnectionURL() string {
	return config.dbConnectionURL
}

// GetDBConnectionMaxIdleTime returns the DB Connection max idle time
func (config *Config) GetDBConnectionMaxIdleTime() time.Duration {
	return config.dbConnectionMaxIdleTime
}

// GetDBConnectionMaxLifetime returns the DB Connection max lifetime
func (config *Config) GetDBConnectionMaxLifetime() time.Duration {
	return config.dbConnectionMaxLifetime
}

// GetMaxIdleDBConnections returns the maximum number of idle DB connections to retain in pool
func (config *Config) GetMaxIdleDBConnections() uint16 {
	return config.dbMaxIdleConnections
}

// GetMaxOpenDBConnections returns the maximum number of concurrent DB connections to keep open
func (config *Config) GetMaxOpenDBConnections() uint16 {
	return config.dbMaxOpenConnections
}

// GetHTTPListeningAddr retrieves the connection string to listen to
func (config *Config) GetHTTPListeningAddr() string {
	return config.httpListeningAddr
}

// GetHTTPReadTimeout retrieves the connection read timeout
func (config *Config) GetHTTPReadTimeout() time.Duration {
	return config.httpReadTimeout
}

// GetHTTPWriteTimeout retrieves the connection write timeout
func (config *Config) GetHTTPWriteTimeout() time.Duration {
	return config.httpWriteTimeout
}

// IsLoggerConfigAvailable checks is logger configuration is set since its optional
func (config *Config) IsLoggerConfigAvailable() bool {
	return len(config.logFilename) > 0
}

// GetLogLevel returns the log level configured for the process
func (config *Config) GetLogLevel() LogLevel {
	return config.logLevel
}

// GetLogFilename retrieves the file name of the log
func (config *Config) GetLogFilename() string {
	return config.logFilename
}

// GetMaxLogFileSize retrieves the max log file size before its rotated in MB
func (config *Config) GetMaxLogFileSize() uint {
	return config.maxFileSize
}

// GetMaxLogBackups retrieves max rotated logs to retain
func (config *Config) GetMaxLogBackups() uint {
	return config.maxBackups
}

// GetMaxAgeForALogFile retrieves maximum day to retain a rotated log file
func (config *Config) GetMaxAgeForALogFile() uint {
	return config.maxAge
}

// IsCompressionEnabledOnLogBackups checks if log backups are compressed
func (config *Config) IsCompressionEnabledOnLogBackups() bool {
	return config.compressBackupsEnabled
}

// GetManagementURL returns the base URL of the broker management API
func (config *Config) GetManagementURL() *url.URL {
	return config.brokerManagementURL
}

// GetBrokerVHost returns the vhost this guardian instance watches over
func (config *Config) GetBrokerVHost() string {
	return config.brokerVHost
}

// GetBrokerUsername returns the management API username
func (config *Config) GetBrokerUsername() string {
	return config.brokerUsername
}

// GetBrokerPassword returns the management API password
func (config *Config) GetBrokerPassword() string {
	return config.brokerPassword
}

// GetBrokerConnectionTimeout returns the HTTP timeout for a single management API call
func (config *Config) GetBrokerConnectionTimeout() time.Duration {
	return config.brokerConnectionTimeout
}

// GetWarnQueueSize returns the message count above which a queue owner is warned once
func (config *Config) GetWarnQueueSize() uint {
	return config.warnQueueSize
}

// GetDeleteQueueSize returns the message count above which a queue is force deleted
func (config *Config) GetDeleteQueueSize() uint {
	return config.deleteQueueSize
}

// GetGuardianPollInterval returns the sleep duration between two enforcement cycles
func (config *Config) GetGuardianPollInterval() time.Duration {
	return config.guardianPollInterval
}

// IsMailEnabled returns whether warning notifications are actually sent out
func (config *Config) IsMailEnabled() bool {
	return config.mailEnabled
}

// IsAuditExportEnabled returns true if enforcement actions should be archived
func (config *Config) IsAuditExportEnabled() bool {
	return config.auditExportEnabled
}

// GetExportPath returns the local filesystem path for the audit archive
func (config *Config) GetExportPath() string {
	return config.auditExportPath
}

// GetExportNodeName returns a prefix to be added to the archive object name
func (config *Config) GetExportNodeName() string {
	return config.auditExportNodeName
}

// GetRemoteExportURL returns the root URL for the remote archive destination
func (config *Config) GetRemoteExportURL() *url.URL {
	return config.auditRemoteExportURL
}

// GetRemoteFilePrefix returns the prefix for archive objects uploaded to the remote destination
func (config *Config) GetRemoteFilePrefix() string {
	return config.auditRemoteFilePrefix
}

// GetMaxArchiveFileSizeInMB returns the max archive object size before rotation
func (config *Config) GetMaxArchiveFileSizeInMB() uint {
	return config.auditMaxArchiveFileSizeMB
}

// GetSMTPHost returns the SMTP relay host for warning mails
func (config *Config) GetSMTPHost() string {
	return config.smtpHost
}

// GetSMTPPort returns the SMTP relay port
func (config *Config) GetSMTPPort() uint16 {
	return config.smtpPort
}

// GetSMTPUsername returns the SMTP auth username; empty means unauthenticated relay
func (config *Config) GetSMTPUsername() string {
	return config.smtpUsername
}

// GetSMTPPassword returns the SMTP auth password
func (config *Config) GetSMTPPassword() string {
	return config.smtpPassword
}

// GetMailSenderAddress returns the From address of warning mails
func (config *Config) GetMailSenderAddress() string {
	return config.mailSenderAddress
}

// GetSeedData returns the seed data configuration
func (config *Config) GetSeedData() SeedData {
	return config.SeedData
}

// GetAutoConfiguration gets configuration from default config and system defined path chain of
// /etc/queue-guardian/queue-guardian.cfg, {USER_HOME}/.queue-guardian/queue-guardian.cfg, queue-guardian.cfg (current dir)
func GetAutoConfiguration() (*Config, error) {
	return GetConfiguration("")
}

// GetConfiguration gets the current state of application configuration
func GetConfiguration(configFilePath string) (*Config, error) {
	configuration := &Config{}
	cfg, err := loadConfiguration(configFilePath)
	if err != nil {
		return EmptyConfigurationForError, err
	}
	setupStorageConfiguration(cfg, configuration)
	setupHTTPConfiguration(cfg, configuration)
	setupLogConfiguration(cfg, configuration)
	err = setupBrokerConfiguration(cfg, configuration)
	if err != nil {
		return EmptyConfigurationForError, err
	}
	err = setupGuardianConfiguration(cfg, configuration)
	if err != nil {
		return EmptyConfigurationForError, err
	}
	setupAuditExportConfiguration(cfg, configuration)
	setupMailConfiguration(cfg, configuration)
	setupSeedDataConfiguration(cfg, configuration)
	return configuration, nil
}

func setupStorageConfiguration(cfg *ini.File, configuration *Config) {
	dbSection, _ := cfg.GetSection("rdbms")
	dbDialect, _ := dbSection.GetKey("dialect")
	dbConnection, _ := dbSection.GetKey("connection-url")
	dbMaxIdleTimeInSec, _ := dbSection.GetKey("connxn-max-idle-time-seconds")
	dbMaxLifetimeInSec, _ := dbSection.GetKey("connxn-max-lifetime-seconds")
	dbMaxIdleConnections, _ := dbSection.GetKey("max-idle-connxns")
	dbMaxOpenConnections, _ := dbSection.GetKey("max-open-connxns")
	configuration.dbDialect = DBDialect(dbDialect.String())
	configuration.dbConnectionURL = dbConnection.String()
	configuration.dbConnectionMaxIdleTime = time.Duration(dbMaxIdleTimeInSec.MustUint(0)) * time.Second
	configuration.dbConnectionMaxLifetime = time.Duration(dbMaxLifetimeInSec.MustUint(0)) * time.Second
	configuration.dbMaxIdleConnections = uint16(dbMaxIdleConnections.MustUint(10))
	configuration.dbMaxOpenConnections = uint16(dbMaxOpenConnections.MustUint(50))
}

func setupHTTPConfiguration(cfg *ini.File, configuration *Config) {
	httpSection, _ := cfg.GetSection("http")
	httpListener, _ := httpSection.GetKey("listener")
	httpReadTimeout, _ := httpSection.GetKey("read-timeout")
	httpWriteTimeout, _ := httpSection.GetKey("write-timeout")
	configuration.httpListeningAddr = httpListener.String()
	configuration.httpReadTimeout = time.Duration(httpReadTimeout.MustUint(180)) * time.Second
	configuration.httpWriteTimeout = time.Duration(httpWriteTimeout.MustUint(180)) * time.Second
}

func setupLogConfiguration(cfg *ini.File, configuration *Config) {
	logSection, _ := cfg.GetSection("log")
	logFilenameKey, _ := logSection.GetKey("filename")
	logLevelKey, _ := logSection.GetKey("log-level")
	maxFileSizeKey, _ := logSection.GetKey("max-file-size-in-mb")
	maxBackupsKey, _ := logSection.GetKey("max-backups")
	maxAgeKey, _ := logSection.GetKey("max-age-in-days")
	compressEnabledKey, _ := logSection.GetKey("compress-backups")
	configuration.logFilename = logFilenameKey.String()
	configuration.logLevel = LogLevel(logLevelKey.MustString(string(InfoLevel)))
	configuration.maxFileSize = maxFileSizeKey.MustUint(50)
	configuration.maxBackups = maxBackupsKey.MustUint(1)
	configuration.maxAge = maxAgeKey.MustUint(30)
	configuration.compressBackupsEnabled = compressEnabledKey.MustBool(false)
}

func setupBrokerConfiguration(cfg *ini.File, configuration *Config) error {
	brokerSection, _ := cfg.GetSection("broker")
	managementURLKey, _ := brokerSection.GetKey("management-url")
	vhostKey, _ := brokerSection.GetKey("vhost")
	usernameKey, _ := brokerSection.GetKey("username")
	passwordKey, _ := brokerSection.GetKey("password")
	connectionTimeoutKey, _ := brokerSection.GetKey("connection-timeout-in-seconds")
	managementURL, err := url.Parse(managementURLKey.String())
	if err != nil || !managementURL.IsAbs() {
		return ErrInvalidBrokerURL
	}
	configuration.brokerManagementURL = managementURL
	configuration.brokerVHost = vhostKey.MustString("/")
	configuration.brokerUsername = usernameKey.String()
	configuration.brokerPassword = passwordKey.String()
	configuration.brokerConnectionTimeout = time.Duration(connectionTimeoutKey.MustUint(30)) * time.Second
	return nil
}

func setupGuardianConfiguration(cfg *ini.File, configuration *Config) error {
	guardianSection, _ := cfg.GetSection("guardian")
	warnSizeKey, _ := guardianSection.GetKey("warn-queue-size")
	deleteSizeKey, _ := guardianSection.GetKey("delete-queue-size")
	pollIntervalKey, _ := guardianSection.GetKey("poll-interval-seconds")
	emailsEnabledKey, _ := guardianSection.GetKey("emails-enabled")
	configuration.warnQueueSize = warnSizeKey.MustUint(5000)
	configuration.deleteQueueSize = deleteSizeKey.MustUint(15000)
	configuration.guardianPollInterval = time.Duration(pollIntervalKey.MustUint(10)) * time.Second
	configuration.mailEnabled = emailsEnabledKey.MustBool(true)
	if configuration.warnQueueSize >= configuration.deleteQueueSize {
		return ErrInvalidThresholds
	}
	return nil
}

func setupAuditExportConfiguration(cfg *ini.File, configuration *Config) {
	auditSection, _ := cfg.GetSection("audit-export")
	enabledKey, _ := auditSection.GetKey("enabled")
	exportPathKey, _ := auditSection.GetKey("export-path")
	nodeNameKey, _ := auditSection.GetKey("export-node-name")
	remoteURLKey, _ := auditSection.GetKey("remote-export-url")
	remotePrefixKey, _ := auditSection.GetKey("remote-file-prefix")
	maxArchiveSizeKey, _ := auditSection.GetKey("max-archive-file-size-in-mb")
	configuration.auditExportEnabled = enabledKey.MustBool(false)
	configuration.auditExportPath = exportPathKey.String()
	configuration.auditExportNodeName = nodeNameKey.MustString("guardian-0")
	if remoteURLString := remoteURLKey.String(); len(remoteURLString) > 0 {
		if remoteURL, err := url.Parse(remoteURLString); err == nil && remoteURL.IsAbs() {
			configuration.auditRemoteExportURL = remoteURL
		}
	}
	configuration.auditRemoteFilePrefix = remotePrefixKey.String()
	configuration.auditMaxArchiveFileSizeMB = maxArchiveSizeKey.MustUint(100)
}

func setupMailConfiguration(cfg *ini.File, configuration *Config) {
	mailSection, _ := cfg.GetSection("mail")
	smtpHostKey, _ := mailSection.GetKey("smtp-host")
	smtpPortKey, _ := mailSection.GetKey("smtp-port")
	smtpUsernameKey, _ := mailSection.GetKey("smtp-username")
	smtpPasswordKey, _ := mailSection.GetKey("smtp-password")
	senderKey, _ := mailSection.GetKey("sender-address")
	configuration.smtpHost = smtpHostKey.MustString("localhost")
	configuration.smtpPort = uint16(smtpPortKey.MustUint(25))
	configuration.smtpUsername = smtpUsernameKey.String()
	configuration.smtpPassword = smtpPasswordKey.String()
	configuration.mailSenderAddress = senderKey.MustString("queue-guardian@localhost")
}

func setupSeedDataConfiguration(cfg *ini.File, configuration *Config) {
	seedData := SeedData{}
	accountsSection, _ := cfg.GetSection("initial-accounts")
	accountKeys := accountsSection.Keys()
	accounts := make([]SeedAccount, 0, len(accountKeys))
	for _, accountKey := range accountKeys {
		accounts = append(accounts, SeedAccount{Email: strings.ToLower(accountKey.Name()), Admin: accountKey.MustString("") == "admin"})
	}
	seedData.Accounts = accounts
	principalsSection, _ := cfg.GetSection("initial-principals")
	principalKeys := principalsSection.Keys()
	principals := make([]SeedPrincipal, 0, len(principalKeys))
	for _, principalKey := range principalKeys {
		principals = append(principals, SeedPrincipal{Username: principalKey.Name(), OwnerEmail: strings.ToLower(principalKey.MustString(""))})
	}
	seedData.Principals = principals
	seedData.DataHash = computeSeedDataHash(&seedData)
	configuration.SeedData = seedData
}

func computeSeedDataHash(seedData *SeedData) string {
	hashable := make([]string, 0, len(seedData.Accounts)+len(seedData.Principals))
	for _, account := range seedData.Accounts {
		hashable = append(hashable, "account:"+account.Email+":"+boolToHashFragment(account.Admin))
	}
	for _, principal := range seedData.Principals {
		hashable = append(hashable, "principal:"+principal.Username+":"+principal.OwnerEmail)
	}
	sort.Strings(hashable)
	hasher := sha256.New()
	for _, fragment := range hashable {
		hasher.Write([]byte(fragment))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

func boolToHashFragment(val bool) string {
	if val {
		return "t"
	}
	return "f"
}
