package config

// DefaultConfiguration is the configuration that will be in effect if no configuration is loaded from any of the expected locations
const DefaultConfiguration = `[rdbms]
dialect=sqlite3
connection-url=queue-guardian.sqlite3?_foreign_keys=on
connxn-max-idle-time-seconds=0
connxn-max-lifetime-seconds=0
max-idle-connxns=30
max-open-connxns=100
[http]
listener=:7070
read-timeout=240
write-timeout=240
[log]
filename=
log-level=info
max-file-size-in-mb=200
max-backups=3
max-age-in-days=28
compress-backups=true
[broker]
management-url=http://localhost:15672
vhost=/
username=guest
password=guest
connection-timeout-in-seconds=30
[guardian]
warn-queue-size=5000
delete-queue-size=15000
poll-interval-seconds=10
emails-enabled=true
[audit-export]
enabled=false
export-path=/tmp/queue-guardian-audit
export-node-name=guardian-0
remote-export-url=
remote-file-prefix=
max-archive-file-size-in-mb=100
[mail]
smtp-host=localhost
smtp-port=25
smtp-username=
smtp-password=
sender-address=queue-guardian@localhost
[initial-accounts]
admin@example.com=admin
[initial-principals]
guardtest=admin@example.com
`
