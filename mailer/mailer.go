package mailer

import (
	"fmt"

	"github.com/google/wire"
	"github.com/newscred/queue-guardian/config"
	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// DispatcherInjector is the provider set for the warning mail dispatcher
var DispatcherInjector = wire.NewSet(NewDispatcher)

const (
	warningSubjectFormat = "Warning: queue %q is overgrowing"
	warningBodyFormat    = `The queue %q on the guarded broker has %d ready messages, which is over
the warning threshold of %d.

If the queue grows past %d ready messages it will be automatically
deleted along with all of its pending messages. Please make sure the
queue is being consumed, or delete it yourself if it is no longer
needed.

This warning is sent only once per queue.
`
)

// Dispatcher sends queue growth warnings to interested addresses
type Dispatcher interface {
	NotifyQueueWarning(address, queueName string, observedSize, warnSize, deleteSize uint) error
}

// SMTPDispatcher is the SMTP backed Dispatcher
type SMTPDispatcher struct {
	mailConfig config.MailConfig
}

var dialAndSend = func(client *mail.Client, message *mail.Msg) error {
	return client.DialAndSend(message)
}

// NotifyQueueWarning sends a single warning mail; a failure is returned, never retried here
func (dispatcher *SMTPDispatcher) NotifyQueueWarning(address, queueName string, observedSize, warnSize, deleteSize uint) error {
	message := mail.NewMsg()
	if err := message.From(dispatcher.mailConfig.GetMailSenderAddress()); err != nil {
		return err
	}
	if err := message.To(address); err != nil {
		return err
	}
	message.Subject(fmt.Sprintf(warningSubjectFormat, queueName))
	message.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(warningBodyFormat, queueName, observedSize, warnSize, deleteSize))
	client, err := dispatcher.getClient()
	if err != nil {
		return err
	}
	return dialAndSend(client, message)
}

func (dispatcher *SMTPDispatcher) getClient() (*mail.Client, error) {
	options := []mail.Option{mail.WithPort(int(dispatcher.mailConfig.GetSMTPPort()))}
	if len(dispatcher.mailConfig.GetSMTPUsername()) > 0 {
		options = append(options, mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(dispatcher.mailConfig.GetSMTPUsername()),
			mail.WithPassword(dispatcher.mailConfig.GetSMTPPassword()))
	} else {
		// local relays without auth, e.g. a dev mailhog instance
		options = append(options, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return mail.NewClient(dispatcher.mailConfig.GetSMTPHost(), options...)
}

// NoOpDispatcher swallows warnings when mail sending is disabled
type NoOpDispatcher struct {
}

// NotifyQueueWarning logs the suppressed warning and reports success
func (dispatcher *NoOpDispatcher) NotifyQueueWarning(address, queueName string, observedSize, warnSize, deleteSize uint) error {
	log.Info().Str("address", address).Str("queueName", queueName).Uint("observedSize", observedSize).
		Msg("mail disabled, queue warning suppressed")
	return nil
}

// NewDispatcher selects the dispatcher implementation based on whether mail is enabled
func NewDispatcher(guardianConfig config.GuardianConfig, mailConfig config.MailConfig) Dispatcher {
	if !guardianConfig.IsMailEnabled() {
		return &NoOpDispatcher{}
	}
	return &SMTPDispatcher{mailConfig: mailConfig}
}
