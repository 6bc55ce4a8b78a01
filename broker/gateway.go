package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/google/wire"
	"github.com/newscred/queue-guardian/config"
	"github.com/rs/zerolog/log"
)

var (
	// ErrBrokerUnavailable is returned when the management API could not be reached or refused the call
	ErrBrokerUnavailable = errors.New("broker management API unavailable")
	// ErrQueueNotFound is returned when the queue to act on does not exist broker side
	ErrQueueNotFound = errors.New("queue not found in broker")
	// ErrBrokerActionFailed is returned when the management API rejected the requested action
	ErrBrokerActionFailed = errors.New("broker management API rejected the action")
	// ErrMalformedResponse is returned when the management API payload could not be decoded
	ErrMalformedResponse = errors.New("malformed response from broker management API")

	// GatewayInjector is the provider set for the broker management gateway
	GatewayInjector = wire.NewSet(NewManagementGateway, wire.Bind(new(Gateway), new(*ManagementGateway)))
)

const (
	queueStatColumns  = "name,messages_ready,consumers"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// QueueStat is a single queue as reported by the broker snapshot
type QueueStat struct {
	Name          string `json:"name"`
	MessagesReady uint   `json:"messages_ready"`
	Consumers     uint   `json:"consumers"`
}

// Gateway exposes the broker management operations the guardian and the
// provisioning surface need. Every call is a single attempt; retry policy
// belongs to the caller.
type Gateway interface {
	ListQueues(ctx context.Context) ([]QueueStat, error)
	DeleteQueue(ctx context.Context, queueName string) error
	CreateUser(ctx context.Context, username, password string) error
	DeleteUser(ctx context.Context, username string) error
	SetPermission(ctx context.Context, username string) error
}

// ManagementGateway is the HTTP implementation of Gateway against the
// RabbitMQ management API
type ManagementGateway struct {
	baseURL    *url.URL
	vhost      string
	username   string
	password   string
	httpClient *http.Client
}

// NewManagementGateway creates the gateway from broker connection configuration
func NewManagementGateway(brokerConfig config.BrokerConnectionConfig) *ManagementGateway {
	return &ManagementGateway{
		baseURL:    brokerConfig.GetManagementURL(),
		vhost:      brokerConfig.GetBrokerVHost(),
		username:   brokerConfig.GetBrokerUsername(),
		password:   brokerConfig.GetBrokerPassword(),
		httpClient: &http.Client{Timeout: brokerConfig.GetBrokerConnectionTimeout()},
	}
}

func (gateway *ManagementGateway) endpoint(pathSegments ...string) string {
	endpointURL := *gateway.baseURL
	escapedPath := "/api"
	for _, segment := range pathSegments {
		escapedPath = escapedPath + "/" + url.PathEscape(segment)
	}
	endpointURL.Path = ""
	endpointURL.RawPath = ""
	return endpointURL.String() + escapedPath
}

func (gateway *ManagementGateway) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(gateway.username, gateway.password)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	resp, err := gateway.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("broker management API call failed")
		return nil, ErrBrokerUnavailable
	}
	return resp, nil
}

// ListQueues fetches the live queue snapshot for the configured vhost
func (gateway *ManagementGateway) ListQueues(ctx context.Context) ([]QueueStat, error) {
	endpoint := gateway.endpoint("queues", gateway.vhost) + "?columns=" + queueStatColumns
	resp, err := gateway.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Str("status", resp.Status).Msg("broker queue listing refused")
		return nil, ErrBrokerUnavailable
	}
	queues := make([]QueueStat, 0)
	if err = json.NewDecoder(resp.Body).Decode(&queues); err != nil {
		log.Error().Err(err).Msg("could not decode broker queue listing")
		return nil, ErrMalformedResponse
	}
	return queues, nil
}

// DeleteQueue removes the queue from the broker; ErrQueueNotFound if it is already gone
func (gateway *ManagementGateway) DeleteQueue(ctx context.Context, queueName string) error {
	resp, err := gateway.do(ctx, http.MethodDelete, gateway.endpoint("queues", gateway.vhost, queueName), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrQueueNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.Error().Str("status", resp.Status).Str("queueName", queueName).Msg("broker queue delete refused")
		return ErrBrokerActionFailed
	}
	return nil
}

// CreateUser provisions a broker user with the supplied password and no tags
func (gateway *ManagementGateway) CreateUser(ctx context.Context, username, password string) error {
	payload, _ := json.Marshal(map[string]string{"password": password, "tags": ""})
	resp, err := gateway.do(ctx, http.MethodPut, gateway.endpoint("users", username), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Str("status", resp.Status).Str("username", username).Msg("broker user creation refused")
		return ErrBrokerActionFailed
	}
	return nil
}

// DeleteUser removes a broker user
func (gateway *ManagementGateway) DeleteUser(ctx context.Context, username string) error {
	resp, err := gateway.do(ctx, http.MethodDelete, gateway.endpoint("users", username), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Str("status", resp.Status).Str("username", username).Msg("broker user delete refused")
		return ErrBrokerActionFailed
	}
	return nil
}

// SetPermission grants the user full configure, write and read on the vhost
func (gateway *ManagementGateway) SetPermission(ctx context.Context, username string) error {
	payload, _ := json.Marshal(map[string]string{"configure": ".*", "write": ".*", "read": ".*"})
	resp, err := gateway.do(ctx, http.MethodPut, gateway.endpoint("permissions", gateway.vhost, username), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Str("status", resp.Status).Str("username", username).Msg("broker permission update refused")
		return ErrBrokerActionFailed
	}
	return nil
}
