package broker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testBrokerConfig struct {
	managementURL *url.URL
	vhost         string
}

func (c *testBrokerConfig) GetManagementURL() *url.URL { return c.managementURL }

func (c *testBrokerConfig) GetBrokerVHost() string { return c.vhost }

func (c *testBrokerConfig) GetBrokerUsername() string { return "guest" }

func (c *testBrokerConfig) GetBrokerPassword() string { return "guest" }

func (c *testBrokerConfig) GetBrokerConnectionTimeout() time.Duration { return 2 * time.Second }

func getTestGateway(t *testing.T, handler http.Handler) (*ManagementGateway, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	serverURL, err := url.Parse(server.URL)
	assert.Nil(t, err)
	return NewManagementGateway(&testBrokerConfig{managementURL: serverURL, vhost: "/"}), server
}

func TestListQueues(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			// default vhost escapes to %2F in the path
			assert.Equal(t, "/api/queues/%2F", r.URL.EscapedPath())
			assert.Equal(t, queueStatColumns, r.URL.Query().Get("columns"))
			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "guest", username)
			assert.Equal(t, "guest", password)
			w.Header().Set(headerContentType, contentTypeJSON)
			w.Write([]byte(`[{"name":"guardtest-events","messages_ready":5200,"consumers":0},{"name":"stray/queue","messages_ready":12,"consumers":3}]`))
		}))
		queues, err := gateway.ListQueues(context.Background())
		assert.Nil(t, err)
		assert.Equal(t, []QueueStat{
			{Name: "guardtest-events", MessagesReady: 5200, Consumers: 0},
			{Name: "stray/queue", MessagesReady: 12, Consumers: 3},
		}, queues)
	})
	t.Run("EmptyVHost", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		queues, err := gateway.ListQueues(context.Background())
		assert.Nil(t, err)
		assert.Empty(t, queues)
		assert.NotNil(t, queues)
	})
	t.Run("RefusedByBroker", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		_, err := gateway.ListQueues(context.Background())
		assert.Equal(t, ErrBrokerUnavailable, err)
	})
	t.Run("MalformedResponse", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"a list"`))
		}))
		_, err := gateway.ListQueues(context.Background())
		assert.Equal(t, ErrMalformedResponse, err)
	})
	t.Run("BrokerDown", func(t *testing.T) {
		t.Parallel()
		gateway, server := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()
		_, err := gateway.ListQueues(context.Background())
		assert.Equal(t, ErrBrokerUnavailable, err)
	})
}

func TestDeleteQueue(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/queues/%2F/stray%2Fqueue", r.URL.EscapedPath())
			w.WriteHeader(http.StatusNoContent)
		}))
		assert.Nil(t, gateway.DeleteQueue(context.Background(), "stray/queue"))
	})
	t.Run("AlreadyGone", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		assert.Equal(t, ErrQueueNotFound, gateway.DeleteQueue(context.Background(), "gone-queue"))
	})
	t.Run("Refused", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		assert.Equal(t, ErrBrokerActionFailed, gateway.DeleteQueue(context.Background(), "any-queue"))
	})
	t.Run("BrokerDown", func(t *testing.T) {
		t.Parallel()
		gateway, server := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()
		assert.Equal(t, ErrBrokerUnavailable, gateway.DeleteQueue(context.Background(), "any-queue"))
	})
}

func TestUserManagement(t *testing.T) {
	t.Run("CreateUser", func(t *testing.T) {
		t.Parallel()
		var receivedBody string
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/users/guardtest", r.URL.EscapedPath())
			assert.Equal(t, contentTypeJSON, r.Header.Get(headerContentType))
			buf := make([]byte, r.ContentLength)
			r.Body.Read(buf)
			receivedBody = string(buf)
			w.WriteHeader(http.StatusCreated)
		}))
		assert.Nil(t, gateway.CreateUser(context.Background(), "guardtest", "secret"))
		assert.Contains(t, receivedBody, `"password":"secret"`)
		assert.Contains(t, receivedBody, `"tags":""`)
	})
	t.Run("CreateUserRefused", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		assert.Equal(t, ErrBrokerActionFailed, gateway.CreateUser(context.Background(), "guardtest", "secret"))
	})
	t.Run("DeleteUser", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/users/guardtest", r.URL.EscapedPath())
			w.WriteHeader(http.StatusNoContent)
		}))
		assert.Nil(t, gateway.DeleteUser(context.Background(), "guardtest"))
	})
	t.Run("DeleteUserRefused", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		assert.Equal(t, ErrBrokerActionFailed, gateway.DeleteUser(context.Background(), "guardtest"))
	})
	t.Run("SetPermission", func(t *testing.T) {
		t.Parallel()
		var receivedBody string
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/permissions/%2F/guardtest", r.URL.EscapedPath())
			buf := make([]byte, r.ContentLength)
			r.Body.Read(buf)
			receivedBody = string(buf)
			w.WriteHeader(http.StatusCreated)
		}))
		assert.Nil(t, gateway.SetPermission(context.Background(), "guardtest"))
		assert.Contains(t, receivedBody, `"configure":".*"`)
		assert.Contains(t, receivedBody, `"read":".*"`)
		assert.Contains(t, receivedBody, `"write":".*"`)
	})
	t.Run("SetPermissionRefused", func(t *testing.T) {
		t.Parallel()
		gateway, _ := getTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		assert.Equal(t, ErrBrokerActionFailed, gateway.SetPermission(context.Background(), "guardtest"))
	})
}

func TestEndpointEscaping(t *testing.T) {
	managementURL, _ := url.Parse("http://localhost:15672")
	gateway := NewManagementGateway(&testBrokerConfig{managementURL: managementURL, vhost: "/"})
	assert.Equal(t, "http://localhost:15672/api/queues/%2F/a%2Fb%20c", gateway.endpoint("queues", "/", "a/b c"))
}
