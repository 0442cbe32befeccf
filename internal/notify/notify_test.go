package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flowtasks/internal/notify"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifySuccess(message string) { m.Called(message) }
func (m *MockNotifier) NotifyFailure(message string) { m.Called(message) }

func TestMulti(t *testing.T) {
	a, b := new(MockNotifier), new(MockNotifier)
	a.On("NotifySuccess", "saved").Return()
	b.On("NotifySuccess", "saved").Return()
	a.On("NotifyFailure", "oops").Return()
	b.On("NotifyFailure", "oops").Return()

	m := notify.Multi{a, b, notify.Nop{}, notify.LogNotifier{}}
	m.NotifySuccess("saved")
	m.NotifyFailure("oops")

	a.AssertExpectations(t)
	b.AssertExpectations(t)
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHub_BroadcastsToClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := notify.NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	first := dial(t, srv)
	defer first.Close()
	second := dial(t, srv)
	defer second.Close()

	assert.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	hub.NotifySuccess("Task created successfully!")

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg notify.Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, notify.KindSuccess, msg.Type)
		assert.Equal(t, "Task created successfully!", msg.Message)
	}
}

func TestHub_ClientDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := notify.NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	conn := dial(t, srv)
	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_PublishWithoutRunnerDoesNotBlock(t *testing.T) {
	hub := notify.NewHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.NotifyFailure("dropped eventually")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked")
	}
}
