package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeaudit/internal/model"
)

func receive(t *testing.T, ch <-chan []byte) Message {
	t.Helper()
	select {
	case data, ok := <-ch:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestHub_NotifyStoreOnlyReachesThatStore(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	a := &Connection{StoreID: "store-a", UserID: "u1", Send: make(chan []byte, 4)}
	b := &Connection{StoreID: "store-b", UserID: "u2", Send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)

	hub.NotifyStore("store-a", string(MsgInspectionCreated), map[string]interface{}{"finalScore": 87.5})

	msg := receive(t, a.Send)
	assert.Equal(t, MsgInspectionCreated, msg.Type)
	assert.Equal(t, "store-a", msg.StoreID)
	assert.JSONEq(t, `{"finalScore":87.5}`, string(msg.Payload))

	select {
	case <-b.Send:
		t.Fatal("store-b should not be notified")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	c := &Connection{StoreID: "s1", UserID: "u1", Send: make(chan []byte, 1)}
	hub.Register(c)
	assert.Eventually(t, func() bool { return hub.Subscribers("s1") == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(c)
	assert.Eventually(t, func() bool { return hub.Subscribers("s1") == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-c.Send
	assert.False(t, ok)
}

func TestHub_UnencodablePayloadIsDropped(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	c := &Connection{StoreID: "s1", Send: make(chan []byte, 1)}
	hub.Register(c)

	hub.NotifyStore("s1", "bad", make(chan int))
	hub.NotifyStore("s1", "good", "ok")

	msg := receive(t, c.Send)
	assert.Equal(t, MessageType("good"), msg.Type)
}

type fakeValidator struct {
	claims map[string]*model.Claims
}

func (f *fakeValidator) ValidateToken(token string) (*model.Claims, error) {
	if c, ok := f.claims[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid")
}

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	v := &fakeValidator{claims: map[string]*model.Claims{
		"manager-a": {UserID: "m1", Role: model.RoleManager, StoreIDs: []string{"store-a"}},
		"admin":     {UserID: "a1", Role: model.RoleAdmin},
	}}
	r := mux.NewRouter()
	r.HandleFunc("/v1/ws/stores/{storeId}", NewHandler(hub, v).StoreWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestStoreWS_RejectsBadTokens(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := newTestServer(t, hub)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"missing token", "/v1/ws/stores/store-a", http.StatusUnauthorized},
		{"invalid token", "/v1/ws/stores/store-a?token=nope", http.StatusUnauthorized},
		{"other store", "/v1/ws/stores/store-b?token=manager-a", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, tt.path), nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestStoreWS_DeliversNotifications(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := newTestServer(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/v1/ws/stores/store-a?token=manager-a"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("store-a") == 1 }, time.Second, 5*time.Millisecond)
	hub.NotifyStore("store-a", string(MsgInspectionCreated), map[string]string{"inspectionId": "i1"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MsgInspectionCreated, msg.Type)
	assert.JSONEq(t, `{"inspectionId":"i1"}`, string(msg.Payload))
}
