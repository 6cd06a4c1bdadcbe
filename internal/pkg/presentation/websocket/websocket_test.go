package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/gorilla/websocket"
	"github.com/matryer/is"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/water-monitoring/internal/pkg/application/events"
	"github.com/diwise/water-monitoring/pkg/types"
)

const (
	testSecret   = "supersecretsigningkey"
	testIssuer   = "water-monitoring"
	testAudience = "water-dashboard"
)

func TestSubscriberReceivesReplayThenLiveEvents(t *testing.T) {
	is := is.New(t)

	bus := events.New(100)
	bus.Push("m-01", testEvent("m-01", 1.0))
	bus.Push("m-01", testEvent("m-01", 2.0))

	server := testServer(t, bus)

	conn := dial(is, server, "/ws/m-01?token="+mintToken("m-01", false))
	defer conn.Close()

	replay := readFrame(is, conn)
	is.Equal(replay.Type, "replay")

	var replayed []types.Event
	is.NoErr(json.Unmarshal(replay.Data, &replayed))
	is.Equal(len(replayed), 2)

	newest, ok := replayed[0].Data.(map[string]any)
	is.True(ok)
	is.Equal(newest["value"], 2.0)

	bus.Push("m-01", testEvent("m-01", 3.0))

	live := readFrame(is, conn)
	is.Equal(live.Type, types.EventTypeSensorReading)
}

func TestReplayLimitCapsTheReplayFrame(t *testing.T) {
	is := is.New(t)

	bus := events.New(100)
	for i := range 5 {
		bus.Push("m-01", testEvent("m-01", float64(i)))
	}

	server := testServer(t, bus)

	conn := dial(is, server, "/ws/m-01?token="+mintToken("m-01", false)+"&replay_limit=2")
	defer conn.Close()

	replay := readFrame(is, conn)
	is.Equal(replay.Type, "replay")

	var replayed []types.Event
	is.NoErr(json.Unmarshal(replay.Data, &replayed))
	is.Equal(len(replayed), 2)
}

func TestPingElicitsPong(t *testing.T) {
	is := is.New(t)

	server := testServer(t, events.New(100))

	conn := dial(is, server, "/ws/m-01?token="+mintToken("m-01", false))
	defer conn.Close()

	readFrame(is, conn)

	is.NoErr(conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))

	pong := readFrame(is, conn)
	is.Equal(pong.Type, "pong")
}

func TestMalformedMessagesDoNotTerminateTheSession(t *testing.T) {
	is := is.New(t)

	server := testServer(t, events.New(100))

	conn := dial(is, server, "/ws/m-01?token="+mintToken("m-01", false))
	defer conn.Close()

	readFrame(is, conn)

	is.NoErr(conn.WriteMessage(websocket.TextMessage, []byte("this is not json")))

	errorFrame := readFrame(is, conn)
	is.Equal(errorFrame.Type, "error")
	is.True(errorFrame.Detail != "")

	is.NoErr(conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))

	pong := readFrame(is, conn)
	is.Equal(pong.Type, "pong")
}

func TestRejectsSubscribersWithoutAToken(t *testing.T) {
	is := is.New(t)

	server := testServer(t, events.New(100))

	conn := dial(is, server, "/ws/m-01")
	defer conn.Close()

	expectPolicyViolation(is, conn)
}

func TestRejectsSubscribersBindingAForeignScope(t *testing.T) {
	is := is.New(t)

	server := testServer(t, events.New(100))

	conn := dial(is, server, "/ws/m-02?token="+mintToken("m-01", false))
	defer conn.Close()

	expectPolicyViolation(is, conn)
}

func TestTheGlobalScopeIsReservedForSuperAdmins(t *testing.T) {
	is := is.New(t)

	server := testServer(t, events.New(100))

	conn := dial(is, server, "/ws/global?token="+mintToken("m-01", false))
	defer conn.Close()

	expectPolicyViolation(is, conn)
}

func TestSuperAdminsFollowEveryTenantOnTheGlobalScope(t *testing.T) {
	is := is.New(t)

	bus := events.New(100)
	server := testServer(t, bus)

	conn := dial(is, server, "/ws/global?token="+mintToken("ops", true))
	defer conn.Close()

	readFrame(is, conn)

	bus.Push("m-01", testEvent("m-01", 1.0))
	bus.Push("m-02", testEvent("m-02", 2.0))

	first := readFrame(is, conn)
	is.Equal(first.Type, types.EventTypeSensorReading)
	is.Equal(first.Tenant, "m-01")

	second := readFrame(is, conn)
	is.Equal(second.Tenant, "m-02")
}

func testServer(t *testing.T, bus *events.EventBus) *httptest.Server {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ctx = logging.NewContextWithLogger(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := RegisterHandlers(ctx, chi.NewRouter(), bus, Config{
		Secret:      []byte(testSecret),
		Algorithm:   "HS256",
		Issuer:      testIssuer,
		Audience:    testAudience,
		ReplayLimit: 100,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func dial(is *is.I, server *httptest.Server, path string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + path

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	is.NoErr(err)

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	return conn
}

type testFrame struct {
	Type   string          `json:"type"`
	Tenant string          `json:"tenant"`
	Data   json.RawMessage `json:"data"`
	Detail string          `json:"detail"`
}

func readFrame(is *is.I, conn *websocket.Conn) testFrame {
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, b, err := conn.ReadMessage()
	is.NoErr(err)

	var frame testFrame
	is.NoErr(json.Unmarshal(b, &frame))

	return frame
}

func expectPolicyViolation(is *is.I, conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, _, err := conn.ReadMessage()
	is.True(websocket.IsCloseError(err, websocket.ClosePolicyViolation))
}

func testEvent(tenant string, value float64) types.Event {
	return types.Event{
		Type:      types.EventTypeSensorReading,
		Tenant:    tenant,
		Timestamp: time.Now().UTC(),
		Data:      map[string]any{"value": value},
	}
}

func mintToken(municipality string, superAdmin bool) string {
	tokenAuth := jwtauth.New("HS256", []byte(testSecret), nil)

	_, token, _ := tokenAuth.Encode(map[string]any{
		"sub":             "user-01",
		"iss":             testIssuer,
		"aud":             testAudience,
		"municipality_id": municipality,
		"super_admin":     superAdmin,
	})

	return token
}
