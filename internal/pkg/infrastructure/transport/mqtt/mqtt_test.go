package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/eclipse/paho.mqtt.golang/packets"
	"github.com/matryer/is"

	"github.com/diwise/water-monitoring/internal/pkg/application/ingest"
	"github.com/diwise/water-monitoring/internal/pkg/application/sensors"
	"github.com/diwise/water-monitoring/pkg/types"
)

func TestDataMessagesAreIngested(t *testing.T) {
	is, a, rig := testSetup(t)

	body, _ := json.Marshal(map[string]any{
		"value":   3.5,
		"unit":    "bar",
		"api_key": "a-valid-key",
	})

	a.processData(context.Background(), "sensors/w-0042/data", body)

	is.Equal(1, len(rig.ingestor.ProcessCalls()))

	params := rig.ingestor.ProcessCalls()[0].Params
	is.Equal("w-0042", params.DeviceID)
	is.Equal("mqtt", params.Protocol)
	is.True(!params.EnforceKey)
	is.Equal("a-valid-key", params.Credentials.APIKey)
	is.Equal(3.5, params.Payload["value"])

	_, leaked := params.Payload["api_key"]
	is.True(!leaked)
}

func TestDataMessagesWithoutADeviceIDAreDropped(t *testing.T) {
	is, a, rig := testSetup(t)

	a.processData(context.Background(), "sensors", []byte(`{"value": 1}`))
	a.processData(context.Background(), "malformed topic", []byte(`{"value": 1}`))

	is.Equal(0, len(rig.ingestor.ProcessCalls()))
}

func TestUnparseableDataMessagesAreDropped(t *testing.T) {
	is, a, rig := testSetup(t)

	a.processData(context.Background(), "sensors/w-0042/data", []byte(`not json`))

	is.Equal(0, len(rig.ingestor.ProcessCalls()))
}

func TestIngestFailuresDoNotRetry(t *testing.T) {
	is, a, rig := testSetup(t)

	rig.ingestor.ProcessFunc = func(ctx context.Context, params ingest.Params) (ingest.Result, error) {
		return ingest.Result{}, ingest.ErrUnknownDevice
	}

	a.processData(context.Background(), "sensors/ghost/data", []byte(`{"value": 1}`))

	is.Equal(1, len(rig.ingestor.ProcessCalls()))
}

func TestStatusMessagesUpdateDeviceHealth(t *testing.T) {
	is, a, rig := testSetup(t)

	firmware := "2.1.0"
	body, _ := json.Marshal(map[string]any{
		"battery_level":   81,
		"signal_strength": -67,
		"firmware":        firmware,
		"timestamp":       time.Now().UTC().Format(time.RFC3339Nano),
	})

	a.processStatus(context.Background(), "sensors/w-0042/status", body)

	is.Equal(1, len(rig.registry.HandleStatusMessageCalls()))

	status := rig.registry.HandleStatusMessageCalls()[0].Status
	is.Equal("w-0042", status.DeviceID)
	is.Equal(81.0, *status.BatteryLevel)
	is.Equal(-67.0, *status.SignalStrength)
	is.Equal(firmware, *status.Firmware)
}

func TestStatusMessagesWithBadTimestampsStillApply(t *testing.T) {
	is, a, rig := testSetup(t)

	a.processStatus(context.Background(), "sensors/w-0042/status", []byte(`{"battery_level": 50}`))

	is.Equal(1, len(rig.registry.HandleStatusMessageCalls()))
	is.True(!rig.registry.HandleStatusMessageCalls()[0].Status.Timestamp.IsZero())
}

func TestHeartbeatsMarkTheSensorAsObserved(t *testing.T) {
	is, a, rig := testSetup(t)

	a.processHeartbeat(context.Background(), "sensors/w-0042/heartbeat", nil)

	is.Equal(1, len(rig.registry.MarkObservedCalls()))

	call := rig.registry.MarkObservedCalls()[0]
	is.Equal("sensor-01", call.SensorID)
	is.Equal((*int)(nil), call.BatteryLevel)
	is.Equal((*int)(nil), call.SignalStrength)
}

func TestHeartbeatsFromUnknownDevicesAreIgnored(t *testing.T) {
	is, a, rig := testSetup(t)

	rig.registry.GetByDeviceIDFunc = func(ctx context.Context, deviceID string) (types.Sensor, error) {
		return types.Sensor{}, sensors.ErrSensorNotFound
	}

	a.processHeartbeat(context.Background(), "sensors/ghost/heartbeat", nil)

	is.Equal(0, len(rig.registry.MarkObservedCalls()))
}

func TestCommandsAreAcknowledgedOnTheResponseTopic(t *testing.T) {
	is, a, _ := testSetup(t)

	responses := recorder{}

	body, _ := json.Marshal(map[string]any{
		"command":    "reboot",
		"request_id": "req-7",
	})

	a.processCommand(context.Background(), "system/w-0042/command", body, responses.respond)

	is.Equal(1, len(responses.published))
	is.Equal("sensors/w-0042/response", responses.published[0].topic)

	response := responses.published[0].decode(is)
	is.Equal("acknowledged", response["status"])
	is.Equal("reboot", response["command"])
	is.Equal("req-7", response["request_id"])
	is.Equal("w-0042", response["device_id"])
}

func TestMalformedCommandsGetAnErrorResponse(t *testing.T) {
	is, a, _ := testSetup(t)

	responses := recorder{}

	a.processCommand(context.Background(), "system/w-0042/command", []byte(`{"nope": true}`), responses.respond)

	is.Equal(1, len(responses.published))

	response := responses.published[0].decode(is)
	is.Equal("error", response["status"])
	is.Equal("malformed command", response["detail"])
}

func TestCommandsForUnknownDevicesGetAnErrorResponse(t *testing.T) {
	is, a, rig := testSetup(t)

	rig.registry.GetByDeviceIDFunc = func(ctx context.Context, deviceID string) (types.Sensor, error) {
		return types.Sensor{}, sensors.ErrSensorNotFound
	}

	responses := recorder{}

	a.processCommand(context.Background(), "system/ghost/command", []byte(`{"command": "reboot"}`), responses.respond)

	is.Equal(1, len(responses.published))

	response := responses.published[0].decode(is)
	is.Equal("error", response["status"])
	is.Equal("unknown device", response["detail"])
}

func TestRefusedCredentialsAreNotRetried(t *testing.T) {
	is := is.New(t)

	is.True(credentialsRefused(packets.ConnErrors[packets.ErrRefusedBadUsernameOrPassword]))
	is.True(credentialsRefused(packets.ConnErrors[packets.ErrRefusedNotAuthorised]))
	is.True(!credentialsRefused(errors.New("network error")))
	is.True(!credentialsRefused(packets.ConnErrors[packets.ErrRefusedServerUnavailable]))
}

func TestDeviceIDComesFromTheSecondTopicSegment(t *testing.T) {
	is := is.New(t)

	is.Equal("w-0042", deviceIDFromTopic("sensors/w-0042/data"))
	is.Equal("gw-1", deviceIDFromTopic("system/gw-1/command"))
	is.Equal("", deviceIDFromTopic("sensors"))
	is.Equal("", deviceIDFromTopic("sensors/w-0042"))
}

type published struct {
	topic   string
	payload []byte
}

func (p published) decode(is *is.I) map[string]any {
	response := map[string]any{}
	is.NoErr(json.Unmarshal(p.payload, &response))
	return response
}

type recorder struct {
	published []published
}

func (r *recorder) respond(topic string, payload []byte) error {
	r.published = append(r.published, published{topic: topic, payload: payload})
	return nil
}

type testRig struct {
	ingestor *ingest.IngestorMock
	registry *sensors.SensorRegistryMock
}

func testSetup(t *testing.T) (*is.I, *adapter, *testRig) {
	t.Helper()

	rig := &testRig{
		ingestor: &ingest.IngestorMock{
			ProcessFunc: func(ctx context.Context, params ingest.Params) (ingest.Result, error) {
				return ingest.Result{ReadingID: "reading-01", SensorID: "sensor-01"}, nil
			},
		},
		registry: &sensors.SensorRegistryMock{
			GetByDeviceIDFunc: func(ctx context.Context, deviceID string) (types.Sensor, error) {
				return types.Sensor{ID: "sensor-01", DeviceID: deviceID, Tenant: "default"}, nil
			},
			MarkObservedFunc: func(ctx context.Context, sensorID string, observedAt time.Time, batteryLevel, signalStrength *int) error {
				return nil
			},
			HandleStatusMessageFunc: func(ctx context.Context, status types.StatusMessage) error {
				return nil
			},
		},
	}

	adp, err := New(context.Background(), Config{host: "broker.local", port: "1883"}, rig.ingestor, rig.registry)
	is := is.New(t)
	is.NoErr(err)

	return is, adp.(*adapter), rig
}
