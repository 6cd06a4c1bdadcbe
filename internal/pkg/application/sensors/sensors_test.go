package sensors

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/matryer/is"
)

func TestCreateFillsDefaults(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	var stored types.Sensor

	s := &SensorStorageMock{
		AddSensorFunc: func(ctx context.Context, sensor types.Sensor) error {
			stored = sensor
			return nil
		},
	}
	m := testMessenger()

	svc := New(s, m)

	created, err := svc.Create(ctx, types.Sensor{
		DeviceID: "w-0042",
		Tenant:   "default",
		Kind:     types.SensorKind{Code: "pressure"},
	})
	is.NoErr(err)

	is.True(created.ID != "")
	is.Equal(created.ID, stored.ID)
	is.Equal(types.SensorStatusActive, stored.Status)
	is.Equal("pressure", stored.Kind.Name)

	is.Equal(1, len(m.PublishOnTopicCalls()))
	is.Equal("sensor.created", m.PublishOnTopicCalls()[0].Message.TopicName())
}

func TestCreateRequiresDeviceIDTenantAndKind(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	s := &SensorStorageMock{}
	m := &messaging.MsgContextMock{}

	svc := New(s, m)

	_, err := svc.Create(ctx, types.Sensor{Tenant: "default", Kind: types.SensorKind{Code: "flow"}})
	is.True(err != nil)

	_, err = svc.Create(ctx, types.Sensor{DeviceID: "w-0042", Kind: types.SensorKind{Code: "flow"}})
	is.True(errors.Is(err, storage.ErrMissingTenant))

	_, err = svc.Create(ctx, types.Sensor{DeviceID: "w-0042", Tenant: "default"})
	is.True(err != nil)

	is.Equal(0, len(s.AddSensorCalls()))
}

func TestCreateRejectsDuplicateDeviceIDs(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	s := &SensorStorageMock{
		AddSensorFunc: func(ctx context.Context, sensor types.Sensor) error {
			return storage.ErrAlreadyExist
		},
	}
	m := &messaging.MsgContextMock{}

	svc := New(s, m)

	_, err := svc.Create(ctx, testSensor())
	is.True(errors.Is(err, ErrSensorAlreadyExist))
	is.Equal(0, len(m.PublishOnTopicCalls()))
}

func TestGetByDeviceIDTranslatesNotFound(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return types.Sensor{}, storage.ErrNoRows
		},
	}

	svc := New(s, &messaging.MsgContextMock{})

	_, err := svc.GetByDeviceID(ctx, "w-9999")
	is.True(errors.Is(err, ErrSensorNotFound))
}

func TestUpdateKeepsTheOwningTenant(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	existing := testSensor()
	existing.ID = "sensor-01"

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return existing, nil
		},
		UpdateSensorFunc: func(ctx context.Context, sensor types.Sensor) error {
			return nil
		},
	}
	m := testMessenger()

	svc := New(s, m)

	err := svc.Update(ctx, types.Sensor{
		ID:     "sensor-01",
		Name:   "Reservoir north",
		Tenant: "someone-else",
	}, []string{"default"})
	is.NoErr(err)

	is.Equal(1, len(s.UpdateSensorCalls()))
	is.Equal("default", s.UpdateSensorCalls()[0].Sensor.Tenant)
	is.Equal("w-0042", s.UpdateSensorCalls()[0].Sensor.DeviceID)

	is.Equal(1, len(m.PublishOnTopicCalls()))
	is.Equal("sensor.updated", m.PublishOnTopicCalls()[0].Message.TopicName())
}

func TestUpdateRequiresTenantAccess(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return types.Sensor{}, storage.ErrNoRows
		},
	}

	svc := New(s, &messaging.MsgContextMock{})

	err := svc.Update(ctx, types.Sensor{ID: "sensor-01"}, []string{"other"})
	is.True(errors.Is(err, ErrSensorNotFound))
	is.Equal(0, len(s.UpdateSensorCalls()))
}

func TestDeleteRemovesCredentialsToo(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	existing := testSensor()
	existing.ID = "sensor-01"

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return existing, nil
		},
		DeleteSensorFunc: func(ctx context.Context, sensorID string) error {
			return nil
		},
		DeleteCredentialFunc: func(ctx context.Context, sensorID string) error {
			return nil
		},
	}

	svc := New(s, &messaging.MsgContextMock{})

	err := svc.Delete(ctx, "sensor-01", []string{"default"})
	is.NoErr(err)

	is.Equal(1, len(s.DeleteSensorCalls()))
	is.Equal("sensor-01", s.DeleteSensorCalls()[0].SensorID)
	is.Equal(1, len(s.DeleteCredentialCalls()))
	is.Equal("sensor-01", s.DeleteCredentialCalls()[0].SensorID)
}

func TestSetStatusPublishesTheChange(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	existing := testSensor()
	existing.ID = "sensor-01"

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return existing, nil
		},
		UpdateSensorStatusFunc: func(ctx context.Context, sensorID, status string) error {
			return nil
		},
	}
	m := testMessenger()

	svc := New(s, m)

	err := svc.SetStatus(ctx, "sensor-01", types.SensorStatusMaintenance, []string{"default"})
	is.NoErr(err)

	is.Equal(1, len(s.UpdateSensorStatusCalls()))
	is.Equal(types.SensorStatusMaintenance, s.UpdateSensorStatusCalls()[0].Status)

	is.Equal(1, len(m.PublishOnTopicCalls()))
	msg, ok := m.PublishOnTopicCalls()[0].Message.(*types.SensorStatusUpdated)
	is.True(ok)
	is.Equal("sensor.statusUpdated", msg.TopicName())
	is.Equal(types.SensorStatusMaintenance, msg.Status)
	is.Equal("w-0042", msg.DeviceID)
}

func TestHandleStatusMessageMarksTheSensorObserved(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	existing := testSensor()
	existing.ID = "sensor-01"

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return existing, nil
		},
		SetSensorObservedFunc: func(ctx context.Context, sensorID string, observedAt time.Time, batteryLevel, signalStrength *int) error {
			return nil
		},
	}

	svc := New(s, &messaging.MsgContextMock{})

	battery := 87.4
	signal := -72.0
	observedAt := time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)

	err := svc.HandleStatusMessage(ctx, types.StatusMessage{
		DeviceID:       "w-0042",
		BatteryLevel:   &battery,
		SignalStrength: &signal,
		Timestamp:      observedAt,
	})
	is.NoErr(err)

	is.Equal(1, len(s.SetSensorObservedCalls()))
	call := s.SetSensorObservedCalls()[0]
	is.Equal("sensor-01", call.SensorID)
	is.Equal(observedAt, call.ObservedAt)
	is.Equal(87, *call.BatteryLevel)
	is.Equal(-72, *call.SignalStrength)
}

func TestHandleStatusMessageUpdatesChangedFirmware(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	existing := testSensor()
	existing.ID = "sensor-01"
	existing.Firmware = "v2.0"

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return existing, nil
		},
		SetSensorObservedFunc: func(ctx context.Context, sensorID string, observedAt time.Time, batteryLevel, signalStrength *int) error {
			return nil
		},
		UpdateSensorFunc: func(ctx context.Context, sensor types.Sensor) error {
			return nil
		},
	}

	svc := New(s, &messaging.MsgContextMock{})

	firmware := "v2.1"
	err := svc.HandleStatusMessage(ctx, types.StatusMessage{
		DeviceID:  "w-0042",
		Firmware:  &firmware,
		Timestamp: time.Now().UTC(),
	})
	is.NoErr(err)

	is.Equal(1, len(s.UpdateSensorCalls()))
	is.Equal("v2.1", s.UpdateSensorCalls()[0].Sensor.Firmware)

	unchanged := "v2.1"
	existing.Firmware = "v2.1"
	err = svc.HandleStatusMessage(ctx, types.StatusMessage{
		DeviceID:  "w-0042",
		Firmware:  &unchanged,
		Timestamp: time.Now().UTC(),
	})
	is.NoErr(err)

	is.Equal(1, len(s.UpdateSensorCalls()))
}

func TestSensorStatusHandler(t *testing.T) {
	is := is.New(t)
	log := slog.Default()
	ctx := context.Background()

	existing := testSensor()
	existing.ID = "sensor-01"

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return existing, nil
		},
		SetSensorObservedFunc: func(ctx context.Context, sensorID string, observedAt time.Time, batteryLevel, signalStrength *int) error {
			return nil
		},
	}

	svc := New(s, &messaging.MsgContextMock{})

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			battery := 52.0
			status := struct {
				DeviceID     string   `json:"deviceID"`
				BatteryLevel *float64 `json:"batteryLevel,omitempty"`
				Tenant       string   `json:"tenant,omitempty"`
				Timestamp    string   `json:"timestamp"`
			}{
				DeviceID:     "w-0042",
				BatteryLevel: &battery,
				Tenant:       "default",
				Timestamp:    time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC).Format(time.RFC3339Nano),
			}
			b, _ := json.Marshal(status)
			return b
		},
	}

	handler := NewSensorStatusHandler(svc)
	handler(ctx, msg, log)

	is.Equal(1, len(s.SetSensorObservedCalls()))
	is.Equal("sensor-01", s.SetSensorObservedCalls()[0].SensorID)
	is.Equal(52, *s.SetSensorObservedCalls()[0].BatteryLevel)
}

func testSensor() types.Sensor {
	return types.Sensor{
		DeviceID: "w-0042",
		Name:     "Reservoir north",
		Tenant:   "default",
		Kind: types.SensorKind{
			Code: "pressure",
			Name: "Pressure",
			Unit: "bar",
		},
		Status: types.SensorStatusActive,
	}
}

func testMessenger() *messaging.MsgContextMock {
	return &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}
}
