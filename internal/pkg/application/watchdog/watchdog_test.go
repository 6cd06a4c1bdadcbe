package watchdog

import (
	"context"
	"testing"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/water-monitoring/internal/pkg/application/alerts"
	"github.com/diwise/water-monitoring/internal/pkg/application/events"
	"github.com/diwise/water-monitoring/internal/pkg/application/sensors"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/matryer/is"
)

func TestSilentSensorRaisesAnAlert(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	silent := testSensor("sensor-01", 900, time.Now().UTC().Add(-2*time.Hour))

	registry, alertSvc, m, bus := testSetup([]types.Sensor{silent})
	w := New(registry, alertSvc, bus, m, 0).(*watchdogImpl)

	w.CheckSilentSensors(ctx)

	is.Equal(1, len(m.PublishOnTopicCalls()))
	msg, ok := m.PublishOnTopicCalls()[0].Message.(*SensorNotObserved)
	is.True(ok)
	is.Equal("watchdog.sensorNotObserved", msg.TopicName())
	is.Equal("sensor-01", msg.SensorID)
	is.Equal(silent.LastReadingAt, msg.ObservedAt)

	is.Equal(1, len(alertSvc.FromSilenceCalls()))
	is.Equal(1, len(alertSvc.AddCalls()))
	is.Equal(1, len(alertSvc.PublishCreatedCalls()))

	recent := bus.Recent("default", 0)
	is.Equal(1, len(recent))
	is.Equal(types.EventTypeAlert, recent[0].Type)
}

func TestRecentlySeenSensorsAreLeftAlone(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	// 20 minutes quiet is within twice the one hour reporting interval
	fresh := testSensor("sensor-01", 3600, time.Now().UTC().Add(-20*time.Minute))

	registry, alertSvc, m, bus := testSetup([]types.Sensor{fresh})
	w := New(registry, alertSvc, bus, m, 0).(*watchdogImpl)

	w.CheckSilentSensors(ctx)

	is.Equal(0, len(m.PublishOnTopicCalls()))
	is.Equal(0, len(alertSvc.FromSilenceCalls()))
}

func TestSensorsThatNeverReportedAreFlagged(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	never := testSensor("sensor-01", 3600, time.Time{})

	registry, alertSvc, m, bus := testSetup([]types.Sensor{never})
	w := New(registry, alertSvc, bus, m, 0).(*watchdogImpl)

	w.CheckSilentSensors(ctx)

	is.Equal(1, len(alertSvc.FromSilenceCalls()))
	is.True(alertSvc.FromSilenceCalls()[0].LastSeen.IsZero())
}

func TestCooledDownSilenceIsNotRepeated(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	silent := testSensor("sensor-01", 900, time.Now().UTC().Add(-2*time.Hour))

	registry, alertSvc, m, bus := testSetup([]types.Sensor{silent})
	alertSvc.FromSilenceFunc = func(ctx context.Context, sensor types.Sensor, lastSeen time.Time) *types.Alert {
		return nil
	}

	w := New(registry, alertSvc, bus, m, 0).(*watchdogImpl)

	w.CheckSilentSensors(ctx)

	// the not observed message still goes out, but no alert is stored
	is.Equal(1, len(m.PublishOnTopicCalls()))
	is.Equal(0, len(alertSvc.AddCalls()))
	is.Equal(0, len(bus.Recent("default", 0)))
}

func TestStopEndsTheLoop(t *testing.T) {
	registry, alertSvc, m, bus := testSetup(nil)

	w := New(registry, alertSvc, bus, m, time.Hour)
	w.Start(context.Background())
	w.Stop(context.Background())
}

func testSensor(id string, intervalSeconds int, lastReadingAt time.Time) types.Sensor {
	return types.Sensor{
		ID:              id,
		DeviceID:        "w-0042",
		Tenant:          "default",
		Kind:            types.SensorKind{Code: "pressure", Unit: "bar"},
		IntervalSeconds: intervalSeconds,
		LastReadingAt:   lastReadingAt,
		Status:          types.SensorStatusActive,
	}
}

func testSetup(silent []types.Sensor) (*sensors.SensorRegistryMock, *alerts.AlertServiceMock, *messaging.MsgContextMock, *events.EventBus) {
	registry := &sensors.SensorRegistryMock{
		GetSilentFunc: func(ctx context.Context, since time.Time) ([]types.Sensor, error) {
			return silent, nil
		},
	}

	alertSvc := &alerts.AlertServiceMock{
		FromSilenceFunc: func(ctx context.Context, sensor types.Sensor, lastSeen time.Time) *types.Alert {
			return &types.Alert{
				ID:         "alert-01",
				SensorID:   sensor.ID,
				Tenant:     sensor.Tenant,
				Kind:       "communication_loss",
				Severity:   types.SeverityMedium,
				Status:     types.AlertStatusOpen,
				ObservedAt: time.Now().UTC(),
			}
		},
		AddFunc: func(ctx context.Context, alert types.Alert) error {
			return nil
		},
		PublishCreatedFunc: func(ctx context.Context, alert types.Alert) error {
			return nil
		},
	}

	m := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	return registry, alertSvc, m, events.New(100)
}
