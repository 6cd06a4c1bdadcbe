package watchdog

import (
	"context"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/water-monitoring/internal/pkg/application/alerts"
	"github.com/diwise/water-monitoring/internal/pkg/application/events"
	"github.com/diwise/water-monitoring/internal/pkg/application/sensors"
	"github.com/diwise/water-monitoring/pkg/types"
)

const DefaultCheckInterval = 10 * time.Minute

// sensors are never flagged sooner than this, however short their
// reporting interval
const silenceFloor = 15 * time.Minute

type Watchdog interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
}

type watchdogImpl struct {
	interval  time.Duration
	registry  sensors.SensorRegistry
	alerts    alerts.AlertService
	bus       *events.EventBus
	messenger messaging.MsgContext

	done chan struct{}
}

func New(registry sensors.SensorRegistry, alertSvc alerts.AlertService, bus *events.EventBus, messenger messaging.MsgContext, interval time.Duration) Watchdog {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}

	return &watchdogImpl{
		interval:  interval,
		registry:  registry,
		alerts:    alertSvc,
		bus:       bus,
		messenger: messenger,
		done:      make(chan struct{}),
	}
}

func (w *watchdogImpl) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *watchdogImpl) Stop(ctx context.Context) {
	close(w.done)
}

func (w *watchdogImpl) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.CheckSilentSensors(ctx)
		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// CheckSilentSensors raises a communication loss alert for every active
// sensor that has been quiet for more than twice its reporting interval.
func (w *watchdogImpl) CheckSilentSensors(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	now := time.Now().UTC()

	silent, err := w.registry.GetSilent(ctx, now.Add(-silenceFloor))
	if err != nil {
		log.Error("could not fetch silent sensors", "err", err.Error())
		return
	}

	for _, sensor := range silent {
		if !sensor.LastReadingAt.IsZero() && now.Sub(sensor.LastReadingAt) <= silenceThreshold(sensor) {
			continue
		}

		err = w.messenger.PublishOnTopic(ctx, &SensorNotObserved{
			SensorID:   sensor.ID,
			DeviceID:   sensor.DeviceID,
			Tenant:     sensor.Tenant,
			ObservedAt: sensor.LastReadingAt,
		})
		if err != nil {
			log.Error("could not publish message", "device_id", sensor.DeviceID, "err", err.Error())
		}

		alert := w.alerts.FromSilence(ctx, sensor, sensor.LastReadingAt)
		if alert == nil {
			continue
		}

		err = w.alerts.Add(ctx, *alert)
		if err != nil {
			log.Error("could not store alert", "device_id", sensor.DeviceID, "err", err.Error())
			continue
		}

		err = w.alerts.PublishCreated(ctx, *alert)
		if err != nil {
			log.Warn("could not publish alert", "alert_id", alert.ID, "err", err.Error())
		}

		w.bus.Push(sensor.Tenant, types.Event{
			Type:      types.EventTypeAlert,
			Tenant:    sensor.Tenant,
			Timestamp: alert.ObservedAt,
			Data:      *alert,
		})

		log.Info("sensor has gone silent", "device_id", sensor.DeviceID, "last_reading", sensor.LastReadingAt.Format(time.RFC3339))
	}
}

func silenceThreshold(sensor types.Sensor) time.Duration {
	threshold := time.Duration(sensor.IntervalSeconds) * 2 * time.Second
	if threshold < silenceFloor {
		threshold = silenceFloor
	}
	return threshold
}
