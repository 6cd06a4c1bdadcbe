package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/water-monitoring/pkg/types"
	"golang.org/x/sys/unix"
	yaml "gopkg.in/yaml.v2"
)

const alertNotificationType = "water.alert"

// EventSender forwards committed alerts to external subscribers as
// CloudEvents. Delivery is fire and forget from the core's point of view;
// a subscriber that cannot be reached does not affect ingestion.
type EventSender interface {
	Send(ctx context.Context, alert types.Alert) error
}

type eventSender struct {
	subscribers map[string][]SubscriberConfig
}

func New(cfg *Config) EventSender {
	e := &eventSender{
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, s := range cfg.Notifications {
			e.subscribers[s.Type] = s.Subscribers
		}
	}

	return e
}

func (e *eventSender) Send(ctx context.Context, alert types.Alert) error {
	if s, ok := e.subscribers[alertNotificationType]; !ok || len(s) == 0 {
		return nil
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return err
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%d", alert.ID, alert.ObservedAt.Unix()))
	event.SetTime(alert.ObservedAt)

	eventData := struct {
		ID         string  `json:"id"`
		Tenant     string  `json:"tenant"`
		SensorID   string  `json:"sensorID,omitempty"`
		DeviceID   string  `json:"deviceID,omitempty"`
		Kind       string  `json:"kind"`
		Severity   string  `json:"severity"`
		Title      string  `json:"title"`
		Value      float64 `json:"value,omitempty"`
		ObservedAt string  `json:"observedAt"`
	}{
		ID:         alert.ID,
		Tenant:     alert.Tenant,
		SensorID:   alert.SensorID,
		DeviceID:   alert.DeviceID,
		Kind:       alert.Kind,
		Severity:   alert.Severity,
		Title:      alert.Title,
		ObservedAt: alert.ObservedAt.Format(time.RFC3339),
	}
	if alert.Value != nil {
		eventData.Value = *alert.Value
	}

	event.SetSource("github.com/diwise/water-monitoring")
	event.SetType(alertNotificationType)
	err = event.SetData(cloudevents.ApplicationJSON, eventData)
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	for _, s := range e.subscribers[alertNotificationType] {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := c.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error("failed to send event", "endpoint", s.Endpoint, "err", result.Error())
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}

type SubscriberConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err == nil {
		return &cfg, nil
	} else {
		return nil, err
	}
}
