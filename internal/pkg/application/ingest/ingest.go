package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/water-monitoring/internal/pkg/application/alerts"
	"github.com/diwise/water-monitoring/internal/pkg/application/anomaly"
	"github.com/diwise/water-monitoring/internal/pkg/application/audit"
	"github.com/diwise/water-monitoring/internal/pkg/application/credentials"
	"github.com/diwise/water-monitoring/internal/pkg/application/events"
	"github.com/diwise/water-monitoring/internal/pkg/application/protocols"
	"github.com/diwise/water-monitoring/internal/pkg/application/rules"
	"github.com/diwise/water-monitoring/internal/pkg/application/sensors"
	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/google/uuid"
)

var ErrUnknownDevice = fmt.Errorf("unknown device")
var ErrProtocolDisabled = fmt.Errorf("protocol is disabled")
var ErrMissingCredential = fmt.Errorf("missing credential")
var ErrInvalidCredential = fmt.Errorf("invalid credential")
var ErrExpiredCredential = fmt.Errorf("expired credential")
var ErrMalformedPayload = fmt.Errorf("malformed payload")

// readings this far ahead of the server clock are rejected
const maxClockSkew = 5 * time.Minute

// Params is the canonical input every transport funnels into.
type Params struct {
	DeviceID    string
	Protocol    string
	Payload     map[string]any
	Credentials credentials.Presented
	Source      Source
	EnforceKey  bool
}

// Source describes where a reading physically came from, for the audit
// trail.
type Source struct {
	Addr      string
	Channel   string
	UserAgent string
}

type Result struct {
	ReadingID    string   `json:"reading_id"`
	SensorID     string   `json:"sensor_id"`
	IsAnomaly    bool     `json:"is_anomaly"`
	AnomalyScore float64  `json:"anomaly_score"`
	AlertIDs     []string `json:"alert_ids"`
}

//go:generate moq -rm -out ingestor_mock.go . Ingestor
type Ingestor interface {
	Process(ctx context.Context, params Params) (Result, error)
	QueryReadings(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.SensorReading], error)
}

//go:generate moq -rm -out readingstorage_mock.go . ReadingStorage
type ReadingStorage interface {
	AddReading(ctx context.Context, reading types.SensorReading) error
	SetReadingAnomaly(ctx context.Context, readingID string, isAnomaly bool, score float64) error
	QueryReadings(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.SensorReading], error)
}

//go:generate moq -rm -out transactionrunner_mock.go . TransactionRunner
type TransactionRunner interface {
	WithinTransaction(ctx context.Context, fn func(context.Context) error) error
}

type service struct {
	storage  ReadingStorage
	tx       TransactionRunner
	registry sensors.SensorRegistry
	policies protocols.ProtocolPolicies
	creds    credentials.DeviceCredentials
	detector anomaly.Detector
	engine   rules.RuleEngine
	alerts   alerts.AlertService
	audit    audit.AuditLog
	bus      *events.EventBus
}

func New(
	s ReadingStorage,
	tx TransactionRunner,
	registry sensors.SensorRegistry,
	policies protocols.ProtocolPolicies,
	creds credentials.DeviceCredentials,
	detector anomaly.Detector,
	engine rules.RuleEngine,
	alertSvc alerts.AlertService,
	auditLog audit.AuditLog,
	bus *events.EventBus,
) Ingestor {
	return service{
		storage:  s,
		tx:       tx,
		registry: registry,
		policies: policies,
		creds:    creds,
		detector: detector,
		engine:   engine,
		alerts:   alertSvc,
		audit:    auditLog,
		bus:      bus,
	}
}

// Process runs a reading through resolution, policy, authentication,
// detection and alerting. Everything between persisting the reading and the
// credential bump happens in one transaction; the audit entry and the event
// broadcasts follow after commit and never undo an accepted reading.
func (s service) Process(ctx context.Context, params Params) (Result, error) {
	sensor, err := s.registry.GetByDeviceID(ctx, params.DeviceID)
	if err != nil {
		if errors.Is(err, sensors.ErrSensorNotFound) {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownDevice, params.DeviceID)
		}
		return Result{}, err
	}

	enabled, err := s.policies.IsEnabled(ctx, params.Protocol, sensor.Tenant)
	if err != nil {
		return Result{}, err
	}
	if !enabled {
		return Result{}, fmt.Errorf("%w: %s", ErrProtocolDisabled, params.Protocol)
	}

	_, err = s.creds.Authenticate(ctx, params.DeviceID, params.Credentials, params.EnforceKey)
	if err != nil {
		return Result{}, mapCredentialError(err)
	}

	reading, battery, signal, err := buildReading(sensor, params.Payload)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrMalformedPayload, err.Error())
	}

	var detection anomaly.Result
	var created []types.Alert

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		err := s.storage.AddReading(ctx, reading)
		if err != nil {
			return err
		}

		err = s.registry.MarkObserved(ctx, sensor.ID, reading.Timestamp, battery, signal)
		if err != nil {
			return err
		}

		detection, err = s.detector.Check(ctx, sensor, reading)
		if err != nil {
			return err
		}

		if detection.IsAnomaly {
			err = s.storage.SetReadingAnomaly(ctx, reading.ID, true, detection.Score)
			if err != nil {
				return err
			}

			reading.IsAnomaly = true
			reading.AnomalyScore = detection.Score

			if alert := s.alerts.FromAnomaly(ctx, sensor, reading, detection.Score, detection.Reasons); alert != nil {
				err = s.alerts.Add(ctx, *alert)
				if err != nil {
					return err
				}
				created = append(created, *alert)
			}
		}

		matched, err := s.engine.Evaluate(ctx, sensor, reading)
		if err != nil {
			return err
		}

		for _, rule := range matched {
			if alert := s.alerts.FromRule(ctx, sensor, reading, rule); alert != nil {
				err = s.alerts.Add(ctx, *alert)
				if err != nil {
					return err
				}
				created = append(created, *alert)
			}
		}

		return s.creds.Touch(ctx, sensor.ID, time.Now().UTC())
	})
	if err != nil {
		return Result{}, err
	}

	s.audit.Log(ctx, types.AuditEntry{
		Actor:        "device:" + params.DeviceID,
		Action:       "sensor.reading_ingested",
		ResourceType: "sensor_reading",
		ResourceID:   reading.ID,
		SourceAddr:   params.Source.Addr,
		UserAgent:    params.Source.UserAgent,
		Meta: map[string]any{
			"protocol":    params.Protocol,
			"channel":     params.Source.Channel,
			"value":       reading.Value,
			"is_anomaly":  reading.IsAnomaly,
			"alert_count": len(created),
		},
		ObservedAt: reading.Timestamp,
	})

	s.broadcast(ctx, sensor.Tenant, reading, created)

	result := Result{
		ReadingID:    reading.ID,
		SensorID:     sensor.ID,
		IsAnomaly:    reading.IsAnomaly,
		AnomalyScore: reading.AnomalyScore,
		AlertIDs:     make([]string, 0, len(created)),
	}

	for _, alert := range created {
		result.AlertIDs = append(result.AlertIDs, alert.ID)
	}

	return result, nil
}

// broadcast pushes the reading and any alerts onto the in process bus and
// the message broker. Failures are logged and swallowed; subscribers are a
// best effort audience.
func (s service) broadcast(ctx context.Context, tenant string, reading types.SensorReading, created []types.Alert) {
	log := logging.GetFromContext(ctx)

	s.bus.Push(tenant, types.Event{
		Type:      types.EventTypeSensorReading,
		Tenant:    tenant,
		Timestamp: reading.Timestamp,
		Data:      reading,
	})

	for _, alert := range created {
		s.bus.Push(tenant, types.Event{
			Type:      types.EventTypeAlert,
			Tenant:    tenant,
			Timestamp: alert.ObservedAt,
			Data:      alert,
		})

		err := s.alerts.PublishCreated(ctx, alert)
		if err != nil {
			log.Warn("could not publish alert", "alert_id", alert.ID, "err", err.Error())
		}
	}
}

func (s service) QueryReadings(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.SensorReading], error) {
	conditions := storage.ParseConditions(ctx, params)
	conditions = append(conditions, storage.WithTenants(tenants))

	return s.storage.QueryReadings(ctx, conditions...)
}

func mapCredentialError(err error) error {
	switch {
	case errors.Is(err, credentials.ErrMissingAPIKey):
		return fmt.Errorf("%w: %s", ErrMissingCredential, err.Error())
	case errors.Is(err, credentials.ErrExpired):
		return fmt.Errorf("%w: %s", ErrExpiredCredential, err.Error())
	case errors.Is(err, credentials.ErrNotFound), errors.Is(err, credentials.ErrInactive), errors.Is(err, credentials.ErrInvalid), errors.Is(err, credentials.ErrMissingKind):
		return fmt.Errorf("%w: %s", ErrInvalidCredential, err.Error())
	}

	return err
}

// canonical payload keys every transport agrees on
var knownKeys = map[string]struct{}{
	"timestamp":       {},
	"value":           {},
	"unit":            {},
	"quality":         {},
	"quality_score":   {},
	"battery_level":   {},
	"signal_strength": {},
	"raw_data":        {},
}

func buildReading(sensor types.Sensor, payload map[string]any) (types.SensorReading, *int, *int, error) {
	if payload == nil {
		return types.SensorReading{}, nil, nil, fmt.Errorf("empty payload")
	}

	rawValue, ok := payload["value"]
	if !ok {
		return types.SensorReading{}, nil, nil, fmt.Errorf("payload contains no value")
	}

	value, err := coerceFloat(rawValue)
	if err != nil {
		return types.SensorReading{}, nil, nil, fmt.Errorf("value is not numeric: %w", err)
	}

	timestamp := time.Now().UTC()
	if ts, ok := payload["timestamp"]; ok {
		str, ok := ts.(string)
		if !ok {
			return types.SensorReading{}, nil, nil, fmt.Errorf("timestamp is not a string")
		}

		timestamp, err = parseTimestamp(str)
		if err != nil {
			return types.SensorReading{}, nil, nil, err
		}
	}

	if timestamp.After(time.Now().Add(maxClockSkew)) {
		return types.SensorReading{}, nil, nil, fmt.Errorf("timestamp %s is in the future", timestamp.Format(time.RFC3339))
	}

	unit := sensor.Kind.Unit
	if u, ok := payload["unit"].(string); ok && u != "" {
		unit = u
	}

	quality := 1.0
	if q, ok := payload["quality"]; ok {
		if quality, err = coerceFloat(q); err != nil {
			return types.SensorReading{}, nil, nil, fmt.Errorf("quality is not numeric: %w", err)
		}
	} else if q, ok := payload["quality_score"]; ok {
		if quality, err = coerceFloat(q); err != nil {
			return types.SensorReading{}, nil, nil, fmt.Errorf("quality is not numeric: %w", err)
		}
	}
	quality = min(max(quality, 0), 1)

	var battery, signal *int

	if b, ok := payload["battery_level"]; ok {
		if f, err := coerceFloat(b); err == nil {
			n := int(f)
			battery = &n
		}
	}
	if v, ok := payload["signal_strength"]; ok {
		if f, err := coerceFloat(v); err == nil {
			n := int(f)
			signal = &n
		}
	}

	raw := map[string]any{}
	if rd, ok := payload["raw_data"].(map[string]any); ok {
		for k, v := range rd {
			raw[k] = v
		}
	}
	for k, v := range payload {
		if _, known := knownKeys[k]; known {
			continue
		}
		if _, exists := raw[k]; !exists {
			raw[k] = v
		}
	}
	if len(raw) == 0 {
		raw = nil
	}

	return types.SensorReading{
		ID:        uuid.NewString(),
		SensorID:  sensor.ID,
		DeviceID:  sensor.DeviceID,
		Tenant:    sensor.Tenant,
		Timestamp: timestamp,
		Value:     value,
		Unit:      unit,
		Raw:       raw,
		Quality:   quality,
	}, battery, signal, nil
}

func coerceFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%q", n)
		}
		return f, nil
	}

	return 0, fmt.Errorf("%T", v)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse timestamp %q", s)
}
