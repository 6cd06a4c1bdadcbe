package sensors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/google/uuid"
)

var ErrSensorNotFound = fmt.Errorf("sensor not found")
var ErrSensorAlreadyExist = fmt.Errorf("sensor already exists")

//go:generate moq -rm -out sensorregistry_mock.go . SensorRegistry
type SensorRegistry interface {
	GetByDeviceID(ctx context.Context, deviceID string) (types.Sensor, error)
	GetByID(ctx context.Context, sensorID string, tenants []string) (types.Sensor, error)

	Create(ctx context.Context, sensor types.Sensor) (types.Sensor, error)
	Update(ctx context.Context, sensor types.Sensor, tenants []string) error
	Delete(ctx context.Context, sensorID string, tenants []string) error

	SetStatus(ctx context.Context, sensorID, status string, tenants []string) error
	MarkObserved(ctx context.Context, sensorID string, observedAt time.Time, batteryLevel, signalStrength *int) error

	Query(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.Sensor], error)
	GetSilent(ctx context.Context, since time.Time) ([]types.Sensor, error)
	GetTenants(ctx context.Context) ([]string, error)

	HandleStatusMessage(ctx context.Context, status types.StatusMessage) error
	RegisterTopicMessageHandler(ctx context.Context) error
}

//go:generate moq -rm -out sensorstorage_mock.go . SensorStorage
type SensorStorage interface {
	AddSensor(ctx context.Context, sensor types.Sensor) error
	UpdateSensor(ctx context.Context, sensor types.Sensor) error
	GetSensor(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error)
	QuerySensors(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Sensor], error)
	UpdateSensorStatus(ctx context.Context, sensorID, status string) error
	SetSensorObserved(ctx context.Context, sensorID string, observedAt time.Time, batteryLevel, signalStrength *int) error
	DeleteSensor(ctx context.Context, sensorID string) error
	DeleteCredential(ctx context.Context, sensorID string) error
	GetSilentSensors(ctx context.Context, since time.Time) ([]types.Sensor, error)
	GetTenants(ctx context.Context) ([]string, error)
}

type service struct {
	storage   SensorStorage
	messenger messaging.MsgContext
}

func New(storage SensorStorage, messenger messaging.MsgContext) SensorRegistry {
	return service{
		storage:   storage,
		messenger: messenger,
	}
}

func (s service) RegisterTopicMessageHandler(ctx context.Context) error {
	return s.messenger.RegisterTopicMessageHandler("sensor-status", NewSensorStatusHandler(s))
}

func (s service) GetByDeviceID(ctx context.Context, deviceID string) (types.Sensor, error) {
	sensor, err := s.storage.GetSensor(ctx, storage.WithDeviceID(deviceID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Sensor{}, ErrSensorNotFound
		}
		return types.Sensor{}, err
	}

	return sensor, nil
}

func (s service) GetByID(ctx context.Context, sensorID string, tenants []string) (types.Sensor, error) {
	sensor, err := s.storage.GetSensor(ctx, storage.WithSensorID(sensorID), storage.WithTenants(tenants))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Sensor{}, ErrSensorNotFound
		}
		return types.Sensor{}, err
	}

	return sensor, nil
}

func (s service) Create(ctx context.Context, sensor types.Sensor) (types.Sensor, error) {
	if sensor.DeviceID == "" {
		return types.Sensor{}, fmt.Errorf("device id is required")
	}
	if sensor.Tenant == "" {
		return types.Sensor{}, storage.ErrMissingTenant
	}
	if sensor.Kind.Code == "" {
		return types.Sensor{}, fmt.Errorf("sensor kind is required")
	}

	if sensor.ID == "" {
		sensor.ID = uuid.NewString()
	}
	if sensor.Status == "" {
		sensor.Status = types.SensorStatusActive
	}
	if sensor.Kind.Name == "" {
		sensor.Kind.Name = sensor.Kind.Code
	}

	err := s.storage.AddSensor(ctx, sensor)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExist) {
			return types.Sensor{}, ErrSensorAlreadyExist
		}
		return types.Sensor{}, err
	}

	err = s.messenger.PublishOnTopic(ctx, &types.SensorCreated{
		SensorID:  sensor.ID,
		DeviceID:  sensor.DeviceID,
		Tenant:    sensor.Tenant,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return types.Sensor{}, err
	}

	return sensor, nil
}

func (s service) Update(ctx context.Context, sensor types.Sensor, tenants []string) error {
	existing, err := s.GetByID(ctx, sensor.ID, tenants)
	if err != nil {
		return err
	}

	// the owning tenant never changes through an update
	sensor.Tenant = existing.Tenant
	if sensor.DeviceID == "" {
		sensor.DeviceID = existing.DeviceID
	}

	err = s.storage.UpdateSensor(ctx, sensor)
	if err != nil {
		return err
	}

	return s.messenger.PublishOnTopic(ctx, &types.SensorUpdated{
		SensorID:  sensor.ID,
		DeviceID:  sensor.DeviceID,
		Tenant:    sensor.Tenant,
		Timestamp: time.Now().UTC(),
	})
}

// Delete removes the sensor and its credentials. Readings and alerts are
// kept for history.
func (s service) Delete(ctx context.Context, sensorID string, tenants []string) error {
	_, err := s.GetByID(ctx, sensorID, tenants)
	if err != nil {
		return err
	}

	err = s.storage.DeleteSensor(ctx, sensorID)
	if err != nil {
		return err
	}

	return s.storage.DeleteCredential(ctx, sensorID)
}

func (s service) SetStatus(ctx context.Context, sensorID, status string, tenants []string) error {
	sensor, err := s.GetByID(ctx, sensorID, tenants)
	if err != nil {
		return err
	}

	err = s.storage.UpdateSensorStatus(ctx, sensorID, status)
	if err != nil {
		return err
	}

	return s.messenger.PublishOnTopic(ctx, &types.SensorStatusUpdated{
		SensorID:  sensor.ID,
		DeviceID:  sensor.DeviceID,
		Status:    status,
		Tenant:    sensor.Tenant,
		Timestamp: time.Now().UTC(),
	})
}

func (s service) MarkObserved(ctx context.Context, sensorID string, observedAt time.Time, batteryLevel, signalStrength *int) error {
	return s.storage.SetSensorObserved(ctx, sensorID, observedAt, batteryLevel, signalStrength)
}

func (s service) Query(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.Sensor], error) {
	conditions := storage.ParseConditions(ctx, params)
	conditions = append(conditions, storage.WithTenants(tenants))

	return s.storage.QuerySensors(ctx, conditions...)
}

func (s service) GetSilent(ctx context.Context, since time.Time) ([]types.Sensor, error) {
	return s.storage.GetSilentSensors(ctx, since)
}

func (s service) GetTenants(ctx context.Context) ([]string, error) {
	return s.storage.GetTenants(ctx)
}

func (s service) HandleStatusMessage(ctx context.Context, status types.StatusMessage) error {
	sensor, err := s.GetByDeviceID(ctx, status.DeviceID)
	if err != nil {
		return err
	}

	observedAt := status.Timestamp
	if observedAt.IsZero() {
		observedAt = time.Now().UTC()
	}

	var battery, signal *int

	if status.BatteryLevel != nil {
		b := int(*status.BatteryLevel)
		battery = &b
	}
	if status.SignalStrength != nil {
		v := int(*status.SignalStrength)
		signal = &v
	}

	err = s.storage.SetSensorObserved(ctx, sensor.ID, observedAt, battery, signal)
	if err != nil {
		return err
	}

	if status.Firmware != nil && *status.Firmware != sensor.Firmware {
		sensor.Firmware = *status.Firmware
		err = s.storage.UpdateSensor(ctx, sensor)
		if err != nil {
			return err
		}
	}

	return nil
}
