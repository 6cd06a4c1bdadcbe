package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

func sensorData(sensor types.Sensor) (string, error) {
	b, err := json.Marshal(sensor)
	if err != nil {
		return "", err
	}

	var m map[string]any
	err = json.Unmarshal(b, &m)
	if err != nil {
		return "", err
	}

	delete(m, "id")
	delete(m, "deviceID")
	delete(m, "tenant")
	delete(m, "status")
	delete(m, "batteryLevel")
	delete(m, "signalStrength")
	delete(m, "pipelineID")
	delete(m, "lastReadingAt")
	delete(m, "location")

	b, err = json.Marshal(m)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (s *Storage) AddSensor(ctx context.Context, sensor types.Sensor) error {
	if sensor.ID == "" || sensor.DeviceID == "" {
		return ErrNoID
	}
	if sensor.Tenant == "" {
		return ErrMissingTenant
	}

	data, err := sensorData(sensor)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"sensor_id":   sensor.ID,
		"device_id":   sensor.DeviceID,
		"tenant":      sensor.Tenant,
		"kind":        sensor.Kind.Code,
		"status":      sensor.Status,
		"pipeline_id": sensor.PipelineID,
		"lat":         sensor.Location.Latitude,
		"lon":         sensor.Location.Longitude,
		"data":        data,
	}

	_, err = s.db(ctx).Exec(ctx, `
		INSERT INTO sensors (sensor_id, device_id, tenant, kind, status, pipeline_id, location, data)
		VALUES (@sensor_id, @device_id, @tenant, @kind, @status, @pipeline_id, point(@lon,@lat), @data)
	`, args)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExist
		}
		return err
	}

	return nil
}

func (s *Storage) UpdateSensor(ctx context.Context, sensor types.Sensor) error {
	data, err := sensorData(sensor)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"sensor_id":   sensor.ID,
		"tenant":      sensor.Tenant,
		"kind":        sensor.Kind.Code,
		"status":      sensor.Status,
		"pipeline_id": sensor.PipelineID,
		"lat":         sensor.Location.Latitude,
		"lon":         sensor.Location.Longitude,
		"data":        data,
	}

	_, err = s.db(ctx).Exec(ctx, `
		UPDATE sensors
		SET tenant = @tenant, kind = @kind, status = @status, pipeline_id = @pipeline_id, location = point(@lon,@lat), data = @data, modified_on = CURRENT_TIMESTAMP
		WHERE sensor_id = @sensor_id AND deleted = FALSE
	`, args)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) scanSensor(row pgx.Row) (types.Sensor, error) {
	var sensorID, deviceID, tenant, kind, status string
	var batteryLevel, signalStrength *int
	var pipelineID *string
	var lastReadingAt *time.Time
	var location pgtype.Point
	var data json.RawMessage

	err := row.Scan(&sensorID, &deviceID, &tenant, &kind, &status, &batteryLevel, &signalStrength, &pipelineID, &lastReadingAt, &location, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Sensor{}, ErrNoRows
		}
		return types.Sensor{}, err
	}

	var sensor types.Sensor
	err = json.Unmarshal(data, &sensor)
	if err != nil {
		return types.Sensor{}, err
	}

	sensor.ID = sensorID
	sensor.DeviceID = deviceID
	sensor.Tenant = tenant
	sensor.Status = status
	sensor.Kind.Code = kind
	sensor.Location = types.Location{
		Latitude:  location.P.Y,
		Longitude: location.P.X,
	}

	if batteryLevel != nil {
		sensor.BatteryLevel = *batteryLevel
	}
	if signalStrength != nil {
		sensor.SignalStrength = *signalStrength
	}
	if pipelineID != nil {
		sensor.PipelineID = *pipelineID
	}
	if lastReadingAt != nil {
		sensor.LastReadingAt = *lastReadingAt
	}

	return sensor, nil
}

func (s *Storage) GetSensor(ctx context.Context, conditions ...ConditionFunc) (types.Sensor, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.Where()

	query := fmt.Sprintf(`
		SELECT sensor_id, device_id, tenant, kind, status, battery_level, signal_strength, pipeline_id, last_reading_at, location, data
		FROM sensors
		%s
	`, where)

	return s.scanSensor(s.db(ctx).QueryRow(ctx, query, args))
}

func (s *Storage) QuerySensors(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Sensor], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "device_id"
	}

	args := condition.NamedArgs()
	where := condition.Where()

	var offsetLimit string

	if condition.offset != nil {
		offsetLimit += fmt.Sprintf("OFFSET %d ", condition.Offset())
	}

	if condition.limit != nil {
		offsetLimit += fmt.Sprintf("LIMIT %d ", condition.Limit())
	}

	var sensorID, deviceID, tenant, kind, status string
	var batteryLevel, signalStrength *int
	var pipelineID *string
	var lastReadingAt *time.Time
	var location pgtype.Point
	var data json.RawMessage
	var count int64

	query := fmt.Sprintf(`
		SELECT sensor_id, device_id, tenant, kind, status, battery_level, signal_strength, pipeline_id, last_reading_at, location, data, count(*) OVER () AS count
		FROM sensors
		%s
		ORDER BY %s %s
		%s
	`, where, condition.SortBy(), condition.SortOrder(), offsetLimit)

	rows, err := s.db(ctx).Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.Sensor]{}, err
	}

	sensors := make([]types.Sensor, 0)

	_, err = pgx.ForEachRow(rows, []any{&sensorID, &deviceID, &tenant, &kind, &status, &batteryLevel, &signalStrength, &pipelineID, &lastReadingAt, &location, &data, &count}, func() error {
		var sensor types.Sensor

		err := json.Unmarshal(data, &sensor)
		if err != nil {
			return err
		}

		sensor.ID = sensorID
		sensor.DeviceID = deviceID
		sensor.Tenant = tenant
		sensor.Status = status
		sensor.Kind.Code = kind
		sensor.Location = types.Location{
			Latitude:  location.P.Y,
			Longitude: location.P.X,
		}

		if batteryLevel != nil {
			sensor.BatteryLevel = *batteryLevel
		}
		if signalStrength != nil {
			sensor.SignalStrength = *signalStrength
		}
		if pipelineID != nil {
			sensor.PipelineID = *pipelineID
		}
		if lastReadingAt != nil {
			sensor.LastReadingAt = *lastReadingAt
		}

		sensors = append(sensors, sensor)

		return nil
	})
	if err != nil {
		return types.Collection[types.Sensor]{}, err
	}

	return types.Collection[types.Sensor]{
		Data:       sensors,
		Count:      uint64(len(sensors)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}

func (s *Storage) UpdateSensorStatus(ctx context.Context, sensorID, status string) error {
	_, err := s.db(ctx).Exec(ctx, `
		UPDATE sensors
		SET status = @status, modified_on = CURRENT_TIMESTAMP
		WHERE sensor_id = @sensor_id AND deleted = FALSE
	`, pgx.NamedArgs{
		"sensor_id": sensorID,
		"status":    status,
	})
	if err != nil {
		return err
	}

	return nil
}

// SetSensorObserved records that a sensor has been heard from. Battery level
// and signal strength are only written when the report carried them.
func (s *Storage) SetSensorObserved(ctx context.Context, sensorID string, observedAt time.Time, batteryLevel, signalStrength *int) error {
	_, err := s.db(ctx).Exec(ctx, `
		UPDATE sensors
		SET last_reading_at = @observed_at,
			battery_level = COALESCE(@battery::int, battery_level),
			signal_strength = COALESCE(@signal::int, signal_strength),
			modified_on = CURRENT_TIMESTAMP
		WHERE sensor_id = @sensor_id AND deleted = FALSE
	`, pgx.NamedArgs{
		"sensor_id":   sensorID,
		"observed_at": observedAt.UTC(),
		"battery":     batteryLevel,
		"signal":      signalStrength,
	})
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) DeleteSensor(ctx context.Context, sensorID string) error {
	_, err := s.db(ctx).Exec(ctx, `
		UPDATE sensors
		SET deleted = TRUE, deleted_on = CURRENT_TIMESTAMP
		WHERE sensor_id = @sensor_id AND deleted = FALSE
	`, pgx.NamedArgs{
		"sensor_id": sensorID,
	})
	if err != nil {
		return err
	}

	return nil
}

// GetSilentSensors returns active sensors that have not reported since the
// given time, including sensors that have never reported at all.
func (s *Storage) GetSilentSensors(ctx context.Context, since time.Time) ([]types.Sensor, error) {
	rows, err := s.db(ctx).Query(ctx, `
		SELECT sensor_id, device_id, tenant, kind, status, battery_level, signal_strength, pipeline_id, last_reading_at, location, data
		FROM sensors
		WHERE deleted = FALSE AND status = 'active'
		  AND (last_reading_at IS NULL OR last_reading_at < @since)
	`, pgx.NamedArgs{
		"since": since.UTC(),
	})
	if err != nil {
		return nil, err
	}

	var sensorID, deviceID, tenant, kind, status string
	var batteryLevel, signalStrength *int
	var pipelineID *string
	var lastReadingAt *time.Time
	var location pgtype.Point
	var data json.RawMessage

	sensors := make([]types.Sensor, 0)

	_, err = pgx.ForEachRow(rows, []any{&sensorID, &deviceID, &tenant, &kind, &status, &batteryLevel, &signalStrength, &pipelineID, &lastReadingAt, &location, &data}, func() error {
		var sensor types.Sensor

		err := json.Unmarshal(data, &sensor)
		if err != nil {
			return err
		}

		sensor.ID = sensorID
		sensor.DeviceID = deviceID
		sensor.Tenant = tenant
		sensor.Status = status
		sensor.Kind.Code = kind
		sensor.Location = types.Location{
			Latitude:  location.P.Y,
			Longitude: location.P.X,
		}

		if batteryLevel != nil {
			sensor.BatteryLevel = *batteryLevel
		}
		if signalStrength != nil {
			sensor.SignalStrength = *signalStrength
		}
		if pipelineID != nil {
			sensor.PipelineID = *pipelineID
		}
		if lastReadingAt != nil {
			sensor.LastReadingAt = *lastReadingAt
		}

		sensors = append(sensors, sensor)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sensors, nil
}

func (s *Storage) GetTenants(ctx context.Context) ([]string, error) {
	rows, err := s.db(ctx).Query(ctx, `
		SELECT DISTINCT tenant
		FROM sensors
		WHERE deleted = FALSE
	`)
	if err != nil {
		return []string{}, err
	}

	var tenants []string
	for rows.Next() {
		var tenant string
		rows.Scan(&tenant)
		tenants = append(tenants, tenant)
	}

	return tenants, nil
}
