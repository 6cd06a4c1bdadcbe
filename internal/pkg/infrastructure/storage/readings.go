package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddReading(ctx context.Context, reading types.SensorReading) error {
	if reading.ID == "" || reading.SensorID == "" {
		return ErrNoID
	}
	if reading.Tenant == "" {
		return ErrMissingTenant
	}

	var raw *string
	if reading.Raw != nil {
		b, err := json.Marshal(reading.Raw)
		if err != nil {
			return err
		}
		r := string(b)
		raw = &r
	}

	args := pgx.NamedArgs{
		"reading_id":    reading.ID,
		"sensor_id":     reading.SensorID,
		"device_id":     reading.DeviceID,
		"tenant":        reading.Tenant,
		"observed_at":   reading.Timestamp.UTC(),
		"value":         reading.Value,
		"unit":          reading.Unit,
		"quality":       reading.Quality,
		"is_anomaly":    reading.IsAnomaly,
		"anomaly_score": reading.AnomalyScore,
		"raw":           raw,
	}

	_, err := s.db(ctx).Exec(ctx, `
		INSERT INTO sensor_readings (reading_id, sensor_id, device_id, tenant, observed_at, value, unit, quality, is_anomaly, anomaly_score, raw)
		VALUES (@reading_id, @sensor_id, @device_id, @tenant, @observed_at, @value, @unit, @quality, @is_anomaly, @anomaly_score, @raw)
	`, args)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) SetReadingAnomaly(ctx context.Context, readingID string, isAnomaly bool, score float64) error {
	_, err := s.db(ctx).Exec(ctx, `
		UPDATE sensor_readings
		SET is_anomaly = @is_anomaly, anomaly_score = @anomaly_score
		WHERE reading_id = @reading_id
	`, pgx.NamedArgs{
		"reading_id":    readingID,
		"is_anomaly":    isAnomaly,
		"anomaly_score": score,
	})
	if err != nil {
		return err
	}

	return nil
}

func scanReadings(rows pgx.Rows, count *int64) ([]types.SensorReading, error) {
	var readingID, sensorID, deviceID, tenant string
	var unit *string
	var observedAt, createdOn time.Time
	var value, quality, anomalyScore float64
	var isAnomaly bool
	var raw json.RawMessage

	var c int64
	if count == nil {
		count = &c
	}

	readings := make([]types.SensorReading, 0)

	_, err := pgx.ForEachRow(rows, []any{&readingID, &sensorID, &deviceID, &tenant, &observedAt, &value, &unit, &quality, &isAnomaly, &anomalyScore, &raw, &createdOn, count}, func() error {
		reading := types.SensorReading{
			ID:           readingID,
			SensorID:     sensorID,
			DeviceID:     deviceID,
			Tenant:       tenant,
			Timestamp:    observedAt,
			Value:        value,
			Quality:      quality,
			IsAnomaly:    isAnomaly,
			AnomalyScore: anomalyScore,
			CreatedOn:    createdOn,
		}

		if unit != nil {
			reading.Unit = *unit
		}

		if raw != nil {
			err := json.Unmarshal(raw, &reading.Raw)
			if err != nil {
				return err
			}
		}

		readings = append(readings, reading)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return readings, nil
}

// GetReadingsSince returns the readings for a sensor observed at or after
// since, oldest first. Readings already flagged as anomalous can be left
// out so that they do not skew statistics derived from the result.
func (s *Storage) GetReadingsSince(ctx context.Context, sensorID string, since time.Time, includeAnomalies bool) ([]types.SensorReading, error) {
	args := pgx.NamedArgs{
		"sensor_id": sensorID,
		"since":     since.UTC(),
	}

	anomalyFilter := ""
	if !includeAnomalies {
		anomalyFilter = "AND is_anomaly = FALSE"
	}

	query := fmt.Sprintf(`
		SELECT reading_id, sensor_id, device_id, tenant, observed_at, value, unit, quality, is_anomaly, anomaly_score, raw, created_on, count(*) OVER () AS count
		FROM sensor_readings
		WHERE sensor_id = @sensor_id AND observed_at >= @since %s
		ORDER BY observed_at ASC
	`, anomalyFilter)

	rows, err := s.db(ctx).Query(ctx, query, args)
	if err != nil {
		return nil, err
	}

	return scanReadings(rows, nil)
}

// GetLatestReadingBefore returns the most recent reading for a sensor
// observed strictly before the given time.
func (s *Storage) GetLatestReadingBefore(ctx context.Context, sensorID string, before time.Time) (types.SensorReading, error) {
	rows, err := s.db(ctx).Query(ctx, `
		SELECT reading_id, sensor_id, device_id, tenant, observed_at, value, unit, quality, is_anomaly, anomaly_score, raw, created_on, count(*) OVER () AS count
		FROM sensor_readings
		WHERE sensor_id = @sensor_id AND observed_at < @before
		ORDER BY observed_at DESC
		LIMIT 1
	`, pgx.NamedArgs{
		"sensor_id": sensorID,
		"before":    before.UTC(),
	})
	if err != nil {
		return types.SensorReading{}, err
	}

	readings, err := scanReadings(rows, nil)
	if err != nil {
		return types.SensorReading{}, err
	}

	if len(readings) == 0 {
		return types.SensorReading{}, ErrNoRows
	}

	return readings[0], nil
}

func (s *Storage) QueryReadings(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.SensorReading], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "observed_at"
		condition.sortOrder = "DESC"
	}

	condition.IncludeDeleted = true // readings are never soft deleted

	args := condition.NamedArgs()
	where := condition.Where()

	var offsetLimit string

	if condition.offset != nil {
		offsetLimit += fmt.Sprintf("OFFSET %d ", condition.Offset())
	}

	if condition.limit != nil {
		offsetLimit += fmt.Sprintf("LIMIT %d ", condition.Limit())
	}

	query := fmt.Sprintf(`
		SELECT reading_id, sensor_id, device_id, tenant, observed_at, value, unit, quality, is_anomaly, anomaly_score, raw, created_on, count(*) OVER () AS count
		FROM sensor_readings
		%s
		ORDER BY %s %s
		%s
	`, where, condition.SortBy(), condition.SortOrder(), offsetLimit)

	rows, err := s.db(ctx).Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.SensorReading]{}, err
	}

	var count int64

	readings, err := scanReadings(rows, &count)
	if err != nil {
		return types.Collection[types.SensorReading]{}, err
	}

	return types.Collection[types.SensorReading]{
		Data:       readings,
		Count:      uint64(len(readings)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}

