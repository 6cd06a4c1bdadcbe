package sensors

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/google/uuid"
)

// SeedSensors loads sensors from a semicolon separated file, creating the
// ones that are new and updating the ones already known. Rows for tenants
// outside validTenants are skipped.
func SeedSensors(ctx context.Context, s SensorStorage, sensors io.ReadCloser, validTenants []string) error {
	log := logging.GetFromContext(ctx)
	defer sensors.Close()

	r := csv.NewReader(sensors)
	r.Comma = ';'

	rows, err := r.ReadAll()
	if err != nil {
		return err
	}

	records, err := getRecordsFromRows(rows)
	if err != nil {
		return err
	}

	log.Info("loaded sensors from file", slog.Int("rows", len(rows)), slog.Int("records", len(records)))

	for _, record := range records {
		sensor := record.mapToSensor()

		if !slices.Contains(validTenants, sensor.Tenant) {
			log.Warn("tenant not allowed", "device_id", sensor.DeviceID, "tenant", sensor.Tenant)
			continue
		}

		existing, err := s.GetSensor(ctx, storage.WithDeviceID(sensor.DeviceID))
		if err != nil {
			if !errors.Is(err, storage.ErrNoRows) {
				return err
			}

			sensor.ID = uuid.NewString()

			err = s.AddSensor(ctx, sensor)
			if err != nil {
				return err
			}

			log.Debug("seeded new sensor", "device_id", sensor.DeviceID)
			continue
		}

		sensor.ID = existing.ID
		sensor.Status = existing.Status
		sensor.LastReadingAt = existing.LastReadingAt

		err = s.UpdateSensor(ctx, sensor)
		if err != nil {
			return err
		}

		log.Debug("updated existing sensor", "device_id", sensor.DeviceID)
	}

	return nil
}

type sensorRecord struct {
	deviceID    string
	name        string
	description string
	kind        string
	unit        string
	lat         float64
	lon         float64
	tenant      string
	pipeline    string
	interval    int
	status      string
	maxRate     float64
}

func (sr sensorRecord) mapToSensor() types.Sensor {
	sensor := types.Sensor{
		DeviceID:    sr.deviceID,
		Name:        sr.name,
		Description: sr.description,
		Tenant:      sr.tenant,
		PipelineID:  sr.pipeline,
		Kind: types.SensorKind{
			Code: sr.kind,
			Name: sr.kind,
			Unit: sr.unit,
		},
		Location: types.Location{
			Latitude:  sr.lat,
			Longitude: sr.lon,
		},
		IntervalSeconds: sr.interval,
		Status:          sr.status,
	}

	if sr.maxRate > 0 {
		sensor.Kind.Thresholds.MaxRateOfChange = &sr.maxRate
	}

	return sensor
}

func newSensorRecord(r []string) (sensorRecord, error) {
	strTof64 := func(s string) float64 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0.0
		}
		return f
	}

	strToInt := func(str string, def int) int {
		if n, err := strconv.Atoi(str); err == nil {
			if n == 0 {
				return def
			}
			return n
		}
		return def
	}

	sr := sensorRecord{
		deviceID:    strings.TrimSpace(r[0]),
		name:        r[1],
		description: r[2],
		kind:        strings.ToLower(strings.TrimSpace(r[3])),
		unit:        strings.TrimSpace(r[4]),
		lat:         strTof64(r[5]),
		lon:         strTof64(r[6]),
		tenant:      strings.TrimSpace(r[7]),
		pipeline:    strings.TrimSpace(r[8]),
		interval:    strToInt(r[9], 3600),
		status:      strings.ToLower(strings.TrimSpace(r[10])),
		maxRate:     strTof64(r[11]),
	}

	if sr.status == "" {
		sr.status = types.SensorStatusActive
	}

	err := validateSensorRecord(sr)
	if err != nil {
		return sensorRecord{}, err
	}

	return sr, nil
}

func validateSensorRecord(r sensorRecord) error {
	if r.deviceID == "" {
		return fmt.Errorf("row is missing a device id")
	}

	if r.kind == "" {
		return fmt.Errorf("row with %s is missing a sensor kind", r.deviceID)
	}

	if !slices.Contains([]string{
		types.SensorStatusActive,
		types.SensorStatusInactive,
		types.SensorStatusMaintenance,
		types.SensorStatusFaulty,
	}, r.status) {
		return fmt.Errorf("row with %s contains invalid status %s", r.deviceID, r.status)
	}

	return nil
}

func getRecordsFromRows(rows [][]string) ([]sensorRecord, error) {
	records := []sensorRecord{}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rec, err := newSensorRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
