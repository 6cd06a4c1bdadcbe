package sensors

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/matryer/is"
)

const seedHeader = "device_id;name;description;kind;unit;lat;lon;tenant;pipeline;interval;status;max_rate"

func TestSeedCreatesNewSensors(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	csv := seedFile(
		"w-0042;Reservoir north;north basin;pressure;bar;62.39160;17.30723;default;pipeline-1;900;active;0.5",
	)

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return types.Sensor{}, storage.ErrNoRows
		},
		AddSensorFunc: func(ctx context.Context, sensor types.Sensor) error {
			return nil
		},
	}

	err := SeedSensors(ctx, s, csv, []string{"default"})
	is.NoErr(err)

	is.Equal(1, len(s.AddSensorCalls()))
	added := s.AddSensorCalls()[0].Sensor
	is.Equal("w-0042", added.DeviceID)
	is.True(added.ID != "")
	is.Equal("pressure", added.Kind.Code)
	is.Equal("bar", added.Kind.Unit)
	is.Equal(900, added.IntervalSeconds)
	is.Equal(0.5, *added.Kind.Thresholds.MaxRateOfChange)
	is.Equal(0, len(s.UpdateSensorCalls()))
}

func TestSeedUpdatesKnownSensors(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	csv := seedFile(
		"w-0042;Reservoir north;renamed;pressure;bar;62.39160;17.30723;default;;3600;active;0",
	)

	lastReading := time.Date(2026, 1, 10, 6, 0, 0, 0, time.UTC)

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return types.Sensor{
				ID:            "sensor-01",
				DeviceID:      "w-0042",
				Status:        types.SensorStatusMaintenance,
				LastReadingAt: lastReading,
			}, nil
		},
		UpdateSensorFunc: func(ctx context.Context, sensor types.Sensor) error {
			return nil
		},
	}

	err := SeedSensors(ctx, s, csv, []string{"default"})
	is.NoErr(err)

	is.Equal(0, len(s.AddSensorCalls()))
	is.Equal(1, len(s.UpdateSensorCalls()))

	updated := s.UpdateSensorCalls()[0].Sensor
	is.Equal("sensor-01", updated.ID)
	is.Equal("renamed", updated.Description)
	is.Equal(types.SensorStatusMaintenance, updated.Status)
	is.Equal(lastReading, updated.LastReadingAt)
}

func TestSeedSkipsRowsForUnknownTenants(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	csv := seedFile(
		"w-0042;Reservoir north;;pressure;bar;62.39160;17.30723;default;;3600;active;0",
		"w-0043;Reservoir south;;pressure;bar;62.38000;17.29000;somewhere-else;;3600;active;0",
	)

	s := &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Sensor, error) {
			return types.Sensor{}, storage.ErrNoRows
		},
		AddSensorFunc: func(ctx context.Context, sensor types.Sensor) error {
			return nil
		},
	}

	err := SeedSensors(ctx, s, csv, []string{"default"})
	is.NoErr(err)

	is.Equal(1, len(s.AddSensorCalls()))
	is.Equal("w-0042", s.AddSensorCalls()[0].Sensor.DeviceID)
}

func TestSeedRejectsRowsWithoutADeviceID(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	csv := seedFile(
		";Reservoir north;;pressure;bar;62.39160;17.30723;default;;3600;active;0",
	)

	s := &SensorStorageMock{}

	err := SeedSensors(ctx, s, csv, []string{"default"})
	is.True(err != nil)
}

func TestSeedRejectsInvalidStatus(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	csv := seedFile(
		"w-0042;Reservoir north;;pressure;bar;62.39160;17.30723;default;;3600;on-fire;0",
	)

	s := &SensorStorageMock{}

	err := SeedSensors(ctx, s, csv, []string{"default"})
	is.True(err != nil)
}

func seedFile(rows ...string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(seedHeader + "\n" + strings.Join(rows, "\n")))
}
