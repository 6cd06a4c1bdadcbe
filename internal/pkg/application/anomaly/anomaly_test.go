package anomaly

import (
	"context"
	"testing"
	"time"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/matryer/is"
)

func TestNormalReadingPasses(t *testing.T) {
	is := is.New(t)

	history := readings(2.0, 2.1, 1.9, 2.0, 2.1, 1.9, 2.0, 2.1, 1.9, 2.0, 2.1, 1.9)
	d := New(historyOf(history))

	result, err := d.Check(context.Background(), sensorOfKind("level", nil), reading(2.05))

	is.NoErr(err)
	is.True(!result.IsAnomaly)
	is.Equal(result.Score, 0.0)
	is.Equal(len(result.Reasons), 0)
}

func TestStatisticalOutlierFires(t *testing.T) {
	is := is.New(t)

	// mean 10.0, stdev 0.5
	history := readings(9.5, 10.5, 9.5, 10.5, 9.5, 10.5, 9.5, 10.5, 9.5, 10.5)
	d := New(historyOf(history))

	// z = |13.0-10.0|/0.5 = 6
	result, err := d.Check(context.Background(), sensorOfKind("level", nil), reading(13.0))

	is.NoErr(err)
	is.True(result.IsAnomaly)
	is.Equal(result.Reasons, []string{"statistical_outlier"})
	is.Equal(result.Score, 0.75)
}

func TestStatisticalOutlierNeedsEnoughSamples(t *testing.T) {
	is := is.New(t)

	history := readings(9.5, 10.5, 9.5, 10.5, 9.5, 10.5, 9.5, 10.5, 9.5)
	d := New(historyOf(history))

	result, err := d.Check(context.Background(), sensorOfKind("level", nil), reading(100.0))

	is.NoErr(err)
	is.True(!result.IsAnomaly)
}

func TestStatisticalOutlierSkipsFlatHistory(t *testing.T) {
	is := is.New(t)

	history := readings(5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0)
	d := New(historyOf(history))

	result, err := d.Check(context.Background(), sensorOfKind("level", nil), reading(500.0))

	is.NoErr(err)
	is.True(!result.IsAnomaly)
}

func TestRateOfChangeFires(t *testing.T) {
	is := is.New(t)

	maxRate := 0.5
	now := time.Now().UTC()

	h := historyOf(nil)
	h.GetLatestReadingBeforeFunc = func(ctx context.Context, sensorID string, before time.Time) (types.SensorReading, error) {
		return types.SensorReading{ID: "prev", Value: 10.0, Timestamp: now.Add(-10 * time.Second)}, nil
	}

	d := New(h)

	r := reading(20.0)
	r.Timestamp = now

	// 10 units in 10 s is 1.0/s, twice the configured ceiling
	result, err := d.Check(context.Background(), sensorOfKind("level", &maxRate), r)

	is.NoErr(err)
	is.True(result.IsAnomaly)
	is.Equal(result.Reasons, []string{"rate_of_change"})
	is.Equal(result.Score, 1.0)
}

func TestRateOfChangeNeedsAConfiguredCeiling(t *testing.T) {
	is := is.New(t)

	h := historyOf(nil)
	d := New(h)

	result, err := d.Check(context.Background(), sensorOfKind("level", nil), reading(1e9))

	is.NoErr(err)
	is.True(!result.IsAnomaly)
	is.Equal(len(h.GetLatestReadingBeforeCalls()), 0)
}

func TestRateOfChangeSkipsTheFirstReading(t *testing.T) {
	is := is.New(t)

	maxRate := 0.5

	h := historyOf(nil)
	h.GetLatestReadingBeforeFunc = func(ctx context.Context, sensorID string, before time.Time) (types.SensorReading, error) {
		return types.SensorReading{}, storage.ErrNoRows
	}

	d := New(h)

	result, err := d.Check(context.Background(), sensorOfKind("level", &maxRate), reading(1e9))

	is.NoErr(err)
	is.True(!result.IsAnomaly)
}

func TestPressureDropFires(t *testing.T) {
	is := is.New(t)

	history := readings(4.0, 4.0, 4.0)
	d := New(historyOf(history))

	// half the 15 minute baseline
	result, err := d.Check(context.Background(), sensorOfKind("pressure", nil), reading(2.0))

	is.NoErr(err)
	is.True(result.IsAnomaly)
	is.Equal(result.Reasons, []string{"pressure_drop"})
	is.Equal(result.Score, 0.5)
}

func TestPressureDropIgnoresSmallDips(t *testing.T) {
	is := is.New(t)

	history := readings(4.0, 4.0, 4.0)
	d := New(historyOf(history))

	result, err := d.Check(context.Background(), sensorOfKind("pressure", nil), reading(3.2))

	is.NoErr(err)
	is.True(!result.IsAnomaly)
}

func TestFlowDeviationFires(t *testing.T) {
	is := is.New(t)

	// mean 2.0, stdev 1.0
	history := readings(1.0, 3.0, 1.0, 3.0, 1.0, 3.0, 1.0, 3.0)
	d := New(historyOf(history))

	// z = 2.5, right at the flow threshold
	result, err := d.Check(context.Background(), sensorOfKind("flow", nil), reading(4.5))

	is.NoErr(err)
	is.True(result.IsAnomaly)
	is.Equal(result.Reasons, []string{"flow_deviation"})
	is.Equal(result.Score, 0.3125)
}

func TestScoreIsTheMaximumOverAllChecks(t *testing.T) {
	is := is.New(t)

	maxRate := 0.001
	now := time.Now().UTC()

	history := readings(1.0, 3.0, 1.0, 3.0, 1.0, 3.0, 1.0, 3.0, 1.0, 3.0, 1.0, 3.0)
	h := historyOf(history)
	h.GetLatestReadingBeforeFunc = func(ctx context.Context, sensorID string, before time.Time) (types.SensorReading, error) {
		return types.SensorReading{ID: "prev", Value: 2.0, Timestamp: now.Add(-time.Minute)}, nil
	}

	d := New(h)

	r := reading(6.0)
	r.Timestamp = now

	result, err := d.Check(context.Background(), sensorOfKind("flow_meter", &maxRate), r)

	is.NoErr(err)
	is.True(result.IsAnomaly)
	is.Equal(result.Reasons, []string{"statistical_outlier", "rate_of_change", "flow_deviation"})
	is.Equal(result.Score, 1.0)
}

func TestOwnReadingIsExcludedFromTheBaseline(t *testing.T) {
	is := is.New(t)

	history := readings(5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0)

	// the reading under evaluation is already persisted and part of the
	// fetched window
	r := reading(50.0)
	history = append(history, r)

	d := New(historyOf(history))

	result, err := d.Check(context.Background(), sensorOfKind("level", nil), r)

	is.NoErr(err)
	is.True(!result.IsAnomaly)
}

func sensorOfKind(code string, maxRate *float64) types.Sensor {
	return types.Sensor{
		ID:       "sensor-01",
		DeviceID: "device-01",
		Tenant:   "default",
		Kind: types.SensorKind{
			Code:       code,
			Unit:       "l/s",
			Thresholds: types.Thresholds{MaxRateOfChange: maxRate},
		},
	}
}

func reading(value float64) types.SensorReading {
	return types.SensorReading{
		ID:        "reading-under-test",
		SensorID:  "sensor-01",
		Timestamp: time.Now().UTC(),
		Value:     value,
		Quality:   1.0,
	}
}

func readings(values ...float64) []types.SensorReading {
	base := time.Now().UTC().Add(-10 * time.Minute)

	result := make([]types.SensorReading, 0, len(values))
	for i, v := range values {
		result = append(result, types.SensorReading{
			ID:        uuidish(i),
			SensorID:  "sensor-01",
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Value:     v,
			Quality:   1.0,
		})
	}

	return result
}

func uuidish(i int) string {
	return string(rune('a'+i)) + "-reading"
}

func historyOf(history []types.SensorReading) *ReadingHistoryMock {
	return &ReadingHistoryMock{
		GetReadingsSinceFunc: func(ctx context.Context, sensorID string, since time.Time, includeAnomalies bool) ([]types.SensorReading, error) {
			result := make([]types.SensorReading, 0, len(history))
			for _, r := range history {
				if r.Timestamp.Before(since) {
					continue
				}
				result = append(result, r)
			}
			return result, nil
		},
		GetLatestReadingBeforeFunc: func(ctx context.Context, sensorID string, before time.Time) (types.SensorReading, error) {
			return types.SensorReading{}, storage.ErrNoRows
		},
	}
}
