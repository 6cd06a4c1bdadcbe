package anomaly

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
)

const (
	statWindow     = 24 * time.Hour
	statMinSamples = 10
	statThreshold  = 3.0

	pressureWindow     = 15 * time.Minute
	pressureMinSamples = 3
	pressureDropRatio  = 0.25

	flowWindow     = 2 * time.Hour
	flowMinSamples = 6
	flowThreshold  = 2.5

	// z-scores are mapped onto [0,1] by dividing with this and clamping
	scoreDivisor = 8.0
)

// Result is the verdict for a single reading. Score is the maximum over all
// checks that fired, Reasons names them.
type Result struct {
	IsAnomaly bool     `json:"isAnomaly"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"reasons,omitzero"`
}

//go:generate moq -rm -out readinghistory_mock.go . ReadingHistory
type ReadingHistory interface {
	GetReadingsSince(ctx context.Context, sensorID string, since time.Time, includeAnomalies bool) ([]types.SensorReading, error)
	GetLatestReadingBefore(ctx context.Context, sensorID string, before time.Time) (types.SensorReading, error)
}

//go:generate moq -rm -out detector_mock.go . Detector
type Detector interface {
	Check(ctx context.Context, sensor types.Sensor, reading types.SensorReading) (Result, error)
}

type detector struct {
	history ReadingHistory
}

func New(history ReadingHistory) Detector {
	return detector{history: history}
}

func (d detector) Check(ctx context.Context, sensor types.Sensor, reading types.SensorReading) (Result, error) {
	result := Result{}

	flag := func(reason string, score float64) {
		result.IsAnomaly = true
		result.Reasons = append(result.Reasons, reason)
		if score > result.Score {
			result.Score = score
		}
	}

	score, fired, err := d.statisticalOutlier(ctx, sensor, reading)
	if err != nil {
		return Result{}, err
	}
	if fired {
		flag("statistical_outlier", score)
	}

	score, fired, err = d.rateOfChange(ctx, sensor, reading)
	if err != nil {
		return Result{}, err
	}
	if fired {
		flag("rate_of_change", score)
	}

	kind := strings.ToLower(sensor.Kind.Code)

	if strings.Contains(kind, "pressure") {
		score, fired, err = d.pressureDrop(ctx, sensor, reading)
		if err != nil {
			return Result{}, err
		}
		if fired {
			flag("pressure_drop", score)
		}
	}

	if strings.Contains(kind, "flow") {
		score, fired, err = d.flowDeviation(ctx, sensor, reading)
		if err != nil {
			return Result{}, err
		}
		if fired {
			flag("flow_deviation", score)
		}
	}

	return result, nil
}

// statisticalOutlier compares the reading against the mean and standard
// deviation of the last 24 hours, previously flagged readings excluded.
func (d detector) statisticalOutlier(ctx context.Context, sensor types.Sensor, reading types.SensorReading) (float64, bool, error) {
	history, err := d.window(ctx, sensor.ID, reading, statWindow, false)
	if err != nil {
		return 0, false, err
	}

	if len(history) < statMinSamples {
		return 0, false, nil
	}

	mean, stdev := meanStdev(values(history))
	if stdev < 1e-9 {
		return 0, false, nil
	}

	z := math.Abs(reading.Value-mean) / stdev
	if z <= statThreshold {
		return 0, false, nil
	}

	return clamp(z / scoreDivisor), true, nil
}

// rateOfChange compares the change per second since the latest prior reading
// against the max rate configured for the sensor kind.
func (d detector) rateOfChange(ctx context.Context, sensor types.Sensor, reading types.SensorReading) (float64, bool, error) {
	maxRate := sensor.Kind.Thresholds.MaxRateOfChange
	if maxRate == nil || *maxRate <= 0 {
		return 0, false, nil
	}

	previous, err := d.history.GetLatestReadingBefore(ctx, sensor.ID, reading.Timestamp)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}

	elapsed := reading.Timestamp.Sub(previous.Timestamp).Seconds()
	if elapsed <= 0 {
		return 0, false, nil
	}

	rate := math.Abs(reading.Value-previous.Value) / elapsed
	if rate <= *maxRate {
		return 0, false, nil
	}

	return clamp(rate / *maxRate), true, nil
}

// pressureDrop fires when pressure falls at least 25% below the recent
// baseline, which is how a main break typically announces itself.
func (d detector) pressureDrop(ctx context.Context, sensor types.Sensor, reading types.SensorReading) (float64, bool, error) {
	history, err := d.window(ctx, sensor.ID, reading, pressureWindow, true)
	if err != nil {
		return 0, false, err
	}

	if len(history) < pressureMinSamples {
		return 0, false, nil
	}

	baseline, _ := meanStdev(values(history))
	if baseline < 1e-9 {
		return 0, false, nil
	}

	drop := (baseline - reading.Value) / baseline
	if drop < pressureDropRatio {
		return 0, false, nil
	}

	return clamp(drop), true, nil
}

// flowDeviation is a tighter statistical check over a two hour window for
// flow sensors, where night time deviations indicate leakage.
func (d detector) flowDeviation(ctx context.Context, sensor types.Sensor, reading types.SensorReading) (float64, bool, error) {
	history, err := d.window(ctx, sensor.ID, reading, flowWindow, false)
	if err != nil {
		return 0, false, err
	}

	if len(history) < flowMinSamples {
		return 0, false, nil
	}

	mean, stdev := meanStdev(values(history))
	if stdev < 1e-9 {
		return 0, false, nil
	}

	z := math.Abs(reading.Value-mean) / stdev
	if z < flowThreshold {
		return 0, false, nil
	}

	return clamp(z / scoreDivisor), true, nil
}

// window fetches the readings preceding the one under evaluation, which may
// itself already be persisted and must not be part of its own baseline.
func (d detector) window(ctx context.Context, sensorID string, reading types.SensorReading, span time.Duration, includeAnomalies bool) ([]types.SensorReading, error) {
	history, err := d.history.GetReadingsSince(ctx, sensorID, reading.Timestamp.Add(-span), includeAnomalies)
	if err != nil {
		return nil, err
	}

	result := make([]types.SensorReading, 0, len(history))
	for _, r := range history {
		if r.ID == reading.ID || r.Timestamp.After(reading.Timestamp) {
			continue
		}
		result = append(result, r)
	}

	return result, nil
}

func values(readings []types.SensorReading) []float64 {
	v := make([]float64, len(readings))
	for i, r := range readings {
		v[i] = r.Value
	}
	return v
}

func meanStdev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

func clamp(score float64) float64 {
	return math.Min(score, 1.0)
}
