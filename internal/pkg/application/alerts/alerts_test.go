package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/matryer/is"
)

func TestSeverityFollowsTheAnomalyScore(t *testing.T) {
	is := is.New(t)
	svc, _, _ := testSetup(t)

	testcases := []struct {
		score    float64
		expected string
	}{
		{0.95, types.SeverityCritical},
		{0.9, types.SeverityCritical},
		{0.75, types.SeverityHigh},
		{0.5, types.SeverityMedium},
		{0.3, types.SeverityLow},
		{0.1, types.SeverityInfo},
	}

	for i, tc := range testcases {
		sensor := newSensor("pressure")
		sensor.ID = sensor.ID + string(rune('a'+i))

		alert := svc.FromAnomaly(context.Background(), sensor, newReading(2.0), tc.score, nil)
		is.True(alert != nil)
		is.Equal(alert.Severity, tc.expected)
	}
}

func TestAnomalyAlertCarriesContext(t *testing.T) {
	is := is.New(t)
	svc, _, _ := testSetup(t)

	maxRate := 0.5
	sensor := newSensor("pressure")
	sensor.Kind.Thresholds = types.Thresholds{MaxRateOfChange: &maxRate}

	reading := newReading(2.5)

	alert := svc.FromAnomaly(context.Background(), sensor, reading, 0.75, []string{"rate_of_change"})

	is.True(alert != nil)
	is.Equal(alert.Kind, types.AlertKindPressureAnomaly)
	is.Equal(alert.Status, types.AlertStatusOpen)
	is.Equal(alert.Tenant, "default")
	is.Equal(*alert.Value, 2.5)
	is.Equal(alert.Threshold["max_rate_of_change"], 0.5)
	is.Equal(alert.Meta["anomalyScore"], 0.75)
	is.Equal(alert.Meta["checks"], []string{"rate_of_change"})
	is.Equal(alert.ObservedAt, reading.Timestamp)
}

func TestAnomalyAlertsAreCooledDown(t *testing.T) {
	is := is.New(t)
	svc, clock, _ := testSetup(t)

	sensor := newSensor("pressure")

	first := svc.FromAnomaly(context.Background(), sensor, newReading(2.0), 0.8, nil)
	is.True(first != nil)

	// a second anomaly on the same sensor within the window is suppressed
	second := svc.FromAnomaly(context.Background(), sensor, newReading(2.1), 0.8, nil)
	is.True(second == nil)

	clock.advance(301 * time.Second)

	third := svc.FromAnomaly(context.Background(), sensor, newReading(2.2), 0.8, nil)
	is.True(third != nil)
}

func TestRuleAlertsUseTheRuleCooldown(t *testing.T) {
	is := is.New(t)
	svc, clock, _ := testSetup(t)

	sensor := newSensor("level")
	rule := types.DynamicRule{ID: "rule-01", Name: "high level", CooldownSeconds: 60}

	first := svc.FromRule(context.Background(), sensor, newReading(8.0), rule)
	is.True(first != nil)

	clock.advance(30 * time.Second)
	is.True(svc.FromRule(context.Background(), sensor, newReading(8.0), rule) == nil)

	clock.advance(31 * time.Second)
	is.True(svc.FromRule(context.Background(), sensor, newReading(8.0), rule) != nil)
}

func TestRuleAlertDefaults(t *testing.T) {
	is := is.New(t)
	svc, _, _ := testSetup(t)

	sensor := newSensor("level")
	rule := types.DynamicRule{ID: "rule-01", Name: "high level"}

	alert := svc.FromRule(context.Background(), sensor, newReading(8.0), rule)

	is.True(alert != nil)
	is.Equal(alert.Kind, types.AlertKindCustom)
	is.Equal(alert.Severity, types.SeverityMedium)
	is.Equal(alert.Title, "Rule high level matched on device-01")
	is.Equal(alert.RuleID, "rule-01")
}

func TestRuleAlertTemplate(t *testing.T) {
	is := is.New(t)
	svc, _, _ := testSetup(t)

	sensor := newSensor("level")
	sensor.Name = "Reservoir north"

	rule := types.DynamicRule{
		ID:       "rule-01",
		Name:     "high level",
		Template: "{name} reported {value} {unit}",
	}

	reading := newReading(8.5)
	reading.Unit = "m"

	alert := svc.FromRule(context.Background(), sensor, reading, rule)

	is.True(alert != nil)
	is.Equal(alert.Title, "Reservoir north reported 8.5 m")
}

func TestSilenceAlertSeverityEscalatesWithMissedIntervals(t *testing.T) {
	is := is.New(t)
	svc, _, _ := testSetup(t)

	sensor := newSensor("pressure")
	sensor.IntervalSeconds = 3600

	// two missed intervals
	alert := svc.FromSilence(context.Background(), sensor, time.Now().Add(-2*time.Hour))
	is.True(alert != nil)
	is.Equal(alert.Kind, types.AlertKindCommunicationLoss)
	is.Equal(alert.Severity, types.SeverityMedium)

	sensor.ID = "sensor-02"

	alert = svc.FromSilence(context.Background(), sensor, time.Now().Add(-4*time.Hour))
	is.True(alert != nil)
	is.Equal(alert.Severity, types.SeverityHigh)
}

func TestAddRequiresATenant(t *testing.T) {
	is := is.New(t)
	svc, _, _ := testSetup(t)

	err := svc.Add(context.Background(), types.Alert{Kind: types.AlertKindLeak})
	is.True(errors.Is(err, storage.ErrMissingTenant))
}

func TestAddPersistsWithoutPublishing(t *testing.T) {
	is := is.New(t)
	svc, _, env := testSetup(t)

	err := svc.Add(context.Background(), types.Alert{Tenant: "default", Kind: types.AlertKindLeak})
	is.NoErr(err)

	is.Equal(len(env.store.AddAlertCalls()), 1)
	is.Equal(len(env.messenger.PublishOnTopicCalls()), 0)

	stored := env.store.AddAlertCalls()[0].Alert
	is.True(stored.ID != "")
	is.Equal(stored.Status, types.AlertStatusOpen)

	err = svc.PublishCreated(context.Background(), stored)
	is.NoErr(err)

	is.Equal(len(env.messenger.PublishOnTopicCalls()), 1)
	is.Equal(env.messenger.PublishOnTopicCalls()[0].Message.TopicName(), "alerts.alertCreated")
}

func TestStatusChain(t *testing.T) {
	is := is.New(t)

	testcases := []struct {
		current string
		next    string
		allowed bool
	}{
		{types.AlertStatusOpen, types.AlertStatusAcknowledged, true},
		{types.AlertStatusOpen, types.AlertStatusResolved, true},
		{types.AlertStatusAcknowledged, types.AlertStatusInProgress, true},
		{types.AlertStatusInProgress, types.AlertStatusResolved, true},
		{types.AlertStatusResolved, types.AlertStatusClosed, true},
		{types.AlertStatusAcknowledged, types.AlertStatusOpen, false},
		{types.AlertStatusResolved, types.AlertStatusAcknowledged, false},
		{types.AlertStatusClosed, types.AlertStatusOpen, false},
		{types.AlertStatusClosed, types.AlertStatusResolved, false},
		{types.AlertStatusOpen, types.AlertStatusFalsePositive, true},
		{types.AlertStatusAcknowledged, types.AlertStatusFalsePositive, false},
		{types.AlertStatusFalsePositive, types.AlertStatusOpen, false},
		{types.AlertStatusOpen, types.AlertStatusOpen, false},
		{types.AlertStatusOpen, "on-fire", false},
	}

	for _, tc := range testcases {
		is.Equal(transitionAllowed(tc.current, tc.next), tc.allowed)
	}
}

func TestUpdateStatusRecordsActorAndNote(t *testing.T) {
	is := is.New(t)
	svc, _, env := testSetup(t)

	env.alert = types.Alert{
		ID:     "alert-01",
		Tenant: "default",
		Kind:   types.AlertKindLeak,
		Status: types.AlertStatusOpen,
	}

	updated, err := svc.UpdateStatus(context.Background(), "alert-01", "default", types.AlertStatusAcknowledged, "operator@example.com", "on my way")
	is.NoErr(err)

	is.Equal(updated.Status, types.AlertStatusAcknowledged)
	is.Equal(updated.AcknowledgedBy, "operator@example.com")
	is.True(updated.AcknowledgedAt != nil)
	is.Equal(len(updated.Notes), 1)

	is.Equal(len(env.messenger.PublishOnTopicCalls()), 1)
	is.Equal(env.messenger.PublishOnTopicCalls()[0].Message.TopicName(), "alerts.alertStatusChanged")
}

func TestUpdateStatusRejectsBackwardsTransitions(t *testing.T) {
	is := is.New(t)
	svc, _, env := testSetup(t)

	env.alert = types.Alert{
		ID:     "alert-01",
		Tenant: "default",
		Status: types.AlertStatusResolved,
	}

	_, err := svc.UpdateStatus(context.Background(), "alert-01", "default", types.AlertStatusOpen, "operator", "")
	is.True(errors.Is(err, ErrInvalidTransition))
}

func newSensor(kind string) types.Sensor {
	return types.Sensor{
		ID:       "sensor-01",
		DeviceID: "device-01",
		Tenant:   "default",
		Kind:     types.SensorKind{Code: kind, Unit: "bar"},
		Location: types.Location{Latitude: 62.39160, Longitude: 17.30723},
		Status:   types.SensorStatusActive,
	}
}

func newReading(value float64) types.SensorReading {
	return types.SensorReading{
		ID:        "reading-01",
		SensorID:  "sensor-01",
		DeviceID:  "device-01",
		Tenant:    "default",
		Timestamp: time.Now().UTC(),
		Value:     value,
		Quality:   1.0,
	}
}

type testClock struct {
	now time.Time
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type testEnv struct {
	alert     types.Alert
	store     *AlertStorageMock
	messenger *messaging.MsgContextMock
}

func testSetup(t *testing.T) (*alertSvc, *testClock, *testEnv) {
	clock := &testClock{now: time.Now().UTC()}
	env := &testEnv{}

	env.store = &AlertStorageMock{
		AddAlertFunc: func(ctx context.Context, alert types.Alert) error {
			env.alert = alert
			return nil
		},
		GetAlertFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Alert, error) {
			if env.alert.ID == "" {
				return types.Alert{}, storage.ErrNoRows
			}
			return env.alert, nil
		},
		UpdateAlertFunc: func(ctx context.Context, alert types.Alert) error {
			env.alert = alert
			return nil
		},
	}

	env.messenger = &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	svc := New(env.store, env.messenger).(*alertSvc)
	svc.nowFunc = func() time.Time { return clock.now }

	return svc, clock, env
}
