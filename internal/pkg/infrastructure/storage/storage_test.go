package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

func testSetup(t *testing.T) (context.Context, *Storage) {
	ctx := context.Background()

	config := NewConfig("localhost", "postgres", "password", "5432", "postgres", "disable")

	s, err := New(ctx, config)
	if err != nil {
		t.SkipNow()
	}

	err = s.CreateTables(ctx)
	if err != nil {
		t.SkipNow()
	}

	return ctx, s
}

func newSensor(tenant string) types.Sensor {
	id := uuid.NewString()

	return types.Sensor{
		ID:       id,
		DeviceID: "device-" + id,
		Name:     "name-" + id,
		Tenant:   tenant,
		Kind: types.SensorKind{
			Code: "pressure",
			Name: "Pressure",
			Unit: "bar",
		},
		Location: types.Location{Latitude: 62.39160, Longitude: 17.30723},
		Status:   types.SensorStatusActive,
	}
}

func TestAddAndGetSensor(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	sensor := newSensor("default")

	err := s.AddSensor(ctx, sensor)
	is.NoErr(err)

	fetched, err := s.GetSensor(ctx, WithDeviceID(sensor.DeviceID))
	is.NoErr(err)
	is.Equal(sensor.ID, fetched.ID)
	is.Equal("pressure", fetched.Kind.Code)
	is.Equal("bar", fetched.Kind.Unit)
}

func TestAddSensorTwiceFails(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	sensor := newSensor("default")

	err := s.AddSensor(ctx, sensor)
	is.NoErr(err)

	err = s.AddSensor(ctx, sensor)
	is.True(errors.Is(err, ErrAlreadyExist))
}

func TestQuerySensorsWithTenants(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	sensor := newSensor("tenant-" + uuid.NewString())

	err := s.AddSensor(ctx, sensor)
	is.NoErr(err)

	c, err := s.QuerySensors(ctx, WithTenants([]string{sensor.Tenant}))
	is.NoErr(err)
	is.Equal(uint64(1), c.TotalCount)
	is.Equal(sensor.DeviceID, c.Data[0].DeviceID)
}

func TestSetSensorObserved(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	sensor := newSensor("default")

	err := s.AddSensor(ctx, sensor)
	is.NoErr(err)

	battery := 87
	observedAt := time.Now().UTC().Truncate(time.Millisecond)

	err = s.SetSensorObserved(ctx, sensor.ID, observedAt, &battery, nil)
	is.NoErr(err)

	fetched, err := s.GetSensor(ctx, WithSensorID(sensor.ID))
	is.NoErr(err)
	is.Equal(87, fetched.BatteryLevel)
	is.True(fetched.LastReadingAt.Equal(observedAt))
}

func TestReadings(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	sensor := newSensor("default")
	err := s.AddSensor(ctx, sensor)
	is.NoErr(err)

	now := time.Now().UTC()

	for i, v := range []float64{4.1, 4.2, 4.3} {
		err = s.AddReading(ctx, types.SensorReading{
			ID:        uuid.NewString(),
			SensorID:  sensor.ID,
			DeviceID:  sensor.DeviceID,
			Tenant:    sensor.Tenant,
			Timestamp: now.Add(time.Duration(i) * time.Minute),
			Value:     v,
			Unit:      "bar",
			Quality:   1.0,
		})
		is.NoErr(err)
	}

	readings, err := s.GetReadingsSince(ctx, sensor.ID, now.Add(-time.Minute), true)
	is.NoErr(err)
	is.Equal(3, len(readings))
	is.Equal(4.1, readings[0].Value)

	latest, err := s.GetLatestReadingBefore(ctx, sensor.ID, now.Add(90*time.Second))
	is.NoErr(err)
	is.Equal(4.2, latest.Value)
}

func TestSetReadingAnomalyExcludesFromStatistics(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	sensor := newSensor("default")
	err := s.AddSensor(ctx, sensor)
	is.NoErr(err)

	now := time.Now().UTC()
	readingID := uuid.NewString()

	err = s.AddReading(ctx, types.SensorReading{
		ID:        readingID,
		SensorID:  sensor.ID,
		DeviceID:  sensor.DeviceID,
		Tenant:    sensor.Tenant,
		Timestamp: now,
		Value:     99.9,
		Quality:   1.0,
	})
	is.NoErr(err)

	err = s.SetReadingAnomaly(ctx, readingID, true, 0.9)
	is.NoErr(err)

	readings, err := s.GetReadingsSince(ctx, sensor.ID, now.Add(-time.Minute), false)
	is.NoErr(err)
	is.Equal(0, len(readings))

	readings, err = s.GetReadingsSince(ctx, sensor.ID, now.Add(-time.Minute), true)
	is.NoErr(err)
	is.Equal(1, len(readings))
	is.True(readings[0].IsAnomaly)
}

func TestCredentialRoundtrip(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	sensor := newSensor("default")
	err := s.AddSensor(ctx, sensor)
	is.NoErr(err)

	err = s.AddCredential(ctx, types.DeviceCredential{
		SensorID: sensor.ID,
		DeviceID: sensor.DeviceID,
		APIKey:   "digest",
		Active:   true,
	})
	is.NoErr(err)

	credential, err := s.GetCredentialByDeviceID(ctx, sensor.DeviceID)
	is.NoErr(err)
	is.Equal("digest", credential.APIKey)
	is.True(credential.LastAuthenticated == nil)

	at := time.Now().UTC().Truncate(time.Millisecond)
	err = s.TouchCredential(ctx, sensor.ID, at)
	is.NoErr(err)

	credential, err = s.GetCredential(ctx, sensor.ID)
	is.NoErr(err)
	is.True(credential.LastAuthenticated != nil)
	is.True(credential.LastAuthenticated.Equal(at))
}

func TestAlertLifecycle(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	alert := types.Alert{
		ID:         uuid.NewString(),
		Tenant:     "default",
		SensorID:   uuid.NewString(),
		Kind:       types.AlertKindPressureAnomaly,
		Severity:   types.SeverityHigh,
		Status:     types.AlertStatusOpen,
		Title:      "pressure anomaly detected",
		ObservedAt: time.Now().UTC(),
	}

	err := s.AddAlert(ctx, alert)
	is.NoErr(err)

	fetched, err := s.GetAlert(ctx, WithTenant("default"), WithSensorID(alert.SensorID))
	is.NoErr(err)
	is.Equal(alert.ID, fetched.ID)
	is.Equal("pressure anomaly detected", fetched.Title)

	fetched.Status = types.AlertStatusAcknowledged
	err = s.UpdateAlert(ctx, fetched)
	is.NoErr(err)

	err = s.DeleteAlert(ctx, alert.ID, "default")
	is.NoErr(err)

	_, err = s.GetAlert(ctx, WithSensorID(alert.SensorID))
	is.True(errors.Is(err, ErrDeleted))
}

func TestActiveRuleResolution(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	tenant := "tenant-" + uuid.NewString()

	global := types.DynamicRule{
		ID:            uuid.NewString(),
		Name:          "global pressure rule",
		SensorKind:    "pressure",
		Predicates:    []types.RulePredicate{{Operator: types.OperatorGreaterThan, Value: 10}},
		Combinator:    types.CombinatorAll,
		AlertKind:     types.AlertKindCustom,
		AlertSeverity: types.SeverityLow,
		Priority:      1,
		Active:        true,
	}

	local := global
	local.ID = uuid.NewString()
	local.Name = "tenant pressure rule"
	local.Tenant = tenant
	local.Priority = 0

	inactive := global
	inactive.ID = uuid.NewString()
	inactive.Active = false

	for _, r := range []types.DynamicRule{global, local, inactive} {
		err := s.AddRule(ctx, r)
		is.NoErr(err)
	}

	rules, err := s.GetActiveRules(ctx, tenant, "pressure")
	is.NoErr(err)
	is.True(len(rules) >= 2)
	is.Equal(local.ID, rules[0].ID) // lowest priority value first

	rules, err = s.GetActiveRules(ctx, tenant, "flow")
	is.NoErr(err)
	for _, r := range rules {
		is.True(r.SensorKind == "" || r.SensorKind == "flow")
	}
}

func TestProtocolPolicy(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	tenant := "tenant-" + uuid.NewString()

	err := s.UpsertProtocolPolicy(ctx, types.ProtocolPolicy{
		Protocol: "mqtt",
		Tenant:   tenant,
		Enabled:  false,
	})
	is.NoErr(err)

	policy, err := s.GetProtocolPolicy(ctx, "mqtt", tenant)
	is.NoErr(err)
	is.True(!policy.Enabled)

	_, err = s.GetProtocolPolicy(ctx, "http", tenant)
	is.True(errors.Is(err, ErrNoRows))

	err = s.DeleteProtocolPolicy(ctx, "mqtt", tenant)
	is.NoErr(err)

	_, err = s.GetProtocolPolicy(ctx, "mqtt", tenant)
	is.True(errors.Is(err, ErrNoRows))
}

func TestAuditEntries(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	actor := "operator-" + uuid.NewString()

	err := s.AddAuditEntry(ctx, types.AuditEntry{
		ID:           uuid.NewString(),
		Actor:        actor,
		Action:       "update",
		ResourceType: "sensor",
		ResourceID:   "sensor-01",
		Description:  "changed thresholds",
		Changes:      map[string]any{"maxValue": 12.5},
		ObservedAt:   time.Now().UTC(),
	})
	is.NoErr(err)

	c, err := s.QueryAuditEntries(ctx, WithActor(actor))
	is.NoErr(err)
	is.Equal(uint64(1), c.TotalCount)
	is.Equal("changed thresholds", c.Data[0].Description)
	is.Equal(12.5, c.Data[0].Changes["maxValue"])
}

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	sensor := newSensor("default")

	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		err := s.AddSensor(txCtx, sensor)
		is.NoErr(err)

		err = s.AddReading(txCtx, types.SensorReading{
			ID:        uuid.NewString(),
			SensorID:  sensor.ID,
			DeviceID:  sensor.DeviceID,
			Tenant:    sensor.Tenant,
			Timestamp: time.Now().UTC(),
			Value:     1.0,
			Quality:   1.0,
		})
		is.NoErr(err)

		return errors.New("boom")
	})
	is.True(err != nil)

	_, err = s.GetSensor(ctx, WithSensorID(sensor.ID))
	is.True(errors.Is(err, ErrNoRows))

	readings, err := s.GetReadingsSince(ctx, sensor.ID, time.Now().Add(-time.Hour), true)
	is.NoErr(err)
	is.Equal(0, len(readings))
}

func TestWithinTransactionCommits(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	sensor := newSensor("default")

	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		return s.AddSensor(txCtx, sensor)
	})
	is.NoErr(err)

	fetched, err := s.GetSensor(ctx, WithSensorID(sensor.ID))
	is.NoErr(err)
	is.Equal(sensor.DeviceID, fetched.DeviceID)
}
