package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/jackc/pgx/v5"
)

func alertData(alert types.Alert) (string, error) {
	b, err := json.Marshal(alert)
	if err != nil {
		return "", err
	}

	var m map[string]any
	err = json.Unmarshal(b, &m)
	if err != nil {
		return "", err
	}

	delete(m, "id")
	delete(m, "tenant")
	delete(m, "sensorID")
	delete(m, "kind")
	delete(m, "severity")
	delete(m, "status")
	delete(m, "ruleID")
	delete(m, "observedAt")
	delete(m, "createdOn")
	delete(m, "modifiedOn")

	b, err = json.Marshal(m)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (s *Storage) AddAlert(ctx context.Context, alert types.Alert) error {
	if alert.ID == "" {
		return ErrNoID
	}
	if alert.Tenant == "" {
		return ErrMissingTenant
	}

	data, err := alertData(alert)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"alert_id":    alert.ID,
		"tenant":      alert.Tenant,
		"sensor_id":   alert.SensorID,
		"kind":        alert.Kind,
		"severity":    alert.Severity,
		"status":      alert.Status,
		"rule_id":     alert.RuleID,
		"observed_at": alert.ObservedAt.UTC(),
		"data":        data,
	}

	_, err = s.db(ctx).Exec(ctx, `
		INSERT INTO alerts (alert_id, tenant, sensor_id, kind, severity, status, rule_id, observed_at, data)
		VALUES (@alert_id, @tenant, @sensor_id, @kind, @severity, @status, @rule_id, @observed_at, @data)
		ON CONFLICT (alert_id, deleted) DO UPDATE
		SET observed_at = EXCLUDED.observed_at, severity = EXCLUDED.severity, status = EXCLUDED.status, data = EXCLUDED.data, modified_on = CURRENT_TIMESTAMP
	`, args)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) UpdateAlert(ctx context.Context, alert types.Alert) error {
	data, err := alertData(alert)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"alert_id": alert.ID,
		"tenant":   alert.Tenant,
		"severity": alert.Severity,
		"status":   alert.Status,
		"data":     data,
	}

	_, err = s.db(ctx).Exec(ctx, `
		UPDATE alerts
		SET severity = @severity, status = @status, data = @data, modified_on = CURRENT_TIMESTAMP
		WHERE alert_id = @alert_id AND tenant = @tenant AND deleted = FALSE
	`, args)
	if err != nil {
		return err
	}

	return nil
}

func scanAlert(row pgx.Row) (types.Alert, error) {
	var alertID, tenant, kind, severity, status string
	var sensorID, ruleID *string
	var observedAt, createdOn, modifiedOn time.Time
	var data json.RawMessage
	var deleted bool

	err := row.Scan(&alertID, &tenant, &sensorID, &kind, &severity, &status, &ruleID, &observedAt, &data, &createdOn, &modifiedOn, &deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Alert{}, ErrNoRows
		}
		return types.Alert{}, err
	}

	if deleted {
		return types.Alert{}, ErrDeleted
	}

	var alert types.Alert
	err = json.Unmarshal(data, &alert)
	if err != nil {
		return types.Alert{}, err
	}

	alert.ID = alertID
	alert.Tenant = tenant
	alert.Kind = kind
	alert.Severity = severity
	alert.Status = status
	alert.ObservedAt = observedAt
	alert.CreatedOn = createdOn
	alert.ModifiedOn = modifiedOn

	if sensorID != nil {
		alert.SensorID = *sensorID
	}
	if ruleID != nil {
		alert.RuleID = *ruleID
	}

	return alert, nil
}

func (s *Storage) GetAlert(ctx context.Context, conditions ...ConditionFunc) (types.Alert, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	// deleted rows are kept in the result so that a lookup of a removed
	// alert can be told apart from one that never existed
	condition.IncludeDeleted = true

	args := condition.NamedArgs()
	where := condition.Where()

	query := fmt.Sprintf(`
		SELECT alert_id, tenant, sensor_id, kind, severity, status, rule_id, observed_at, data, created_on, modified_on, deleted
		FROM alerts
		%s
		ORDER BY deleted ASC, deleted_on DESC
		LIMIT 1
	`, where)

	return scanAlert(s.db(ctx).QueryRow(ctx, query, args))
}

func (s *Storage) QueryAlerts(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Alert], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "observed_at"
		condition.sortOrder = "DESC"
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

	var alertID, tenant, kind, severity, status string
	var sensorID, ruleID *string
	var observedAt, createdOn, modifiedOn time.Time
	var data json.RawMessage
	var count int64

	query := fmt.Sprintf(`
		SELECT alert_id, tenant, sensor_id, kind, severity, status, rule_id, observed_at, data, created_on, modified_on, count(*) OVER () AS count
		FROM alerts
		%s
		ORDER BY %s %s
		%s
	`, where, condition.SortBy(), condition.SortOrder(), offsetLimit)

	rows, err := s.db(ctx).Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.Alert]{}, err
	}

	alerts := make([]types.Alert, 0)

	_, err = pgx.ForEachRow(rows, []any{&alertID, &tenant, &sensorID, &kind, &severity, &status, &ruleID, &observedAt, &data, &createdOn, &modifiedOn, &count}, func() error {
		var alert types.Alert

		err := json.Unmarshal(data, &alert)
		if err != nil {
			return err
		}

		alert.ID = alertID
		alert.Tenant = tenant
		alert.Kind = kind
		alert.Severity = severity
		alert.Status = status
		alert.ObservedAt = observedAt
		alert.CreatedOn = createdOn
		alert.ModifiedOn = modifiedOn

		if sensorID != nil {
			alert.SensorID = *sensorID
		}
		if ruleID != nil {
			alert.RuleID = *ruleID
		}

		alerts = append(alerts, alert)

		return nil
	})
	if err != nil {
		return types.Collection[types.Alert]{}, err
	}

	return types.Collection[types.Alert]{
		Data:       alerts,
		Count:      uint64(len(alerts)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}

// QueryAlertSummary aggregates alerts per sensor, returning the distinct
// alert kinds and the latest observation time for each sensor.
func (s *Storage) QueryAlertSummary(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.AlertSummaryItem], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
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

	var sensorID string
	var kinds []string
	var observedAt time.Time
	var count int64

	query := fmt.Sprintf(`
		SELECT COALESCE(sensor_id, '') AS sensor_id, array_agg(kind) AS kinds, max(observed_at) AS latest, count(*) OVER () AS count
		FROM alerts
		%s
		GROUP BY sensor_id
		ORDER BY latest DESC
		%s
	`, where, offsetLimit)

	rows, err := s.db(ctx).Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.AlertSummaryItem]{}, err
	}

	items := make([]types.AlertSummaryItem, 0)

	_, err = pgx.ForEachRow(rows, []any{&sensorID, &kinds, &observedAt, &count}, func() error {
		item := types.AlertSummaryItem{
			SensorID:   sensorID,
			Kinds:      unique(kinds),
			ObservedAt: observedAt,
		}
		slices.Sort(item.Kinds)

		items = append(items, item)

		return nil
	})
	if err != nil {
		return types.Collection[types.AlertSummaryItem]{}, err
	}

	return types.Collection[types.AlertSummaryItem]{
		Data:       items,
		Count:      uint64(len(items)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}

func (s *Storage) DeleteAlert(ctx context.Context, alertID, tenant string) error {
	_, err := s.db(ctx).Exec(ctx, `
		UPDATE alerts
		SET deleted = TRUE, deleted_on = CURRENT_TIMESTAMP
		WHERE alert_id = @alert_id AND tenant = @tenant AND deleted = FALSE
	`, pgx.NamedArgs{
		"alert_id": alertID,
		"tenant":   tenant,
	})
	if err != nil {
		return err
	}

	return nil
}
