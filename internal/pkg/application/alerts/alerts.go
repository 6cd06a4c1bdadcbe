package alerts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/google/uuid"
)

var ErrAlertNotFound = fmt.Errorf("alert not found")
var ErrInvalidTransition = fmt.Errorf("invalid alert status transition")

const defaultCooldown = 300 * time.Second

// silence alerts re-fire on the watchdog's schedule, not the default window
const silenceCooldown = time.Hour

//go:generate moq -rm -out alertservice_mock.go . AlertService
type AlertService interface {
	FromAnomaly(ctx context.Context, sensor types.Sensor, reading types.SensorReading, score float64, reasons []string) *types.Alert
	FromRule(ctx context.Context, sensor types.Sensor, reading types.SensorReading, rule types.DynamicRule) *types.Alert
	FromSilence(ctx context.Context, sensor types.Sensor, lastSeen time.Time) *types.Alert

	Add(ctx context.Context, alert types.Alert) error
	PublishCreated(ctx context.Context, alert types.Alert) error
	UpdateStatus(ctx context.Context, alertID, tenant, status, actor, note string) (types.Alert, error)

	Get(ctx context.Context, alertID string, tenants []string) (types.Alert, error)
	Query(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.Alert], error)
	Summary(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.AlertSummaryItem], error)
	Delete(ctx context.Context, alertID, tenant string) error
}

//go:generate moq -rm -out alertstorage_mock.go . AlertStorage
type AlertStorage interface {
	AddAlert(ctx context.Context, alert types.Alert) error
	UpdateAlert(ctx context.Context, alert types.Alert) error
	GetAlert(ctx context.Context, conditions ...storage.ConditionFunc) (types.Alert, error)
	QueryAlerts(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Alert], error)
	QueryAlertSummary(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlertSummaryItem], error)
	DeleteAlert(ctx context.Context, alertID, tenant string) error
}

type alertSvc struct {
	storage   AlertStorage
	messenger messaging.MsgContext

	mu      sync.Mutex
	nextDue map[string]time.Time
	nowFunc func() time.Time
}

func New(s AlertStorage, m messaging.MsgContext) AlertService {
	return &alertSvc{
		storage:   s,
		messenger: m,
		nextDue:   map[string]time.Time{},
		nowFunc:   time.Now,
	}
}

// withinCooldown reports whether an alert for the key may be created now and
// arms the next window when it may. The mapping is process local.
func (svc *alertSvc) withinCooldown(key string, cooldown time.Duration) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	now := svc.nowFunc()

	if due, ok := svc.nextDue[key]; ok && now.Before(due) {
		return true
	}

	svc.nextDue[key] = now.Add(cooldown)
	return false
}

func cooldownKey(sensorID, qualifier string) string {
	return sensorID + "|" + qualifier
}

// FromAnomaly builds an alert for a flagged reading, or nil when one for the
// same sensor and kind was created too recently. The reasons name the
// detector checks that fired and are kept on the alert for triage.
func (svc *alertSvc) FromAnomaly(ctx context.Context, sensor types.Sensor, reading types.SensorReading, score float64, reasons []string) *types.Alert {
	kind := kindForSensor(sensor.Kind.Code)

	if svc.withinCooldown(cooldownKey(sensor.ID, kind), defaultCooldown) {
		return nil
	}

	value := reading.Value

	meta := map[string]any{"anomalyScore": score}
	if len(reasons) > 0 {
		meta["checks"] = reasons
	}

	return &types.Alert{
		ID:          uuid.NewString(),
		Tenant:      sensor.Tenant,
		SensorID:    sensor.ID,
		DeviceID:    sensor.DeviceID,
		PipelineID:  sensor.PipelineID,
		Kind:        kind,
		Severity:    severityFromScore(score),
		Status:      types.AlertStatusOpen,
		Title:       fmt.Sprintf("Anomalous reading from %s", sensor.DeviceID),
		Description: fmt.Sprintf("value %g %s deviates from the recent pattern (score %.2f)", reading.Value, reading.Unit, score),
		Location:    sensor.Location,
		Value:       &value,
		Threshold:   thresholdSnapshot(sensor.Kind.Thresholds),
		Meta:        meta,
		ObservedAt:  reading.Timestamp,
	}
}

// FromRule builds an alert for a matched rule, or nil within the rule's
// cooldown window.
func (svc *alertSvc) FromRule(ctx context.Context, sensor types.Sensor, reading types.SensorReading, rule types.DynamicRule) *types.Alert {
	cooldown := defaultCooldown
	if rule.CooldownSeconds > 0 {
		cooldown = time.Duration(rule.CooldownSeconds) * time.Second
	}

	if svc.withinCooldown(cooldownKey(sensor.ID, "rule:"+rule.ID), cooldown) {
		return nil
	}

	kind := rule.AlertKind
	if kind == "" {
		kind = types.AlertKindCustom
	}

	severity := rule.AlertSeverity
	if severity == "" {
		severity = types.SeverityMedium
	}

	title := renderTemplate(rule.Template, sensor, reading)
	if title == "" {
		title = fmt.Sprintf("Rule %s matched on %s", rule.Name, sensor.DeviceID)
	}

	value := reading.Value

	return &types.Alert{
		ID:          uuid.NewString(),
		Tenant:      sensor.Tenant,
		SensorID:    sensor.ID,
		DeviceID:    sensor.DeviceID,
		PipelineID:  sensor.PipelineID,
		Kind:        kind,
		Severity:    severity,
		Status:      types.AlertStatusOpen,
		Title:       title,
		Description: rule.Description,
		Location:    sensor.Location,
		Value:       &value,
		RuleID:      rule.ID,
		ObservedAt:  reading.Timestamp,
	}
}

// FromSilence builds a communication loss alert for a sensor that has not
// reported within its expected interval.
func (svc *alertSvc) FromSilence(ctx context.Context, sensor types.Sensor, lastSeen time.Time) *types.Alert {
	if svc.withinCooldown(cooldownKey(sensor.ID, types.AlertKindCommunicationLoss), silenceCooldown) {
		return nil
	}

	description := fmt.Sprintf("no readings received from %s since %s", sensor.DeviceID, lastSeen.UTC().Format(time.RFC3339))
	if lastSeen.IsZero() {
		description = fmt.Sprintf("no readings have ever been received from %s", sensor.DeviceID)
	}

	// three or more missed reporting intervals escalate the severity
	severity := types.SeverityMedium
	if interval := time.Duration(sensor.IntervalSeconds) * time.Second; interval > 0 {
		if lastSeen.IsZero() || svc.nowFunc().Sub(lastSeen) >= 3*interval {
			severity = types.SeverityHigh
		}
	}

	return &types.Alert{
		ID:          uuid.NewString(),
		Tenant:      sensor.Tenant,
		SensorID:    sensor.ID,
		DeviceID:    sensor.DeviceID,
		PipelineID:  sensor.PipelineID,
		Kind:        types.AlertKindCommunicationLoss,
		Severity:    severity,
		Status:      types.AlertStatusOpen,
		Title:       fmt.Sprintf("Sensor %s has gone silent", sensor.DeviceID),
		Description: description,
		Location:    sensor.Location,
		ObservedAt:  svc.nowFunc().UTC(),
	}
}

func (svc *alertSvc) Add(ctx context.Context, alert types.Alert) error {
	if alert.Tenant == "" {
		return storage.ErrMissingTenant
	}
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.Status == "" {
		alert.Status = types.AlertStatusOpen
	}
	if alert.ObservedAt.IsZero() {
		alert.ObservedAt = svc.nowFunc().UTC()
	}

	return svc.storage.AddAlert(ctx, alert)
}

// PublishCreated notifies downstream consumers over the message broker. It
// is separate from Add so that callers can publish after their transaction
// has committed.
func (svc *alertSvc) PublishCreated(ctx context.Context, alert types.Alert) error {
	return svc.messenger.PublishOnTopic(ctx, &AlertCreated{
		Alert:     alert,
		Tenant:    alert.Tenant,
		Timestamp: alert.ObservedAt,
	})
}

func (svc *alertSvc) UpdateStatus(ctx context.Context, alertID, tenant, status, actor, note string) (types.Alert, error) {
	alert, err := svc.storage.GetAlert(ctx, storage.WithAlertID(alertID), storage.WithTenant(tenant))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) || errors.Is(err, storage.ErrDeleted) {
			return types.Alert{}, ErrAlertNotFound
		}
		return types.Alert{}, err
	}

	if !transitionAllowed(alert.Status, status) {
		return types.Alert{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, alert.Status, status)
	}

	now := svc.nowFunc().UTC()

	alert.Status = status

	switch status {
	case types.AlertStatusAcknowledged:
		alert.AcknowledgedBy = actor
		alert.AcknowledgedAt = &now
	case types.AlertStatusResolved:
		alert.ResolvedBy = actor
		alert.ResolvedAt = &now
	}

	if note != "" {
		alert.Notes = append(alert.Notes, fmt.Sprintf("%s %s: %s", now.Format(time.RFC3339), actor, note))
	}

	err = svc.storage.UpdateAlert(ctx, alert)
	if err != nil {
		return types.Alert{}, err
	}

	err = svc.messenger.PublishOnTopic(ctx, &AlertStatusChanged{
		ID:        alert.ID,
		Tenant:    alert.Tenant,
		Status:    alert.Status,
		Timestamp: now,
	})
	if err != nil {
		return types.Alert{}, err
	}

	return alert, nil
}

func (svc *alertSvc) Get(ctx context.Context, alertID string, tenants []string) (types.Alert, error) {
	alert, err := svc.storage.GetAlert(ctx, storage.WithAlertID(alertID), storage.WithTenants(tenants))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) || errors.Is(err, storage.ErrDeleted) {
			return types.Alert{}, ErrAlertNotFound
		}
		return types.Alert{}, err
	}

	return alert, nil
}

func (svc *alertSvc) Query(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.Alert], error) {
	conditions := storage.ParseConditions(ctx, params)
	conditions = append(conditions, storage.WithTenants(tenants))

	return svc.storage.QueryAlerts(ctx, conditions...)
}

func (svc *alertSvc) Summary(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.AlertSummaryItem], error) {
	conditions := storage.ParseConditions(ctx, params)
	conditions = append(conditions, storage.WithTenants(tenants))

	return svc.storage.QueryAlertSummary(ctx, conditions...)
}

func (svc *alertSvc) Delete(ctx context.Context, alertID, tenant string) error {
	return svc.storage.DeleteAlert(ctx, alertID, tenant)
}

var statusRank = map[string]int{
	types.AlertStatusOpen:         0,
	types.AlertStatusAcknowledged: 1,
	types.AlertStatusInProgress:   2,
	types.AlertStatusResolved:     3,
	types.AlertStatusClosed:       4,
}

// transitionAllowed enforces the status chain. The chain only moves forward,
// steps may be skipped, and closed and false positive alerts stay that way.
// Marking as false positive is only possible while the alert is still open.
func transitionAllowed(current, next string) bool {
	if current == types.AlertStatusClosed || current == types.AlertStatusFalsePositive {
		return false
	}

	if next == types.AlertStatusFalsePositive {
		return current == types.AlertStatusOpen
	}

	currentRank, ok := statusRank[current]
	if !ok {
		return false
	}

	nextRank, ok := statusRank[next]
	if !ok {
		return false
	}

	return nextRank > currentRank
}

func kindForSensor(kindCode string) string {
	code := strings.ToLower(kindCode)

	switch {
	case strings.Contains(code, "pressure"):
		return types.AlertKindPressureAnomaly
	case strings.Contains(code, "flow"):
		return types.AlertKindFlowIrregularity
	case strings.Contains(code, "leak"):
		return types.AlertKindLeak
	case strings.Contains(code, "burst"):
		return types.AlertKindBurst
	}

	return types.AlertKindCustom
}

func severityFromScore(score float64) string {
	switch {
	case score >= 0.9:
		return types.SeverityCritical
	case score >= 0.7:
		return types.SeverityHigh
	case score >= 0.5:
		return types.SeverityMedium
	case score >= 0.3:
		return types.SeverityLow
	}

	return types.SeverityInfo
}

func thresholdSnapshot(t types.Thresholds) map[string]float64 {
	snapshot := map[string]float64{}

	if t.MinValue != nil {
		snapshot["min_value"] = *t.MinValue
	}
	if t.MaxValue != nil {
		snapshot["max_value"] = *t.MaxValue
	}
	if t.MaxRateOfChange != nil {
		snapshot["max_rate_of_change"] = *t.MaxRateOfChange
	}

	if len(snapshot) == 0 {
		return nil
	}

	return snapshot
}

func renderTemplate(template string, sensor types.Sensor, reading types.SensorReading) string {
	if template == "" {
		return ""
	}

	r := strings.NewReplacer(
		"{value}", strconv.FormatFloat(reading.Value, 'f', -1, 64),
		"{unit}", reading.Unit,
		"{device_id}", sensor.DeviceID,
		"{sensor_id}", sensor.ID,
		"{name}", sensor.Name,
		"{kind}", sensor.Kind.Code,
	)

	return r.Replace(template)
}
