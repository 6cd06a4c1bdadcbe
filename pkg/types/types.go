package types

import (
	"time"
)

const (
	SensorStatusActive      = "active"
	SensorStatusInactive    = "inactive"
	SensorStatusMaintenance = "maintenance"
	SensorStatusFaulty      = "faulty"
)

type Sensor struct {
	ID          string `json:"id"`
	DeviceID    string `json:"deviceID"`
	Name        string `json:"name,omitzero"`
	Description string `json:"description,omitzero"`
	Tenant      string `json:"tenant"`
	PipelineID  string `json:"pipelineID,omitzero"`

	Kind     SensorKind `json:"kind"`
	Location Location   `json:"location"`

	Protocol        string `json:"protocol,omitzero"`
	Firmware        string `json:"firmware,omitzero"`
	BatteryLevel    int    `json:"batteryLevel,omitzero"`
	SignalStrength  int    `json:"signalStrength,omitzero"`
	IntervalSeconds int    `json:"intervalSeconds,omitzero"`

	LastReadingAt time.Time `json:"lastReadingAt,omitzero"`
	Status        string    `json:"status"`
}

type SensorKind struct {
	Code       string     `json:"code"`
	Name       string     `json:"name,omitzero"`
	Unit       string     `json:"unit,omitzero"`
	Thresholds Thresholds `json:"thresholds,omitzero"`
}

type Thresholds struct {
	MinValue        *float64 `json:"minValue,omitempty"`
	MaxValue        *float64 `json:"maxValue,omitempty"`
	MaxRateOfChange *float64 `json:"maxRateOfChange,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SensorReading struct {
	ID           string         `json:"id"`
	SensorID     string         `json:"sensorID"`
	DeviceID     string         `json:"deviceID"`
	Tenant       string         `json:"tenant"`
	Timestamp    time.Time      `json:"timestamp"`
	Value        float64        `json:"value"`
	Unit         string         `json:"unit,omitzero"`
	Raw          map[string]any `json:"rawData,omitzero"`
	Quality      float64        `json:"quality"`
	IsAnomaly    bool           `json:"isAnomaly"`
	AnomalyScore float64        `json:"anomalyScore,omitzero"`
	CreatedOn    time.Time      `json:"createdOn,omitzero"`
}

type DeviceCredential struct {
	SensorID string `json:"sensorID"`
	DeviceID string `json:"deviceID"`

	APIKey          string `json:"-"`
	CertPEM         string `json:"-"`
	CertFingerprint string `json:"certFingerprint,omitzero"`
	MqttUsername    string `json:"mqttUsername,omitzero"`
	MqttPassword    string `json:"-"`

	Active            bool       `json:"active"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	LastAuthenticated *time.Time `json:"lastAuthenticated,omitempty"`
}

const (
	AlertKindLeak                 = "leak"
	AlertKindBurst                = "burst"
	AlertKindPressureAnomaly      = "pressure_anomaly"
	AlertKindFlowIrregularity     = "flow_irregularity"
	AlertKindInfrastructureDamage = "infrastructure_damage"
	AlertKindSensorFault          = "sensor_fault"
	AlertKindCommunicationLoss    = "communication_loss"
	AlertKindCustom               = "custom"
)

const (
	SeverityInfo     = "info"
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

const (
	AlertStatusOpen          = "open"
	AlertStatusAcknowledged  = "acknowledged"
	AlertStatusInProgress    = "in_progress"
	AlertStatusResolved      = "resolved"
	AlertStatusClosed        = "closed"
	AlertStatusFalsePositive = "false_positive"
)

type Alert struct {
	ID         string `json:"id"`
	Tenant     string `json:"tenant"`
	SensorID   string `json:"sensorID,omitzero"`
	DeviceID   string `json:"deviceID,omitzero"`
	PipelineID string `json:"pipelineID,omitzero"`

	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Status   string `json:"status"`

	Title       string   `json:"title"`
	Description string   `json:"description,omitzero"`
	Location    Location `json:"location"`

	Value     *float64           `json:"value,omitempty"`
	Threshold map[string]float64 `json:"threshold,omitzero"`
	RuleID    string             `json:"ruleID,omitzero"`

	AcknowledgedBy string     `json:"acknowledgedBy,omitzero"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
	ResolvedBy     string     `json:"resolvedBy,omitzero"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
	Notes          []string   `json:"notes,omitzero"`

	Meta map[string]any `json:"meta,omitzero"`

	ObservedAt time.Time `json:"observedAt"`
	CreatedOn  time.Time `json:"createdOn,omitzero"`
	ModifiedOn time.Time `json:"modifiedOn,omitzero"`
}

const (
	CombinatorAll = "all"
	CombinatorAny = "any"
)

const (
	OperatorGreaterThan    = "gt"
	OperatorLessThan       = "lt"
	OperatorGreaterOrEqual = "gte"
	OperatorLessOrEqual    = "lte"
	OperatorEqual          = "eq"
	OperatorNotEqual       = "neq"
	OperatorRange          = "range"
	OperatorChangeRate     = "change_rate"
	OperatorDelta          = "delta"
)

type RulePredicate struct {
	Field    string  `json:"field,omitzero"`
	Operator string  `json:"operator"`
	Value    float64 `json:"value,omitzero"`
	Min      float64 `json:"min,omitzero"`
	Max      float64 `json:"max,omitzero"`
}

type DynamicRule struct {
	ID          string `json:"id"`
	Tenant      string `json:"tenant,omitzero"`
	SensorKind  string `json:"sensorKind,omitzero"`
	Name        string `json:"name"`
	Description string `json:"description,omitzero"`

	Predicates []RulePredicate `json:"predicates"`
	Combinator string          `json:"combinator"`

	AlertKind     string `json:"alertKind"`
	AlertSeverity string `json:"alertSeverity"`
	Template      string `json:"template,omitzero"`

	Priority        int  `json:"priority"`
	CooldownSeconds int  `json:"cooldownSeconds,omitzero"`
	Active          bool `json:"active"`

	CreatedOn  time.Time `json:"createdOn,omitzero"`
	ModifiedOn time.Time `json:"modifiedOn,omitzero"`
}

type AuditEntry struct {
	ID           string         `json:"id"`
	Actor        string         `json:"actor,omitzero"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceID,omitzero"`
	Description  string         `json:"description,omitzero"`
	SourceAddr   string         `json:"sourceAddr,omitzero"`
	UserAgent    string         `json:"userAgent,omitzero"`
	Changes      map[string]any `json:"changes,omitzero"`
	Meta         map[string]any `json:"meta,omitzero"`
	ObservedAt   time.Time      `json:"observedAt"`
}

type ProtocolPolicy struct {
	Protocol   string         `json:"protocol"`
	Tenant     string         `json:"tenant,omitzero"`
	Enabled    bool           `json:"enabled"`
	Settings   map[string]any `json:"settings,omitzero"`
	ModifiedOn time.Time      `json:"modifiedOn,omitzero"`
}

type AlertSummaryItem struct {
	SensorID   string    `json:"sensorID"`
	Kinds      []string  `json:"kinds"`
	ObservedAt time.Time `json:"observedAt"`
}

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}

type Bounds struct {
	MinLon float64
	MaxLon float64
	MinLat float64
	MaxLat float64
}

type StatusMessage struct {
	DeviceID string `json:"deviceID"`

	BatteryLevel   *float64 `json:"batteryLevel,omitempty"`
	SignalStrength *float64 `json:"signalStrength,omitempty"`
	Firmware       *string  `json:"firmware,omitempty"`

	Code     *string  `json:"statusCode,omitempty"`
	Messages []string `json:"statusMessages,omitempty"`

	Tenant    string    `json:"tenant"`
	Timestamp time.Time `json:"timestamp"`
}
