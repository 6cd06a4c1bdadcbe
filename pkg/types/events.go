package types

import "time"

const (
	EventTypeSensorReading = "sensor_reading"
	EventTypeAlert         = "alert"
	EventTypeIncident      = "incident"
	EventTypeSystemUpdate  = "system_update"
)

// EventScopeGlobal collects events from every tenant so that operators
// with cross tenant access can follow a single stream.
const EventScopeGlobal = "global"

type Event struct {
	Type      string    `json:"type"`
	Tenant    string    `json:"tenant,omitzero"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type SensorCreated struct {
	SensorID  string    `json:"sensorID"`
	DeviceID  string    `json:"deviceID"`
	Tenant    string    `json:"tenant,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *SensorCreated) ContentType() string {
	return "application/json"
}
func (s *SensorCreated) TopicName() string {
	return "sensor.created"
}

type SensorUpdated struct {
	SensorID  string    `json:"sensorID"`
	DeviceID  string    `json:"deviceID"`
	Tenant    string    `json:"tenant,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *SensorUpdated) ContentType() string {
	return "application/json"
}
func (s *SensorUpdated) TopicName() string {
	return "sensor.updated"
}

type SensorStatusUpdated struct {
	SensorID  string    `json:"sensorID"`
	DeviceID  string    `json:"deviceID"`
	Status    string    `json:"status"`
	Tenant    string    `json:"tenant,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *SensorStatusUpdated) ContentType() string {
	return "application/json"
}
func (s *SensorStatusUpdated) TopicName() string {
	return "sensor.statusUpdated"
}
