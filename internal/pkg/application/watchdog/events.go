package watchdog

import (
	"encoding/json"
	"time"
)

type SensorNotObserved struct {
	SensorID   string    `json:"sensorID"`
	DeviceID   string    `json:"deviceID"`
	Tenant     string    `json:"tenant"`
	ObservedAt time.Time `json:"observedAt"`
}

func (l *SensorNotObserved) ContentType() string {
	return "application/json"
}
func (l *SensorNotObserved) TopicName() string {
	return "watchdog.sensorNotObserved"
}
func (l *SensorNotObserved) Body() []byte {
	b, _ := json.Marshal(l)
	return b
}
