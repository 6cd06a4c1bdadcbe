package alerts

import (
	"encoding/json"
	"time"

	"github.com/diwise/water-monitoring/pkg/types"
)

type AlertCreated struct {
	Alert     types.Alert `json:"alert"`
	Tenant    string      `json:"tenant"`
	Timestamp time.Time   `json:"timestamp"`
}

func (a *AlertCreated) ContentType() string {
	return "application/json"
}
func (a *AlertCreated) TopicName() string {
	return "alerts.alertCreated"
}
func (a *AlertCreated) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

type AlertStatusChanged struct {
	ID        string    `json:"id"`
	Tenant    string    `json:"tenant"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *AlertStatusChanged) ContentType() string {
	return "application/json"
}
func (a *AlertStatusChanged) TopicName() string {
	return "alerts.alertStatusChanged"
}
func (a *AlertStatusChanged) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}
