// Package gateway decodes readings relayed over the mobile network (sms,
// ussd and gprs) into the canonical ingest payload. All three channels are
// governed by the gsm protocol policy.
package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const Protocol = "gsm"

// ussd sessions are short codes on the *140* service
const ussdServiceCode = "140"

var ErrUnknownChannel = fmt.Errorf("unknown gateway channel")
var ErrBadMessage = fmt.Errorf("undecodable gateway message")

// channel reliability is reflected in the default quality score
const (
	qualitySMS  = 0.7
	qualityUSSD = 0.7
	qualityGPRS = 0.8
)

type Message struct {
	DeviceID string
	Payload  map[string]any
}

func Decode(channel string, body []byte) (Message, error) {
	switch channel {
	case "sms":
		return decodeSMS(body)
	case "ussd":
		return decodeUSSD(body)
	case "gprs":
		return decodeGPRS(body)
	}

	return Message{}, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
}

// decodeSMS parses "device_id,value[,unit[,battery_level]]".
func decodeSMS(body []byte) (Message, error) {
	fields := strings.Split(strings.TrimSpace(string(body)), ",")
	if len(fields) < 2 {
		return Message{}, fmt.Errorf("%w: expected device_id,value", ErrBadMessage)
	}

	deviceID := strings.TrimSpace(fields[0])
	if deviceID == "" {
		return Message{}, fmt.Errorf("%w: missing device id", ErrBadMessage)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return Message{}, fmt.Errorf("%w: bad value %q", ErrBadMessage, fields[1])
	}

	payload := map[string]any{
		"value":   value,
		"quality": qualitySMS,
	}

	if len(fields) > 2 {
		if unit := strings.TrimSpace(fields[2]); unit != "" {
			payload["unit"] = unit
		}
	}

	if len(fields) > 3 {
		battery, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			return Message{}, fmt.Errorf("%w: bad battery level %q", ErrBadMessage, fields[3])
		}
		payload["battery_level"] = battery
	}

	return Message{DeviceID: deviceID, Payload: payload}, nil
}

// decodeUSSD parses "*140*device_id*value#".
func decodeUSSD(body []byte) (Message, error) {
	session := strings.TrimSpace(string(body))

	if !strings.HasPrefix(session, "*") || !strings.HasSuffix(session, "#") {
		return Message{}, fmt.Errorf("%w: not a ussd session string", ErrBadMessage)
	}

	parts := strings.Split(strings.Trim(session, "*#"), "*")
	if len(parts) != 3 || parts[0] != ussdServiceCode {
		return Message{}, fmt.Errorf("%w: expected *%s*device_id*value#", ErrBadMessage, ussdServiceCode)
	}

	deviceID := parts[1]
	if deviceID == "" {
		return Message{}, fmt.Errorf("%w: missing device id", ErrBadMessage)
	}

	value, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Message{}, fmt.Errorf("%w: bad value %q", ErrBadMessage, parts[2])
	}

	return Message{
		DeviceID: deviceID,
		Payload: map[string]any{
			"value":   value,
			"quality": qualityUSSD,
		},
	}, nil
}

// decodeGPRS parses the compact JSON shape battery powered modems send to
// keep their airtime short.
func decodeGPRS(body []byte) (Message, error) {
	compact := struct {
		ID             string   `json:"id"`
		Value          *float64 `json:"v"`
		Timestamp      string   `json:"t"`
		Unit           string   `json:"u"`
		BatteryLevel   *int     `json:"b"`
		SignalStrength *int     `json:"s"`
	}{}

	err := json.Unmarshal(body, &compact)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %s", ErrBadMessage, err.Error())
	}

	if compact.ID == "" {
		return Message{}, fmt.Errorf("%w: missing device id", ErrBadMessage)
	}
	if compact.Value == nil {
		return Message{}, fmt.Errorf("%w: missing value", ErrBadMessage)
	}

	payload := map[string]any{
		"value":   *compact.Value,
		"quality": qualityGPRS,
	}

	if compact.Timestamp != "" {
		payload["timestamp"] = compact.Timestamp
	}
	if compact.Unit != "" {
		payload["unit"] = compact.Unit
	}
	if compact.BatteryLevel != nil {
		payload["battery_level"] = *compact.BatteryLevel
	}
	if compact.SignalStrength != nil {
		payload["signal_strength"] = *compact.SignalStrength
	}

	return Message{DeviceID: compact.ID, Payload: payload}, nil
}
