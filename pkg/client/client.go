package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/diwise/water-monitoring/pkg/types"
)

var tracer = otel.Tracer("water-monitoring-client")

var ErrSensorNotFound = errors.New("sensor not found")

// Client lets sibling services resolve sensors and push readings without
// knowing the monitoring core's wire details.
type Client interface {
	FindSensorFromDeviceID(ctx context.Context, deviceID string) (types.Sensor, error)
	SendReading(ctx context.Context, deviceID, apiKey string, reading Reading) (ReadingResult, error)
	Close(ctx context.Context)
}

// Reading is the canonical payload accepted by the ingest endpoint.
type Reading struct {
	Timestamp      string         `json:"timestamp,omitempty"`
	Value          float64        `json:"value"`
	Unit           string         `json:"unit,omitempty"`
	Quality        *float64       `json:"quality,omitempty"`
	BatteryLevel   *int           `json:"battery_level,omitempty"`
	SignalStrength *int           `json:"signal_strength,omitempty"`
	RawData        map[string]any `json:"raw_data,omitempty"`
}

type ReadingResult struct {
	ReadingID    string   `json:"reading_id"`
	SensorID     string   `json:"sensor_id"`
	IsAnomaly    bool     `json:"is_anomaly"`
	AnomalyScore float64  `json:"anomaly_score"`
	AlertIDs     []string `json:"alert_ids"`
}

type monitoringClient struct {
	url        string
	httpClient http.Client

	tokenSource oauth2.TokenSource
	cancelToken context.CancelFunc
}

// New creates a client against the monitoring core at serviceURL. A non
// empty token url is exchanged for client credentials up front so that a
// misconfigured caller fails fast instead of on its first lookup.
func New(ctx context.Context, serviceURL, oauthTokenURL, oauthClientID, oauthClientSecret string) (Client, error) {
	c := &monitoringClient{
		url: strings.TrimSuffix(serviceURL, "/"),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	if oauthTokenURL != "" {
		oauthConfig := &clientcredentials.Config{
			ClientID:     oauthClientID,
			ClientSecret: oauthClientSecret,
			TokenURL:     oauthTokenURL,
		}

		// the token source must outlive the ctx that created the client
		tokenCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		c.cancelToken = cancel

		token, err := oauthConfig.Token(tokenCtx)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to get client credentials from %s: %w", oauthTokenURL, err)
		}

		if !token.Valid() {
			cancel()
			return nil, fmt.Errorf("an invalid token was returned from %s", oauthTokenURL)
		}

		c.tokenSource = oauthConfig.TokenSource(tokenCtx)
	}

	return c, nil
}

func (c *monitoringClient) Close(ctx context.Context) {
	if c.cancelToken != nil {
		c.cancelToken()
	}
}

func (c *monitoringClient) FindSensorFromDeviceID(ctx context.Context, deviceID string) (types.Sensor, error) {
	var err error
	ctx, span := tracer.Start(ctx, "find-sensor-from-device-id")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/api/v1/sensors/"+deviceID, nil)
	if err != nil {
		return types.Sensor{}, fmt.Errorf("failed to create http request: %w", err)
	}

	if err = c.authorize(req); err != nil {
		return types.Sensor{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Sensor{}, fmt.Errorf("failed to retrieve sensor information: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		err = ErrSensorNotFound
		return types.Sensor{}, err
	}

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("sensor lookup failed with status %d", resp.StatusCode)
		return types.Sensor{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Sensor{}, fmt.Errorf("failed to read response body: %w", err)
	}

	envelope := struct {
		Data types.Sensor `json:"data"`
	}{}

	err = json.Unmarshal(body, &envelope)
	if err != nil {
		return types.Sensor{}, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return envelope.Data, nil
}

func (c *monitoringClient) SendReading(ctx context.Context, deviceID, apiKey string, reading Reading) (ReadingResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "send-reading")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := json.Marshal(reading)
	if err != nil {
		return ReadingResult{}, fmt.Errorf("failed to marshal reading: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/ingest/sensors/%s/data", c.url, deviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ReadingResult{}, fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ReadingResult{}, fmt.Errorf("failed to send reading: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ReadingResult{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("reading rejected: %s", errorDetail(respBody, resp.StatusCode))
		return ReadingResult{}, err
	}

	result := ReadingResult{}
	err = json.Unmarshal(respBody, &result)
	if err != nil {
		return ReadingResult{}, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return result, nil
}

// authorize attaches the client credentials token when one is configured.
// The token source refreshes expired tokens on its own.
func (c *monitoringClient) authorize(req *http.Request) error {
	if c.tokenSource == nil {
		return nil
	}

	token, err := c.tokenSource.Token()
	if err != nil {
		return fmt.Errorf("failed to refresh client credentials: %w", err)
	}

	token.SetAuthHeader(req)

	return nil
}

func errorDetail(body []byte, statusCode int) string {
	detail := struct {
		Detail string `json:"detail"`
	}{}

	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return fmt.Sprintf("%s (status %d)", detail.Detail, statusCode)
	}

	return fmt.Sprintf("status %d", statusCode)
}
