package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	test "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

func TestFindSensorFromDeviceID(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v1/sensors/w-0042"),
			expects.RequestMethod("GET"),
		),
		test.Returns(
			response.Code(http.StatusOK),
			response.ContentType("application/json"),
			response.Body([]byte(sensorResponse)),
		),
	)
	defer mockedService.Close()

	ctx := context.Background()

	client, err := New(ctx, mockedService.URL(), "", "", "")
	is.NoErr(err)
	defer client.Close(ctx)

	sensor, err := client.FindSensorFromDeviceID(ctx, "w-0042")
	is.NoErr(err)

	is.Equal(sensor.ID, "sensor-01")
	is.Equal(sensor.DeviceID, "w-0042")
	is.Equal(sensor.Kind.Code, "pressure")
	is.Equal(sensor.Kind.Unit, "bar")
	is.Equal(sensor.Tenant, "default")
}

func TestFindSensorFromUnknownDeviceID(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v1/sensors/w-9999"),
		),
		test.Returns(
			response.Code(http.StatusNotFound),
			response.ContentType("application/json"),
			response.Body([]byte(`{"detail":"no such sensor"}`)),
		),
	)
	defer mockedService.Close()

	ctx := context.Background()

	client, err := New(ctx, mockedService.URL(), "", "", "")
	is.NoErr(err)
	defer client.Close(ctx)

	_, err = client.FindSensorFromDeviceID(ctx, "w-9999")
	is.True(errors.Is(err, ErrSensorNotFound))
}

func TestTokenIsExchangedAndAttachedToRequests(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v1/sensors/w-0042"),
			expects.RequestHeaderContains("Authorization", "Bearer testtoken"),
		),
		test.Returns(
			response.Code(http.StatusOK),
			response.ContentType("application/json"),
			response.Body([]byte(sensorResponse)),
		),
	)
	defer mockedService.Close()

	mockOAuth := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/token"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(TokenResponse)),
		),
	)
	defer mockOAuth.Close()

	ctx := context.Background()

	client, err := New(ctx, mockedService.URL(), mockOAuth.URL()+"/token", "", "")
	is.NoErr(err)
	defer client.Close(ctx)

	_, err = client.FindSensorFromDeviceID(ctx, "w-0042")
	is.NoErr(err)
}

func TestSendReading(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v1/ingest/sensors/w-0042/data"),
			expects.RequestMethod("POST"),
			expects.RequestHeaderContains("Content-Type", "application/json"),
			expects.RequestHeaderContains("Authorization", "Bearer a-valid-key"),
			expects.RequestBodyContaining(`"value":4.2`, `"unit":"bar"`),
		),
		test.Returns(
			response.Code(http.StatusOK),
			response.ContentType("application/json"),
			response.Body([]byte(`{"reading_id":"reading-01","sensor_id":"sensor-01","is_anomaly":false,"anomaly_score":0.04,"alert_ids":[]}`)),
		),
	)
	defer mockedService.Close()

	ctx := context.Background()

	client, err := New(ctx, mockedService.URL(), "", "", "")
	is.NoErr(err)
	defer client.Close(ctx)

	result, err := client.SendReading(ctx, "w-0042", "a-valid-key", Reading{
		Value: 4.2,
		Unit:  "bar",
	})
	is.NoErr(err)

	is.Equal(result.ReadingID, "reading-01")
	is.Equal(result.SensorID, "sensor-01")
	is.Equal(result.IsAnomaly, false)
}

func TestSendReadingReportsAnomalies(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v1/ingest/sensors/w-0042/data"),
		),
		test.Returns(
			response.Code(http.StatusOK),
			response.ContentType("application/json"),
			response.Body([]byte(`{"reading_id":"reading-02","sensor_id":"sensor-01","is_anomaly":true,"anomaly_score":0.97,"alert_ids":["alert-01"]}`)),
		),
	)
	defer mockedService.Close()

	ctx := context.Background()

	client, err := New(ctx, mockedService.URL(), "", "", "")
	is.NoErr(err)
	defer client.Close(ctx)

	result, err := client.SendReading(ctx, "w-0042", "a-valid-key", Reading{Value: 11.9})
	is.NoErr(err)

	is.True(result.IsAnomaly)
	is.Equal(len(result.AlertIDs), 1)
	is.Equal(result.AlertIDs[0], "alert-01")
}

func TestRejectedReadingsIncludeTheServerDetail(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v1/ingest/sensors/w-0042/data"),
		),
		test.Returns(
			response.Code(http.StatusForbidden),
			response.ContentType("application/json"),
			response.Body([]byte(`{"detail":"protocol is disabled: http"}`)),
		),
	)
	defer mockedService.Close()

	ctx := context.Background()

	client, err := New(ctx, mockedService.URL(), "", "", "")
	is.NoErr(err)
	defer client.Close(ctx)

	_, err = client.SendReading(ctx, "w-0042", "a-revoked-key", Reading{Value: 4.2})
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "protocol is disabled: http"))
}

func TestNewFailsFastWhenTheTokenEndpointIsDown(t *testing.T) {
	is := is.New(t)

	mockOAuth := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/token"),
		),
		test.Returns(
			response.Code(http.StatusInternalServerError),
		),
	)
	defer mockOAuth.Close()

	ctx := context.Background()

	_, err := New(ctx, "http://localhost", mockOAuth.URL()+"/token", "", "")
	is.True(err != nil)
}

const sensorResponse string = `{"data":{"id":"sensor-01","deviceID":"w-0042","name":"pressure north trunk","tenant":"default","kind":{"code":"pressure","unit":"bar","thresholds":{"minValue":2.5,"maxValue":6}},"location":{"latitude":62.389826,"longitude":17.306927},"status":"active"}}`

const TokenResponse string = `{"access_token":"testtoken","expires_in":300,"refresh_expires_in":0,"token_type":"Bearer","not-before-policy":0,"scope":"email profile"}`
