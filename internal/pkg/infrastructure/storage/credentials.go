package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddCredential(ctx context.Context, credential types.DeviceCredential) error {
	if credential.SensorID == "" || credential.DeviceID == "" {
		return ErrNoID
	}

	args := pgx.NamedArgs{
		"sensor_id":        credential.SensorID,
		"device_id":        credential.DeviceID,
		"api_key":          credential.APIKey,
		"cert_pem":         credential.CertPEM,
		"cert_fingerprint": credential.CertFingerprint,
		"mqtt_username":    credential.MqttUsername,
		"mqtt_password":    credential.MqttPassword,
		"active":           credential.Active,
		"expires_at":       credential.ExpiresAt,
	}

	_, err := s.db(ctx).Exec(ctx, `
		INSERT INTO device_credentials (sensor_id, device_id, api_key, cert_pem, cert_fingerprint, mqtt_username, mqtt_password, active, expires_at)
		VALUES (@sensor_id, @device_id, @api_key, @cert_pem, @cert_fingerprint, @mqtt_username, @mqtt_password, @active, @expires_at)
		ON CONFLICT (sensor_id) DO UPDATE
		SET api_key = EXCLUDED.api_key,
			cert_pem = EXCLUDED.cert_pem,
			cert_fingerprint = EXCLUDED.cert_fingerprint,
			mqtt_username = EXCLUDED.mqtt_username,
			mqtt_password = EXCLUDED.mqtt_password,
			active = EXCLUDED.active,
			expires_at = EXCLUDED.expires_at,
			modified_on = CURRENT_TIMESTAMP
	`, args)
	if err != nil {
		return err
	}

	return nil
}

func scanCredential(row pgx.Row) (types.DeviceCredential, error) {
	var sensorID, deviceID string
	var apiKey, certPEM, certFingerprint, mqttUsername, mqttPassword *string
	var active bool
	var expiresAt, lastAuthenticated *time.Time

	err := row.Scan(&sensorID, &deviceID, &apiKey, &certPEM, &certFingerprint, &mqttUsername, &mqttPassword, &active, &expiresAt, &lastAuthenticated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.DeviceCredential{}, ErrNoRows
		}
		return types.DeviceCredential{}, err
	}

	credential := types.DeviceCredential{
		SensorID:          sensorID,
		DeviceID:          deviceID,
		Active:            active,
		ExpiresAt:         expiresAt,
		LastAuthenticated: lastAuthenticated,
	}

	if apiKey != nil {
		credential.APIKey = *apiKey
	}
	if certPEM != nil {
		credential.CertPEM = *certPEM
	}
	if certFingerprint != nil {
		credential.CertFingerprint = *certFingerprint
	}
	if mqttUsername != nil {
		credential.MqttUsername = *mqttUsername
	}
	if mqttPassword != nil {
		credential.MqttPassword = *mqttPassword
	}

	return credential, nil
}

const credentialColumns = "sensor_id, device_id, api_key, cert_pem, cert_fingerprint, mqtt_username, mqtt_password, active, expires_at, last_authenticated"

func (s *Storage) GetCredentialByDeviceID(ctx context.Context, deviceID string) (types.DeviceCredential, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM device_credentials
		WHERE device_id = @device_id
	`, credentialColumns)

	return scanCredential(s.db(ctx).QueryRow(ctx, query, pgx.NamedArgs{"device_id": deviceID}))
}

func (s *Storage) GetCredential(ctx context.Context, sensorID string) (types.DeviceCredential, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM device_credentials
		WHERE sensor_id = @sensor_id
	`, credentialColumns)

	return scanCredential(s.db(ctx).QueryRow(ctx, query, pgx.NamedArgs{"sensor_id": sensorID}))
}

func (s *Storage) SetCredentialActive(ctx context.Context, sensorID string, active bool) error {
	_, err := s.db(ctx).Exec(ctx, `
		UPDATE device_credentials
		SET active = @active, modified_on = CURRENT_TIMESTAMP
		WHERE sensor_id = @sensor_id
	`, pgx.NamedArgs{
		"sensor_id": sensorID,
		"active":    active,
	})
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) TouchCredential(ctx context.Context, sensorID string, at time.Time) error {
	_, err := s.db(ctx).Exec(ctx, `
		UPDATE device_credentials
		SET last_authenticated = @at
		WHERE sensor_id = @sensor_id
	`, pgx.NamedArgs{
		"sensor_id": sensorID,
		"at":        at.UTC(),
	})
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) DeleteCredential(ctx context.Context, sensorID string) error {
	_, err := s.db(ctx).Exec(ctx, `
		DELETE FROM device_credentials
		WHERE sensor_id = @sensor_id
	`, pgx.NamedArgs{
		"sensor_id": sensorID,
	})
	if err != nil {
		return err
	}

	return nil
}
