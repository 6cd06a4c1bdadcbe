package credentials

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/subtle"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"golang.org/x/crypto/bcrypt"
)

var ErrNotFound = fmt.Errorf("no credentials registered for device")
var ErrAlreadyExist = fmt.Errorf("credentials already registered for sensor")
var ErrInactive = fmt.Errorf("credentials are deactivated")
var ErrExpired = fmt.Errorf("credentials have expired")
var ErrInvalid = fmt.Errorf("invalid credentials")
var ErrMissingKind = fmt.Errorf("no credential of requested kind")
var ErrMissingAPIKey = fmt.Errorf("api key required but not presented")
var ErrUnknownMethod = fmt.Errorf("unknown credential method")

const (
	MethodAPIKey       = "api_key"
	MethodCertificate  = "certificate"
	MethodMqttPassword = "mqtt_password"
)

// Registration carries the secret material produced when credentials are
// registered or rotated. It is returned exactly once and never stored in
// clear text.
type Registration struct {
	SensorID string `json:"sensorID"`
	DeviceID string `json:"deviceID"`
	Method   string `json:"method"`

	APIKey         string `json:"apiKey,omitzero"`
	MqttUsername   string `json:"mqttUsername,omitzero"`
	MqttPassword   string `json:"mqttPassword,omitzero"`
	CertificatePEM string `json:"certificatePem,omitzero"`
	PrivateKeyPEM  string `json:"privateKeyPem,omitzero"`
	Fingerprint    string `json:"fingerprint,omitzero"`

	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Presented holds whatever credential material arrived with a reading.
type Presented struct {
	APIKey                 string `json:"api_key,omitempty"`
	MqttPassword           string `json:"mqtt_password,omitempty"`
	CertificateFingerprint string `json:"certificate_fingerprint,omitempty"`
}

func (p Presented) Empty() bool {
	return p.APIKey == "" && p.MqttPassword == "" && p.CertificateFingerprint == ""
}

//go:generate moq -rm -out devicecredentials_mock.go . DeviceCredentials
type DeviceCredentials interface {
	Register(ctx context.Context, sensorID, deviceID, method, material string) (Registration, error)
	Verify(ctx context.Context, deviceID, kind, presented string) error
	Authenticate(ctx context.Context, deviceID string, presented Presented, enforceKey bool) (types.DeviceCredential, error)

	RefreshAPIKey(ctx context.Context, deviceID string) (Registration, error)
	GenerateCertificate(ctx context.Context, deviceID, commonName string, validityDays int) (Registration, error)

	Deactivate(ctx context.Context, deviceID string) error
	Reactivate(ctx context.Context, deviceID string) error

	Get(ctx context.Context, sensorID string) (types.DeviceCredential, error)
	Touch(ctx context.Context, sensorID string, at time.Time) error
	Remove(ctx context.Context, sensorID string) error
}

//go:generate moq -rm -out credentialstorage_mock.go . CredentialStorage
type CredentialStorage interface {
	AddCredential(ctx context.Context, credential types.DeviceCredential) error
	GetCredential(ctx context.Context, sensorID string) (types.DeviceCredential, error)
	GetCredentialByDeviceID(ctx context.Context, deviceID string) (types.DeviceCredential, error)
	SetCredentialActive(ctx context.Context, sensorID string, active bool) error
	TouchCredential(ctx context.Context, sensorID string, at time.Time) error
	DeleteCredential(ctx context.Context, sensorID string) error
}

type service struct {
	storage CredentialStorage
	nowFunc func() time.Time
}

func New(storage CredentialStorage) DeviceCredentials {
	return &service{
		storage: storage,
		nowFunc: time.Now,
	}
}

func (s *service) Register(ctx context.Context, sensorID, deviceID, method, material string) (Registration, error) {
	_, err := s.storage.GetCredential(ctx, sensorID)
	if err == nil {
		return Registration{}, ErrAlreadyExist
	}
	if !errors.Is(err, storage.ErrNoRows) {
		return Registration{}, err
	}

	credential := types.DeviceCredential{
		SensorID: sensorID,
		DeviceID: deviceID,
		Active:   true,
	}

	registration := Registration{
		SensorID: sensorID,
		DeviceID: deviceID,
		Method:   method,
	}

	switch method {
	case MethodAPIKey:
		key := material
		if key == "" {
			key, err = newAPIKey()
			if err != nil {
				return Registration{}, err
			}
		}
		credential.APIKey = digest(key)
		registration.APIKey = key

	case MethodMqttPassword:
		password := material
		if password == "" {
			password, err = newAPIKey()
			if err != nil {
				return Registration{}, err
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return Registration{}, err
		}

		credential.MqttUsername = deviceID
		credential.MqttPassword = string(hash)
		registration.MqttUsername = deviceID
		registration.MqttPassword = password

	case MethodCertificate:
		if material == "" {
			return Registration{}, fmt.Errorf("certificate material is required")
		}

		fingerprint, err := fingerprintPEM(material)
		if err != nil {
			return Registration{}, err
		}

		credential.CertPEM = material
		credential.CertFingerprint = fingerprint
		registration.CertificatePEM = material
		registration.Fingerprint = fingerprint

	default:
		return Registration{}, ErrUnknownMethod
	}

	err = s.storage.AddCredential(ctx, credential)
	if err != nil {
		return Registration{}, err
	}

	return registration, nil
}

func (s *service) get(ctx context.Context, deviceID string) (types.DeviceCredential, error) {
	credential, err := s.storage.GetCredentialByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.DeviceCredential{}, ErrNotFound
		}
		return types.DeviceCredential{}, err
	}

	if !credential.Active {
		return types.DeviceCredential{}, ErrInactive
	}

	if credential.ExpiresAt != nil && credential.ExpiresAt.Before(s.nowFunc()) {
		return types.DeviceCredential{}, ErrExpired
	}

	return credential, nil
}

func verifyKind(credential types.DeviceCredential, kind, presented string) error {
	switch kind {
	case MethodAPIKey:
		if credential.APIKey == "" {
			return ErrMissingKind
		}
		if subtle.ConstantTimeCompare([]byte(credential.APIKey), []byte(digest(presented))) != 1 {
			return ErrInvalid
		}
	case MethodCertificate:
		if credential.CertFingerprint == "" {
			return ErrMissingKind
		}
		if subtle.ConstantTimeCompare([]byte(normalizeFingerprint(credential.CertFingerprint)), []byte(normalizeFingerprint(presented))) != 1 {
			return ErrInvalid
		}
	case MethodMqttPassword:
		if credential.MqttPassword == "" {
			return ErrMissingKind
		}
		if bcrypt.CompareHashAndPassword([]byte(credential.MqttPassword), []byte(presented)) != nil {
			return ErrInvalid
		}
	default:
		return ErrUnknownMethod
	}

	return nil
}

// Verify checks a single presented credential against the stored record and
// records the authentication time on success.
func (s *service) Verify(ctx context.Context, deviceID, kind, presented string) error {
	credential, err := s.get(ctx, deviceID)
	if err != nil {
		return err
	}

	err = verifyKind(credential, kind, presented)
	if err != nil {
		return err
	}

	return s.storage.TouchCredential(ctx, credential.SensorID, s.nowFunc())
}

// Authenticate performs the credential part of the ingestion contract: the
// record must exist, be active and unexpired, every presented credential
// must verify, and at least one must verify when any material is presented.
// Unlike Verify it has no side effects, so that the caller can defer the
// last_authenticated bump to its own transaction.
func (s *service) Authenticate(ctx context.Context, deviceID string, presented Presented, enforceKey bool) (types.DeviceCredential, error) {
	credential, err := s.get(ctx, deviceID)
	if err != nil {
		return types.DeviceCredential{}, err
	}

	if enforceKey && presented.APIKey == "" {
		return types.DeviceCredential{}, ErrMissingAPIKey
	}

	if presented.Empty() {
		return credential, nil
	}

	verified := false

	if presented.APIKey != "" {
		if err := verifyKind(credential, MethodAPIKey, presented.APIKey); err != nil {
			return types.DeviceCredential{}, err
		}
		verified = true
	}

	if presented.MqttPassword != "" {
		if err := verifyKind(credential, MethodMqttPassword, presented.MqttPassword); err != nil {
			return types.DeviceCredential{}, err
		}
		verified = true
	}

	if presented.CertificateFingerprint != "" {
		if err := verifyKind(credential, MethodCertificate, presented.CertificateFingerprint); err != nil {
			return types.DeviceCredential{}, err
		}
		verified = true
	}

	if !verified {
		return types.DeviceCredential{}, ErrInvalid
	}

	return credential, nil
}

func (s *service) RefreshAPIKey(ctx context.Context, deviceID string) (Registration, error) {
	credential, err := s.storage.GetCredentialByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return Registration{}, ErrNotFound
		}
		return Registration{}, err
	}

	key, err := newAPIKey()
	if err != nil {
		return Registration{}, err
	}

	credential.APIKey = digest(key)

	err = s.storage.AddCredential(ctx, credential)
	if err != nil {
		return Registration{}, err
	}

	return Registration{
		SensorID: credential.SensorID,
		DeviceID: credential.DeviceID,
		Method:   MethodAPIKey,
		APIKey:   key,
	}, nil
}

// GenerateCertificate produces a self signed RSA-2048 certificate for
// bootstrapping a device, stores its fingerprint on the credential record
// and hands the key material back to the caller.
func (s *service) GenerateCertificate(ctx context.Context, deviceID, commonName string, validityDays int) (Registration, error) {
	credential, err := s.storage.GetCredentialByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return Registration{}, ErrNotFound
		}
		return Registration{}, err
	}

	if commonName == "" {
		commonName = deviceID
	}
	if validityDays <= 0 {
		validityDays = 365
	}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return Registration{}, err
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return Registration{}, err
	}

	notBefore := s.nowFunc()
	notAfter := notBefore.AddDate(0, 0, validityDays)

	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:   commonName,
			Organization: []string{"water-monitoring"},
		},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return Registration{}, err
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	sum := sha256.Sum256(der)
	fingerprint := hex.EncodeToString(sum[:])

	credential.CertPEM = string(certPEM)
	credential.CertFingerprint = fingerprint

	err = s.storage.AddCredential(ctx, credential)
	if err != nil {
		return Registration{}, err
	}

	return Registration{
		SensorID:       credential.SensorID,
		DeviceID:       credential.DeviceID,
		Method:         MethodCertificate,
		CertificatePEM: string(certPEM),
		PrivateKeyPEM:  string(keyPEM),
		Fingerprint:    fingerprint,
		ExpiresAt:      &notAfter,
	}, nil
}

func (s *service) Deactivate(ctx context.Context, deviceID string) error {
	return s.setActive(ctx, deviceID, false)
}

func (s *service) Reactivate(ctx context.Context, deviceID string) error {
	return s.setActive(ctx, deviceID, true)
}

func (s *service) setActive(ctx context.Context, deviceID string, active bool) error {
	credential, err := s.storage.GetCredentialByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return s.storage.SetCredentialActive(ctx, credential.SensorID, active)
}

func (s *service) Get(ctx context.Context, sensorID string) (types.DeviceCredential, error) {
	credential, err := s.storage.GetCredential(ctx, sensorID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.DeviceCredential{}, ErrNotFound
		}
		return types.DeviceCredential{}, err
	}

	return credential, nil
}

func (s *service) Touch(ctx context.Context, sensorID string, at time.Time) error {
	return s.storage.TouchCredential(ctx, sensorID, at)
}

func (s *service) Remove(ctx context.Context, sensorID string) error {
	return s.storage.DeleteCredential(ctx, sensorID)
}

func newAPIKey() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// digest returns the stored form of an api key. Keys are never persisted in
// clear text.
func digest(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func normalizeFingerprint(fingerprint string) string {
	fingerprint = strings.ToLower(fingerprint)
	fingerprint = strings.ReplaceAll(fingerprint, ":", "")
	return strings.TrimSpace(fingerprint)
}

func fingerprintPEM(certPEM string) (string, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil || block.Type != "CERTIFICATE" {
		return "", fmt.Errorf("could not decode certificate pem")
	}

	sum := sha256.Sum256(block.Bytes)
	return hex.EncodeToString(sum[:]), nil
}
