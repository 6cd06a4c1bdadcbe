package mqtt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/eclipse/paho.mqtt.golang/packets"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/water-monitoring/internal/pkg/application/ingest"
	"github.com/diwise/water-monitoring/internal/pkg/application/sensors"
)

var tracer = otel.Tracer("water-monitoring/mqtt")

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 60 * time.Second

	keepAlive       = 60 * time.Second
	pingTimeout     = 10 * time.Second
	connectTimeout  = 30 * time.Second
	quiesceMillis   = 250
	publishQoS      = byte(1)
	responseTopicFn = "sensors/%s/response"
)

type Config struct {
	host     string
	port     string
	username string
	password string
	clientID string

	tlsEnabled  bool
	tlsCAPath   string
	tlsCertPath string
	tlsKeyPath  string
	tlsInsecure bool
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		host:     env.GetVariableOrDefault(ctx, "MQTT_BROKER_HOST", ""),
		port:     env.GetVariableOrDefault(ctx, "MQTT_BROKER_PORT", "1883"),
		username: env.GetVariableOrDefault(ctx, "MQTT_USERNAME", ""),
		password: env.GetVariableOrDefault(ctx, "MQTT_PASSWORD", ""),
		clientID: env.GetVariableOrDefault(ctx, "MQTT_CLIENT_ID", "water-monitoring-"+uuid.NewString()[0:8]),

		tlsEnabled:  env.GetVariableOrDefault(ctx, "MQTT_TLS_ENABLED", "false") == "true",
		tlsCAPath:   env.GetVariableOrDefault(ctx, "MQTT_TLS_CA", ""),
		tlsCertPath: env.GetVariableOrDefault(ctx, "MQTT_TLS_CERT", ""),
		tlsKeyPath:  env.GetVariableOrDefault(ctx, "MQTT_TLS_KEY", ""),
		tlsInsecure: env.GetVariableOrDefault(ctx, "MQTT_TLS_INSECURE", "false") == "true",
	}
}

func (c Config) Enabled() bool {
	return c.host != ""
}

func (c Config) broker() string {
	scheme := "tcp"
	if c.tlsEnabled {
		scheme = "ssl"
	}
	return fmt.Sprintf("%s://%s:%s", scheme, c.host, c.port)
}

type Adapter interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
}

type adapter struct {
	cfg      Config
	ingestor ingest.Ingestor
	registry sensors.SensorRegistry

	client mqtt.Client

	ctx  context.Context
	done chan struct{}
	lost chan error
}

func New(ctx context.Context, cfg Config, svc ingest.Ingestor, registry sensors.SensorRegistry) (Adapter, error) {
	a := &adapter{
		cfg:      cfg,
		ingestor: svc,
		registry: registry,
		ctx:      ctx,
		done:     make(chan struct{}),
		lost:     make(chan error, 1),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.broker())
	opts.SetClientID(cfg.clientID)

	if cfg.username != "" {
		opts.SetUsername(cfg.username)
		opts.SetPassword(cfg.password)
	}

	opts.SetKeepAlive(keepAlive)
	opts.SetPingTimeout(pingTimeout)
	opts.SetConnectTimeout(connectTimeout)

	// the run loop owns reconnection so that refused credentials can
	// stop it for good
	opts.SetAutoReconnect(false)
	opts.SetOrderMatters(false)

	if cfg.tlsEnabled {
		tlsCfg, err := newTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.OnConnect = func(client mqtt.Client) {
		log := logging.GetFromContext(a.ctx)
		log.Info("connected to mqtt broker", "broker", cfg.broker(), "client_id", cfg.clientID)
		a.subscribe(client)
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		select {
		case a.lost <- err:
		default:
		}
	}

	a.client = mqtt.NewClient(opts)

	return a, nil
}

func newTLSConfig(cfg Config) (*tls.Config, error) {
	tlsCfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.tlsInsecure,
	}

	if cfg.tlsCAPath != "" {
		pem, err := os.ReadFile(cfg.tlsCAPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read ca certificate: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errors.New("no certificates found in " + cfg.tlsCAPath)
		}
		tlsCfg.RootCAs = pool
	}

	if cfg.tlsCertPath != "" && cfg.tlsKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.tlsCertPath, cfg.tlsKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	return tlsCfg, nil
}

func (a *adapter) Start(ctx context.Context) {
	a.ctx = ctx
	go a.run(ctx)
}

func (a *adapter) Stop(ctx context.Context) {
	close(a.done)
}

// run connects to the broker and keeps the connection alive with an
// exponential backoff, starting over at 1s after every successful
// connect. A broker that refuses our credentials (CONNACK 4 or 5)
// terminates the loop since retrying can never succeed.
func (a *adapter) run(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	backoff := initialBackoff

	for {
		token := a.client.Connect()
		token.Wait()

		err := token.Error()
		if err == nil {
			backoff = initialBackoff

			select {
			case <-ctx.Done():
				a.client.Disconnect(quiesceMillis)
				return
			case <-a.done:
				a.client.Disconnect(quiesceMillis)
				return
			case err = <-a.lost:
				log.Error("lost connection to mqtt broker", "err", err.Error())
			}
		} else {
			if credentialsRefused(err) {
				log.Error("mqtt broker refused our credentials, giving up", "err", err.Error())
				return
			}

			log.Error("failed to connect to mqtt broker", "broker", a.cfg.broker(), "retry_in", backoff.String(), "err", err.Error())
		}

		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func credentialsRefused(err error) bool {
	return errors.Is(err, packets.ConnErrors[packets.ErrRefusedBadUsernameOrPassword]) ||
		errors.Is(err, packets.ConnErrors[packets.ErrRefusedNotAuthorised])
}

func (a *adapter) subscribe(client mqtt.Client) {
	log := logging.GetFromContext(a.ctx)

	subscriptions := []struct {
		topic   string
		qos     byte
		handler mqtt.MessageHandler
	}{
		{"sensors/+/data", 1, a.onData},
		{"sensors/+/status", 0, a.onStatus},
		{"sensors/+/heartbeat", 0, a.onHeartbeat},
		{"system/+/command", 1, a.onCommand},
	}

	for _, s := range subscriptions {
		token := client.Subscribe(s.topic, s.qos, s.handler)
		if token.Wait() && token.Error() != nil {
			log.Error("failed to subscribe", "topic", s.topic, "err", token.Error().Error())
			continue
		}
		log.Debug("subscribed to topic", "topic", s.topic)
	}
}

func (a *adapter) onData(_ mqtt.Client, msg mqtt.Message) {
	a.processData(a.ctx, msg.Topic(), msg.Payload())
}

func (a *adapter) onStatus(_ mqtt.Client, msg mqtt.Message) {
	a.processStatus(a.ctx, msg.Topic(), msg.Payload())
}

func (a *adapter) onHeartbeat(_ mqtt.Client, msg mqtt.Message) {
	a.processHeartbeat(a.ctx, msg.Topic(), msg.Payload())
}

func (a *adapter) onCommand(client mqtt.Client, msg mqtt.Message) {
	a.processCommand(a.ctx, msg.Topic(), msg.Payload(), func(topic string, payload []byte) error {
		token := client.Publish(topic, publishQoS, false, payload)
		token.Wait()
		return token.Error()
	})
}

// deviceIDFromTopic returns the second segment of sensors/{device_id}/...
// style topics, or an empty string when there is none.
func deviceIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}
