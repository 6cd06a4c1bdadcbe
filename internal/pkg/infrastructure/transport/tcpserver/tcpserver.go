package tcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/water-monitoring/internal/pkg/application/credentials"
	"github.com/diwise/water-monitoring/internal/pkg/application/ingest"
)

var tracer = otel.Tracer("water-monitoring/tcpserver")

// one newline terminated json object per connection
const maxLineBytes = 8 * 1024
const ioDeadline = 30 * time.Second

type Config struct {
	host string
	port string
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		host: env.GetVariableOrDefault(ctx, "TCP_HOST", "0.0.0.0"),
		port: env.GetVariableOrDefault(ctx, "TCP_PORT", "9000"),
	}
}

type Server interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context)
	Addr() net.Addr
}

type server struct {
	cfg      Config
	ingestor ingest.Ingestor

	listener net.Listener
	done     chan struct{}
}

func New(cfg Config, svc ingest.Ingestor) Server {
	return &server{
		cfg:      cfg,
		ingestor: svc,
		done:     make(chan struct{}),
	}
}

func (s *server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.host, s.cfg.port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind tcp listener to %s: %w", addr, err)
	}

	s.listener = listener

	logging.GetFromContext(ctx).Info("accepting tcp readings", "addr", listener.Addr().String())

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		listener.Close()
	}()

	go s.acceptLoop(ctx)

	return nil
}

func (s *server) Stop(ctx context.Context) {
	close(s.done)
}

func (s *server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *server) acceptLoop(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			default:
			}

			log.Error("failed to accept connection", "err", err.Error())
			continue
		}

		go s.handle(ctx, conn)
	}
}

// handle serves the single request a connection is allowed to make:
// one json line in, one json line out, close.
func (s *server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	var err error

	ctx, span := tracer.Start(ctx, "tcp-reading")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	conn.SetDeadline(time.Now().Add(ioDeadline))

	line, err := readLine(conn)
	if err != nil {
		if errors.Is(err, bufio.ErrBufferFull) {
			writeLine(conn, errorResponse("message too large"))
		}
		return
	}

	payload := map[string]any{}
	if err = json.Unmarshal(line, &payload); err != nil {
		writeLine(conn, errorResponse("malformed payload"))
		return
	}

	deviceID, _ := payload["device_id"].(string)
	if deviceID == "" {
		writeLine(conn, errorResponse("missing device_id"))
		return
	}
	delete(payload, "device_id")

	log = log.With(slog.String("device_id", deviceID))

	presented := credentials.Presented{}
	for key, target := range map[string]*string{
		"api_key":                 &presented.APIKey,
		"mqtt_password":           &presented.MqttPassword,
		"certificate_fingerprint": &presented.CertificateFingerprint,
	} {
		if v, ok := payload[key].(string); ok {
			*target = v
			delete(payload, key)
		}
	}

	result, err := s.ingestor.Process(ctx, ingest.Params{
		DeviceID:    deviceID,
		Protocol:    "tcp",
		Payload:     payload,
		Credentials: presented,
		Source: ingest.Source{
			Addr:    remoteHost(conn),
			Channel: "line",
		},
		EnforceKey: false,
	})
	if err != nil {
		log.Warn("rejected reading", "err", err.Error())
		writeLine(conn, errorResponse(err.Error()))
		return
	}

	writeLine(conn, successResponse{Status: "success", Result: result})
}

// readLine reads up to maxLineBytes terminated by a newline, or by EOF
// for clients that close the connection right after writing.
func readLine(conn net.Conn) ([]byte, error) {
	reader := bufio.NewReaderSize(conn, maxLineBytes)

	line, err := reader.ReadSlice('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return line, nil
		}
		return nil, err
	}

	return line, nil
}

func writeLine(conn net.Conn, response any) {
	b, err := json.Marshal(response)
	if err != nil {
		return
	}

	conn.Write(append(b, '\n'))
}

func remoteHost(conn net.Conn) string {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return conn.RemoteAddr().String()
	}
	return host
}

type successResponse struct {
	Status string `json:"status"`
	ingest.Result
}

func errorResponse(detail string) map[string]string {
	return map[string]string{
		"status": "error",
		"detail": detail,
	}
}
