package tcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/diwise/water-monitoring/internal/pkg/application/ingest"
)

func TestReadingsAreAcceptedOverTCP(t *testing.T) {
	is, srv, ingestor := testSetup(t)

	conn := dial(is, srv)
	defer conn.Close()

	_, err := conn.Write([]byte(`{"device_id": "w-0042", "value": 3.5, "api_key": "a-valid-key"}` + "\n"))
	is.NoErr(err)

	response := readResponse(is, conn)
	is.Equal("success", response["status"])
	is.Equal("reading-01", response["reading_id"])

	is.Equal(1, len(ingestor.ProcessCalls()))

	params := ingestor.ProcessCalls()[0].Params
	is.Equal("w-0042", params.DeviceID)
	is.Equal("tcp", params.Protocol)
	is.True(!params.EnforceKey)
	is.Equal("a-valid-key", params.Credentials.APIKey)
	is.Equal(3.5, params.Payload["value"])

	_, leaked := params.Payload["device_id"]
	is.True(!leaked)
}

func TestLinesTerminatedByEOFAreAccepted(t *testing.T) {
	is, srv, ingestor := testSetup(t)

	conn := dial(is, srv)
	defer conn.Close()

	_, err := conn.Write([]byte(`{"device_id": "w-0042", "value": 3.5}`))
	is.NoErr(err)
	is.NoErr(conn.(*net.TCPConn).CloseWrite())

	response := readResponse(is, conn)
	is.Equal("success", response["status"])
	is.Equal(1, len(ingestor.ProcessCalls()))
}

func TestMalformedLinesGetAnErrorResponse(t *testing.T) {
	is, srv, ingestor := testSetup(t)

	conn := dial(is, srv)
	defer conn.Close()

	_, err := conn.Write([]byte("not json at all\n"))
	is.NoErr(err)

	response := readResponse(is, conn)
	is.Equal("error", response["status"])
	is.Equal("malformed payload", response["detail"])
	is.Equal(0, len(ingestor.ProcessCalls()))
}

func TestReadingsWithoutADeviceIDAreRejected(t *testing.T) {
	is, srv, ingestor := testSetup(t)

	conn := dial(is, srv)
	defer conn.Close()

	_, err := conn.Write([]byte(`{"value": 3.5}` + "\n"))
	is.NoErr(err)

	response := readResponse(is, conn)
	is.Equal("error", response["status"])
	is.Equal("missing device_id", response["detail"])
	is.Equal(0, len(ingestor.ProcessCalls()))
}

func TestRejectedReadingsGetAnErrorLine(t *testing.T) {
	is, srv, ingestor := testSetup(t)

	ingestor.ProcessFunc = func(ctx context.Context, params ingest.Params) (ingest.Result, error) {
		return ingest.Result{}, ingest.ErrUnknownDevice
	}

	conn := dial(is, srv)
	defer conn.Close()

	_, err := conn.Write([]byte(`{"device_id": "ghost", "value": 3.5}` + "\n"))
	is.NoErr(err)

	response := readResponse(is, conn)
	is.Equal("error", response["status"])
	is.Equal("unknown device", response["detail"])
}

func TestOversizedMessagesAreRejected(t *testing.T) {
	is, srv, ingestor := testSetup(t)

	conn := dial(is, srv)
	defer conn.Close()

	_, err := conn.Write(bytes.Repeat([]byte("a"), maxLineBytes))
	is.NoErr(err)

	response := readResponse(is, conn)
	is.Equal("error", response["status"])
	is.Equal("message too large", response["detail"])
	is.Equal(0, len(ingestor.ProcessCalls()))
}

func TestConnectionsServeExactlyOneRequest(t *testing.T) {
	is, srv, _ := testSetup(t)

	conn := dial(is, srv)
	defer conn.Close()

	_, err := conn.Write([]byte(`{"device_id": "w-0042", "value": 3.5}` + "\n"))
	is.NoErr(err)

	reader := bufio.NewReader(conn)
	_, err = reader.ReadBytes('\n')
	is.NoErr(err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, err = reader.ReadBytes('\n')
	is.True(err != nil)
}

func dial(is *is.I, srv Server) net.Conn {
	conn, err := net.Dial("tcp", srv.Addr().String())
	is.NoErr(err)
	return conn
}

func readResponse(is *is.I, conn net.Conn) map[string]any {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	is.NoErr(err)

	response := map[string]any{}
	is.NoErr(json.Unmarshal(line, &response))
	return response
}

func testSetup(t *testing.T) (*is.I, Server, *ingest.IngestorMock) {
	t.Helper()
	is := is.New(t)

	ingestor := &ingest.IngestorMock{
		ProcessFunc: func(ctx context.Context, params ingest.Params) (ingest.Result, error) {
			return ingest.Result{ReadingID: "reading-01", SensorID: "sensor-01"}, nil
		},
	}

	srv := New(Config{host: "127.0.0.1", port: "0"}, ingestor)
	is.NoErr(srv.Start(context.Background()))
	t.Cleanup(func() { srv.Stop(context.Background()) })

	return is, srv, ingestor
}
