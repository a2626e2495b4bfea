package server

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	ippclog "github.com/msto63/ippcode/foundation/core/log"
	"github.com/msto63/ippcode/pkg/core/config"
	coreGrpc "github.com/msto63/ippcode/pkg/core/grpc"
	"github.com/msto63/ippcode/pkg/core/health"
	"github.com/msto63/ippcode/pkg/core/logging"
	"github.com/msto63/ippcode/pkg/ippcode/stats"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const bufSize = 1024 * 1024

// startServer runs a server on an in-memory listener and returns a
// connected client
func startServer(t *testing.T) (*Server, *grpc.ClientConn) {
	t.Helper()

	logger := logging.Wrap(ippclog.Discard(), "server")
	srv, err := New(Config{Server: config.Default().Server, Logger: logger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lis := bufconn.Listen(bufSize)
	go srv.Serve(lis)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})

	cfg := coreGrpc.DefaultClientConfig("bufnet")
	cfg.Logger = logger
	conn, err := coreGrpc.Dial(cfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return srv, conn
}

func TestClient_Translate(t *testing.T) {
	_, conn := startServer(t)
	client := NewClient(conn)

	got, err := client.Translate(context.Background(), ".IPPcode18\n# comment\nDEFVAR GF@x\nWRITE GF@x\n")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	if got.Instructions != 2 || got.LinesOfCode != 2 || got.Comments != 1 {
		t.Errorf("Translate() = %+v", got)
	}
	if !strings.Contains(got.XML, `<instruction order="2" opcode="WRITE">`) {
		t.Errorf("Translate() XML = %s", got.XML)
	}
}

func TestClient_TranslateRejected(t *testing.T) {
	_, conn := startServer(t)
	client := NewClient(conn)

	_, err := client.Translate(context.Background(), ".IPPcode18\nMOVE GF@x\n")
	if err == nil {
		t.Fatal("Translate() expected error")
	}
	if got := ippcerr.ExitCode(err); got != ippcerr.ExitSourceFormat {
		t.Errorf("ExitCode() = %v, want %v", got, ippcerr.ExitSourceFormat)
	}
	if !strings.Contains(err.Error(), "line 2: expected argument") {
		t.Errorf("Translate() error = %v", err)
	}
}

func TestServer_InvalidRequests(t *testing.T) {
	_, conn := startServer(t)

	tests := []struct {
		name   string
		fields map[string]interface{}
		want   codes.Code
	}{
		{"missing source", map[string]interface{}{}, codes.InvalidArgument},
		{"source not a string", map[string]interface{}{FieldSource: 42}, codes.InvalidArgument},
		{"empty source", map[string]interface{}{FieldSource: ""}, codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := structpb.NewStruct(tt.fields)
			if err != nil {
				t.Fatalf("NewStruct() error = %v", err)
			}
			err = conn.Invoke(context.Background(), TranslateMethod, req, new(structpb.Struct))
			if got := status.Code(err); got != tt.want {
				t.Errorf("status.Code() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	_, conn := startServer(t)

	req, _ := structpb.NewStruct(map[string]interface{}{FieldSource: ".IPPcode18\n"})
	ctx := metadata.AppendToOutgoingContext(context.Background(), coreGrpc.RequestIDHeader, "req-7")

	var header metadata.MD
	if err := conn.Invoke(ctx, TranslateMethod, req, new(structpb.Struct), grpc.Header(&header)); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got := header.Get(coreGrpc.RequestIDHeader); len(got) != 1 || got[0] != "req-7" {
		t.Errorf("header %s = %v, want [req-7]", coreGrpc.RequestIDHeader, got)
	}
}

func TestServer_Health(t *testing.T) {
	srv, conn := startServer(t)

	report := srv.Health(context.Background())
	if report.Status != health.StatusHealthy {
		t.Errorf("Health() status = %v, want healthy: %v", report.Status, report.Checks)
	}

	client := healthpb.NewHealthClient(conn)
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("Check() = %v, want SERVING", resp.Status)
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"canceled", context.Canceled, codes.Canceled},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"lexical", ippcerr.New("x").WithCode(ippcerr.CodeLexical), codes.InvalidArgument},
		{"syntax", ippcerr.New("x").WithCode(ippcerr.CodeSyntax), codes.InvalidArgument},
		{"read failure", ippcerr.New("x").WithCode(ippcerr.CodeInputOpen), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(toStatus(tt.err)); got != tt.want {
				t.Errorf("toStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServer_TranslationCache(t *testing.T) {
	srv, conn := startServer(t)
	client := NewClient(conn)
	src := ".IPPcode18\nCREATEFRAME\n"

	for i := 0; i < 2; i++ {
		if _, err := client.Translate(context.Background(), src); err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
	}
	if _, err := client.Translate(context.Background(), "BOGUS\n"); err == nil {
		t.Fatal("Translate() expected error for missing header")
	}

	st := srv.CacheStats()
	if st.Hits != 1 {
		t.Errorf("CacheStats().Hits = %v, want 1", st.Hits)
	}
	if st.Misses != 2 {
		t.Errorf("CacheStats().Misses = %v, want 2", st.Misses)
	}
}

func TestTranslation_Value(t *testing.T) {
	tr := &Translation{LinesOfCode: 4, Comments: 2}

	var buf strings.Builder
	if err := stats.Write(&buf, tr, []stats.Metric{stats.MetricComments, stats.MetricLinesOfCode}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != "2\n4\n" {
		t.Errorf("Write() = %q, want %q", buf.String(), "2\n4\n")
	}
	if _, err := tr.Value(stats.Metric(7)); err == nil {
		t.Error("Value() expected error for unknown metric")
	}
}
