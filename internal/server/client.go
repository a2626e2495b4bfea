package server

import (
	"context"
	"fmt"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	coreGrpc "github.com/msto63/ippcode/pkg/core/grpc"
	"github.com/msto63/ippcode/pkg/ippcode/stats"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Translation is the decoded Translate response
type Translation struct {
	XML          string
	Instructions int
	LinesOfCode  int
	Comments     int
}

// Value implements stats.Source
func (t *Translation) Value(m stats.Metric) (int, error) {
	switch m {
	case stats.MetricLinesOfCode:
		return t.LinesOfCode, nil
	case stats.MetricComments:
		return t.Comments, nil
	default:
		return 0, fmt.Errorf("unknown metric %v", m)
	}
}

// Client calls a remote translation service
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to the translation service at target
func Dial(cfg coreGrpc.ClientConfig, opts ...grpc.DialOption) (*Client, error) {
	conn, err := coreGrpc.Dial(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// NewClient wraps an existing connection
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Translate sends source to the service. Rejected sources come back as
// INVALID_ARGUMENT coded errors, which share the exit code of a local
// lexical or syntax error.
func (c *Client) Translate(ctx context.Context, source string) (*Translation, error) {
	req, err := structpb.NewStruct(map[string]interface{}{FieldSource: source})
	if err != nil {
		return nil, ippcerr.Wrap(err, "encode request").WithCode(ippcerr.CodeInternal)
	}

	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, TranslateMethod, req, resp); err != nil {
		return nil, fromStatus(err)
	}

	fields := resp.GetFields()
	return &Translation{
		XML:          fields[FieldXML].GetStringValue(),
		Instructions: int(fields[FieldInstructions].GetNumberValue()),
		LinesOfCode:  int(fields[FieldLOC].GetNumberValue()),
		Comments:     int(fields[FieldComments].GetNumberValue()),
	}, nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

func fromStatus(err error) error {
	st := status.Convert(err)
	code := ippcerr.CodeInternal
	if st.Code() == codes.InvalidArgument {
		code = ippcerr.CodeInvalidArgument
	}
	return ippcerr.New(st.Message()).
		WithCode(code).
		WithOperation("server.Client.Translate").
		WithDetail("grpc_code", st.Code().String())
}
