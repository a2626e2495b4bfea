package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names of the translation service
const (
	ServiceName     = "ippc.v1.Translator"
	TranslateMethod = "/" + ServiceName + "/Translate"
)

// Request and response field names
const (
	FieldSource       = "source"
	FieldXML          = "xml"
	FieldInstructions = "instructions"
	FieldLOC          = "loc"
	FieldComments     = "comments"
)

// TranslatorServer is the server API of ippc.v1.Translator. Messages are
// google.protobuf.Struct values so that no generated code is needed.
type TranslatorServer interface {
	Translate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// TranslatorServiceDesc describes ippc.v1.Translator for grpc.Server
var TranslatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TranslatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Translate",
			Handler:    translateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ippc/v1/translator.proto",
}

// RegisterTranslatorServer registers srv on s
func RegisterTranslatorServer(s grpc.ServiceRegistrar, srv TranslatorServer) {
	s.RegisterService(&TranslatorServiceDesc, srv)
}

func translateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TranslatorServer).Translate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TranslateMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TranslatorServer).Translate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
