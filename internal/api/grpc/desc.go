package grpc

import (
	"context"

	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName = "ghcontributors.Contributors"
	listMethod  = "/" + serviceName + "/List"
)

// ServiceServer is the server API for Contributors service.
type ServiceServer interface {
	List(context.Context, *Request) (*Reply, error)
}

// RegisterServiceServer registers ServiceServer implementation in grpc server.
func RegisterServiceServer(s grpc.ServiceRegistrar, srv ServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

func listHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		r, err := requestFromStruct(req.(*structpb.Struct))
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		reply, err := srv.(ServiceServer).List(ctx, r)
		if err != nil {
			return nil, err
		}
		return reply.toStruct()
	}
	if interceptor == nil {
		return handler(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: listMethod,
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "List",
			Handler:    listHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ghcontributors.proto",
}

// ServiceClient is the client API for Contributors service.
type ServiceClient interface {
	List(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Reply, error)
}

type serviceClient struct {
	cc grpc.ClientConnInterface
}

// NewServiceClient creates client of Contributors service.
func NewServiceClient(cc grpc.ClientConnInterface) ServiceClient {
	return &serviceClient{cc}
}

func (c *serviceClient) List(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Reply, error) {
	req, err := in.toStruct()
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return replyFromStruct(out)
}
