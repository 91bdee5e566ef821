// Package rpc describes the gRPC service used to play a game running on a
// server. Messages are protobuf well-known types so no generated code is
// needed: commands travel as StringValue and updates as Struct.
//
//	service TetrisService {
//	  rpc Command(google.protobuf.StringValue) returns (google.protobuf.Empty);
//	  rpc Watch(google.protobuf.Empty) returns (stream google.protobuf.Struct);
//	}
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName   = "tetris.TetrisService"
	CommandMethod = "/" + ServiceName + "/Command"
	WatchMethod   = "/" + ServiceName + "/Watch"
)

// TetrisServiceServer is the server API for the TetrisService.
type TetrisServiceServer interface {
	// Command sends an action to the game.
	Command(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	// Watch streams every board and menu update, starting with the latest ones.
	Watch(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

func RegisterTetrisServiceServer(s grpc.ServiceRegistrar, srv TetrisServiceServer) {
	s.RegisterService(&TetrisServiceDesc, srv)
}

var TetrisServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TetrisServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Command",
			Handler:    commandHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "tetris.proto",
}

func commandHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TetrisServiceServer).Command(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CommandMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TetrisServiceServer).Command(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(TetrisServiceServer).Watch(m, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

// TetrisServiceClient is the client API for the TetrisService.
type TetrisServiceClient interface {
	Command(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Watch(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type tetrisServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTetrisServiceClient(cc grpc.ClientConnInterface) TetrisServiceClient {
	return &tetrisServiceClient{cc}
}

func (c *tetrisServiceClient) Command(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, CommandMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tetrisServiceClient) Watch(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &TetrisServiceDesc.Streams[0], WatchMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
