package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "twitter.v1.TwitterService"

// Full method names, as seen by interceptors.
const (
	ListUsersMethod  = "/" + ServiceName + "/ListUsers"
	GetUserMethod    = "/" + ServiceName + "/GetUser"
	ListTweetsMethod = "/" + ServiceName + "/ListTweets"
	GetTweetMethod   = "/" + ServiceName + "/GetTweet"
	PostTweetMethod  = "/" + ServiceName + "/PostTweet"
)

// TwitterServiceServer is the server API for twitter.v1.TwitterService.
// Messages are protobuf well-known types so no generated code is needed.
type TwitterServiceServer interface {
	ListUsers(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetUser(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListTweets(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetTweet(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	PostTweet(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterTwitterServiceServer registers srv on s.
func RegisterTwitterServiceServer(s grpc.ServiceRegistrar, srv TwitterServiceServer) {
	s.RegisterService(&TwitterServiceDesc, srv)
}

// TwitterServiceDesc describes twitter.v1.TwitterService.
var TwitterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TwitterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListUsers", ListUsersMethod, func() *emptypb.Empty { return new(emptypb.Empty) },
			func(s TwitterServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) { return s.ListUsers(ctx, in) }),
		unary("GetUser", GetUserMethod, func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) },
			func(s TwitterServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) { return s.GetUser(ctx, in) }),
		unary("ListTweets", ListTweetsMethod, func() *emptypb.Empty { return new(emptypb.Empty) },
			func(s TwitterServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) { return s.ListTweets(ctx, in) }),
		unary("GetTweet", GetTweetMethod, func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) },
			func(s TwitterServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) { return s.GetTweet(ctx, in) }),
		unary("PostTweet", PostTweetMethod, func() *structpb.Struct { return new(structpb.Struct) },
			func(s TwitterServiceServer, ctx context.Context, in *structpb.Struct) (any, error) { return s.PostTweet(ctx, in) }),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "twitter/v1/twitter.proto",
}

// unary builds a MethodDesc that decodes Req and runs it through the interceptor chain.
func unary[Req proto.Message](
	name, fullMethod string,
	newReq func() Req,
	call func(TwitterServiceServer, context.Context, Req) (any, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TwitterServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TwitterServiceServer), ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// TwitterServiceClient is a thin client for twitter.v1.TwitterService.
type TwitterServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTwitterServiceClient creates a client over cc.
func NewTwitterServiceClient(cc grpc.ClientConnInterface) *TwitterServiceClient {
	return &TwitterServiceClient{cc: cc}
}

func (c *TwitterServiceClient) ListUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListUsersMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TwitterServiceClient) GetUser(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetUserMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TwitterServiceClient) ListTweets(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListTweetsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TwitterServiceClient) GetTweet(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetTweetMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TwitterServiceClient) PostTweet(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PostTweetMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
