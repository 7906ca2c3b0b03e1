package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "bucketlist.BucketlistService"

const (
	MethodRegister          = "/" + ServiceName + "/Register"
	MethodLogin             = "/" + ServiceName + "/Login"
	MethodPing              = "/" + ServiceName + "/Ping"
	MethodCreateBucketlist  = "/" + ServiceName + "/CreateBucketlist"
	MethodGetBucketlist     = "/" + ServiceName + "/GetBucketlist"
	MethodListBucketlists   = "/" + ServiceName + "/ListBucketlists"
	MethodRenameBucketlist  = "/" + ServiceName + "/RenameBucketlist"
	MethodDeleteBucketlist  = "/" + ServiceName + "/DeleteBucketlist"
	MethodDeleteAccount     = "/" + ServiceName + "/DeleteAccount"
	MethodExportBucketlists = "/" + ServiceName + "/ExportBucketlists"
)

type Empty struct{}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type Bucketlist struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
	CreatedBy    int64     `json:"created_by"`
}

type CreateBucketlistRequest struct {
	Name string `json:"name"`
}

type GetBucketlistRequest struct {
	ID int64 `json:"id"`
}

type ListBucketlistsResponse struct {
	Bucketlists []*Bucketlist `json:"bucketlists"`
}

type RenameBucketlistRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DeleteBucketlistRequest struct {
	ID int64 `json:"id"`
}

type ExportBucketlistsResponse struct {
	URL string `json:"url"`
}

// BucketlistServiceServer is implemented by GRPCServer.
type BucketlistServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Ping(context.Context, *Empty) (*PingResponse, error)
	CreateBucketlist(context.Context, *CreateBucketlistRequest) (*Bucketlist, error)
	GetBucketlist(context.Context, *GetBucketlistRequest) (*Bucketlist, error)
	ListBucketlists(context.Context, *Empty) (*ListBucketlistsResponse, error)
	RenameBucketlist(context.Context, *RenameBucketlistRequest) (*Bucketlist, error)
	DeleteBucketlist(context.Context, *DeleteBucketlistRequest) (*Empty, error)
	DeleteAccount(context.Context, *Empty) (*Empty, error)
	ExportBucketlists(context.Context, *Empty) (*ExportBucketlistsResponse, error)
}

// unaryHandler adapts a typed server method to grpc.MethodDesc.Handler.
func unaryHandler[Req, Resp any](fullMethod string, call func(BucketlistServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(BucketlistServiceServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		})
	}
}

// ServiceDesc describes BucketlistService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BucketlistServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(MethodRegister, BucketlistServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, BucketlistServiceServer.Login)},
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, BucketlistServiceServer.Ping)},
		{MethodName: "CreateBucketlist", Handler: unaryHandler(MethodCreateBucketlist, BucketlistServiceServer.CreateBucketlist)},
		{MethodName: "GetBucketlist", Handler: unaryHandler(MethodGetBucketlist, BucketlistServiceServer.GetBucketlist)},
		{MethodName: "ListBucketlists", Handler: unaryHandler(MethodListBucketlists, BucketlistServiceServer.ListBucketlists)},
		{MethodName: "RenameBucketlist", Handler: unaryHandler(MethodRenameBucketlist, BucketlistServiceServer.RenameBucketlist)},
		{MethodName: "DeleteBucketlist", Handler: unaryHandler(MethodDeleteBucketlist, BucketlistServiceServer.DeleteBucketlist)},
		{MethodName: "DeleteAccount", Handler: unaryHandler(MethodDeleteAccount, BucketlistServiceServer.DeleteAccount)},
		{MethodName: "ExportBucketlists", Handler: unaryHandler(MethodExportBucketlists, BucketlistServiceServer.ExportBucketlists)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bucketlist.json",
}

// RegisterBucketlistServiceServer attaches srv to s.
func RegisterBucketlistServiceServer(s grpc.ServiceRegistrar, srv BucketlistServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client is a typed client for BucketlistService. Every call is sent with
// the json content-subtype.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c, MethodRegister, in, opts...)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c, MethodLogin, in, opts...)
}

func (c *Client) Ping(ctx context.Context, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c, MethodPing, &Empty{}, opts...)
}

func (c *Client) CreateBucketlist(ctx context.Context, in *CreateBucketlistRequest, opts ...grpc.CallOption) (*Bucketlist, error) {
	return invoke[Bucketlist](ctx, c, MethodCreateBucketlist, in, opts...)
}

func (c *Client) GetBucketlist(ctx context.Context, in *GetBucketlistRequest, opts ...grpc.CallOption) (*Bucketlist, error) {
	return invoke[Bucketlist](ctx, c, MethodGetBucketlist, in, opts...)
}

func (c *Client) ListBucketlists(ctx context.Context, opts ...grpc.CallOption) (*ListBucketlistsResponse, error) {
	return invoke[ListBucketlistsResponse](ctx, c, MethodListBucketlists, &Empty{}, opts...)
}

func (c *Client) RenameBucketlist(ctx context.Context, in *RenameBucketlistRequest, opts ...grpc.CallOption) (*Bucketlist, error) {
	return invoke[Bucketlist](ctx, c, MethodRenameBucketlist, in, opts...)
}

func (c *Client) DeleteBucketlist(ctx context.Context, in *DeleteBucketlistRequest, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c, MethodDeleteBucketlist, in, opts...)
	return err
}

func (c *Client) DeleteAccount(ctx context.Context, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c, MethodDeleteAccount, &Empty{}, opts...)
	return err
}

func (c *Client) ExportBucketlists(ctx context.Context, opts ...grpc.CallOption) (*ExportBucketlistsResponse, error) {
	return invoke[ExportBucketlistsResponse](ctx, c, MethodExportBucketlists, &Empty{}, opts...)
}
