// Package grpc exposes the bucketlist services over gRPC using a JSON codec.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/dmitrijs2005/bucketlist/internal/server/ratelimit"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

// UserService is the account surface used by the handlers.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string, now time.Time) (string, error)
	Authenticate(token string, now time.Time) (int64, error)
	Delete(ctx context.Context, userID int64) error
}

// BucketlistService is the owner-scoped bucketlist surface.
type BucketlistService interface {
	Create(ctx context.Context, ownerID int64, name string) (*models.Bucketlist, error)
	GetAll(ctx context.Context, ownerID int64) ([]*models.Bucketlist, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Bucketlist, error)
	Rename(ctx context.Context, ownerID, id int64, name string) (*models.Bucketlist, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// Exporter produces a download link for a user's bucketlists.
type Exporter interface {
	Export(ctx context.Context, ownerID int64) (string, error)
}

// LoginLimiter throttles login attempts per key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Result, error)
}

type GRPCServer struct {
	address     string
	users       UserService
	bucketlists BucketlistService
	exports     Exporter
	limiter     LoginLimiter
	logger      logging.Logger
	now         func() time.Time
}

func NewGRPCServer(a string, l logging.Logger, us UserService, bs BucketlistService, ex Exporter) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		users:       us,
		bucketlists: bs,
		exports:     ex,
		now:         time.Now,
	}
}

// WithLoginLimiter enables login throttling.
func (s *GRPCServer) WithLoginLimiter(l LoginLimiter) *GRPCServer {
	s.limiter = l
	return s
}

// NewServer builds a grpc.Server with the interceptors and the service
// registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts,
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	)
	srv := grpc.NewServer(opts...)
	RegisterBucketlistServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// Serve reports ErrServerStopped when ctx was done before it started.
	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	<-stopped
	return nil
}
