package grpc

import (
	"context"

	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/dmitrijs2005/bucketlist/internal/server/ratelimit"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toBucketlist(b *models.Bucketlist) *Bucketlist {
	return &Bucketlist{
		ID:           b.ID,
		Name:         b.Name,
		DateCreated:  b.DateCreated,
		DateModified: b.DateModified,
		CreatedBy:    b.CreatedBy,
	}
}

// currentUser returns the id placed in ctx by accessTokenInterceptor.
func currentUser(ctx context.Context) (int64, error) {
	id, ok := userIDFromContext(ctx)
	if !ok {
		return 0, status.Error(codes.Unauthenticated, msgInvalidToken)
	}
	return id, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	user, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &RegisterResponse{ID: user.ID, Email: user.Email}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.checkLoginRate(ctx, req.Email); err != nil {
		return nil, err
	}
	token, err := s.users.Login(ctx, req.Email, req.Password, s.now())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &LoginResponse{Token: token}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *Empty) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) CreateBucketlist(ctx context.Context, req *CreateBucketlistRequest) (*Bucketlist, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.bucketlists.Create(ctx, userID, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toBucketlist(b), nil
}

func (s *GRPCServer) GetBucketlist(ctx context.Context, req *GetBucketlistRequest) (*Bucketlist, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.bucketlists.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toBucketlist(b), nil
}

func (s *GRPCServer) ListBucketlists(ctx context.Context, _ *Empty) (*ListBucketlistsResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.bucketlists.GetAll(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &ListBucketlistsResponse{Bucketlists: make([]*Bucketlist, 0, len(items))}
	for _, b := range items {
		resp.Bucketlists = append(resp.Bucketlists, toBucketlist(b))
	}
	return resp, nil
}

func (s *GRPCServer) RenameBucketlist(ctx context.Context, req *RenameBucketlistRequest) (*Bucketlist, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.bucketlists.Rename(ctx, userID, req.ID, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toBucketlist(b), nil
}

func (s *GRPCServer) DeleteBucketlist(ctx context.Context, req *DeleteBucketlistRequest) (*Empty, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.bucketlists.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, _ *Empty) (*Empty, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

func (s *GRPCServer) ExportBucketlists(ctx context.Context, _ *Empty) (*ExportBucketlistsResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	url, err := s.exports.Export(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &ExportBucketlistsResponse{URL: url}, nil
}

// checkLoginRate rejects the attempt with ResourceExhausted once the
// email's budget is spent. Limiter failures are logged and let through.
func (s *GRPCServer) checkLoginRate(ctx context.Context, email string) error {
	if s.limiter == nil {
		return nil
	}
	res, err := s.limiter.Allow(ctx, ratelimit.LoginKey(email))
	if err != nil {
		s.logger.Warn(ctx, "login rate limit unavailable", "error", err)
	}
	if !res.Allowed {
		return status.Errorf(codes.ResourceExhausted, "too many login attempts, retry in %s", res.RetryAfter)
	}
	return nil
}
