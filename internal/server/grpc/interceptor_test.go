package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// stubUsers resolves a fixed token to a fixed id.
type stubUsers struct {
	token string
	id    int64
	err   error
	seen  string
}

func (s *stubUsers) Register(context.Context, string, string) (*models.User, error) { return nil, nil }
func (s *stubUsers) Login(context.Context, string, string, time.Time) (string, error) {
	return "", nil
}
func (s *stubUsers) Delete(context.Context, int64) error { return nil }
func (s *stubUsers) Authenticate(token string, _ time.Time) (int64, error) {
	s.seen = token
	if s.err != nil {
		return 0, s.err
	}
	if token != s.token {
		return 0, common.ErrInvalidToken
	}
	return s.id, nil
}

func newInterceptorServer(u UserService) *GRPCServer {
	return NewGRPCServer("", logging.Nop{}, u, nil, nil)
}

func incoming(auth string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", auth))
}

func TestInterceptor_PublicMethodsSkipToken(t *testing.T) {
	s := newInterceptorServer(&stubUsers{})

	for _, m := range []string{MethodRegister, MethodLogin, MethodPing} {
		called := false
		_, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: m},
			func(ctx context.Context, req any) (any, error) {
				called = true
				return "ok", nil
			})
		require.NoError(t, err, m)
		assert.True(t, called, m)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newInterceptorServer(&stubUsers{})

	_, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: MethodListBucketlists},
		func(ctx context.Context, req any) (any, error) {
			t.Fatal("handler must not run")
			return nil, nil
		})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, msgInvalidToken, st.Message())
}

func TestInterceptor_PutsUserIDInContext(t *testing.T) {
	for _, header := range []string{"Bearer tok", "tok"} {
		users := &stubUsers{token: "tok", id: 42}
		s := newInterceptorServer(users)

		var got int64
		_, err := s.accessTokenInterceptor(incoming(header), nil, &grpc.UnaryServerInfo{FullMethod: MethodCreateBucketlist},
			func(ctx context.Context, req any) (any, error) {
				got, _ = userIDFromContext(ctx)
				return nil, nil
			})
		require.NoError(t, err, header)
		assert.Equal(t, int64(42), got, header)
		assert.Equal(t, "tok", users.seen)
	}
}

func TestInterceptor_ExpiredToken(t *testing.T) {
	s := newInterceptorServer(&stubUsers{err: common.ErrTokenExpired})

	_, err := s.accessTokenInterceptor(incoming("Bearer old"), nil, &grpc.UnaryServerInfo{FullMethod: MethodDeleteAccount},
		func(ctx context.Context, req any) (any, error) { return nil, nil })
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, msgExpiredToken, st.Message())
}

func TestToStatus(t *testing.T) {
	s := newInterceptorServer(nil)

	cases := []struct {
		err  error
		code codes.Code
	}{
		{common.ErrTokenExpired, codes.Unauthenticated},
		{fmt.Errorf("%w: bad sig", common.ErrInvalidToken), codes.Unauthenticated},
		{common.ErrInvalidCredentials, codes.Unauthenticated},
		{common.ErrDuplicateEmail, codes.AlreadyExists},
		{fmt.Errorf("%w: name is required", common.ErrValidation), codes.InvalidArgument},
		{fmt.Errorf("owner 7: %w", common.ErrorNotFound), codes.NotFound},
		{common.ErrSigning, codes.Internal},
		{fmt.Errorf("persist user: %w", common.ErrStorageCommit), codes.Internal},
		{errors.New("boom"), codes.Internal},
		{status.Error(codes.PermissionDenied, "no"), codes.PermissionDenied},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, status.Code(s.toStatus(context.Background(), tc.err)), tc.err.Error())
	}
	assert.NoError(t, s.toStatus(context.Background(), nil))

	st, _ := status.FromError(s.toStatus(context.Background(), errors.New("pq: secret detail")))
	assert.NotContains(t, st.Message(), "secret detail")
}

func TestCurrentUser_WithoutInterceptor(t *testing.T) {
	_, err := currentUser(context.Background())
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
