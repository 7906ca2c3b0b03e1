// Package cli provides the interactive bucketlist command-line client.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// Commands map one to one onto the server's gRPC methods; the access token
// obtained by "login" is kept in memory and sent as a bearer token.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/bucketlist/internal/client/config"
	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/netx"
	gs "github.com/dmitrijs2005/bucketlist/internal/server/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// API is the server surface used by the CLI; *gs.Client satisfies it.
type API interface {
	Register(ctx context.Context, in *gs.RegisterRequest, opts ...grpc.CallOption) (*gs.RegisterResponse, error)
	Login(ctx context.Context, in *gs.LoginRequest, opts ...grpc.CallOption) (*gs.LoginResponse, error)
	Ping(ctx context.Context, opts ...grpc.CallOption) (*gs.PingResponse, error)
	CreateBucketlist(ctx context.Context, in *gs.CreateBucketlistRequest, opts ...grpc.CallOption) (*gs.Bucketlist, error)
	GetBucketlist(ctx context.Context, in *gs.GetBucketlistRequest, opts ...grpc.CallOption) (*gs.Bucketlist, error)
	ListBucketlists(ctx context.Context, opts ...grpc.CallOption) (*gs.ListBucketlistsResponse, error)
	RenameBucketlist(ctx context.Context, in *gs.RenameBucketlistRequest, opts ...grpc.CallOption) (*gs.Bucketlist, error)
	DeleteBucketlist(ctx context.Context, in *gs.DeleteBucketlistRequest, opts ...grpc.CallOption) error
	DeleteAccount(ctx context.Context, opts ...grpc.CallOption) error
	ExportBucketlists(ctx context.Context, opts ...grpc.CallOption) (*gs.ExportBucketlistsResponse, error)
}

// getSimpleText and getPassword are indirections used in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// download is a seam over netx.DownloadFromPresignedURL.
var download = func(ctx context.Context, url string) ([]byte, error) {
	return netx.DownloadFromPresignedURL(ctx, http.DefaultClient, url)
}

var errNotLoggedIn = errors.New("not logged in")

type App struct {
	config *config.Config
	api    API
	conn   io.Closer
	token  string
	email  string
	reader *bufio.Reader
	out    io.Writer
}

// NewApp creates a client connection to the configured server. The
// connection is established lazily by gRPC on the first call.
func NewApp(c *config.Config) (*App, error) {
	conn, err := grpc.NewClient(c.ServerEndpointAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc client: %w", err)
	}
	return newApp(c, gs.NewClient(conn), conn, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api API, conn io.Closer, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		api:    api,
		conn:   conn,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}

func (a *App) isLoggedIn() bool { return a.token != "" }

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

// callCtx bounds a single request by the configured timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// authCtx is callCtx plus the bearer token.
func (a *App) authCtx(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if !a.isLoggedIn() {
		return nil, nil, errNotLoggedIn
	}
	ctx, cancel := a.callCtx(ctx)
	ctx = metadata.AppendToOutgoingContext(ctx, common.AuthorizationHeaderName, common.BearerPrefix+a.token)
	return ctx, cancel, nil
}

// Root prints a banner and runs the REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Bucketlist CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
