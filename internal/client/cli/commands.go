package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	gs "github.com/dmitrijs2005/bucketlist/internal/server/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// report prints err for the user.
func (a *App) report(err error) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok {
		fmt.Fprintln(a.out, "Error:", st.Message())
		return err
	}
	fmt.Fprintln(a.out, "Error:", err)
	return err
}

// reportAuthed is report for calls sent with the stored token. An
// Unauthenticated reply means that token is no longer accepted, so it is
// dropped and the prompt asks for a login.
func (a *App) reportAuthed(err error) error {
	if status.Code(err) == codes.Unauthenticated {
		a.token = ""
		a.email = ""
	}
	return a.report(err)
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("bucketlist id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid bucketlist id %q", args[0])
	}
	return id, nil
}

func (a *App) printBucketlist(b *gs.Bucketlist) {
	fmt.Fprintf(a.out, "%d\t%s\tcreated %s\tmodified %s\n", b.ID, b.Name,
		b.DateCreated.Local().Format("2006-01-02 15:04"), b.DateModified.Local().Format("2006-01-02 15:04"))
}

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.api.Ping(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Server:", resp.Status)
	return nil
}

// Register prompts for an email and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer clear(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.api.Register(ctx, &gs.RegisterRequest{Email: email, Password: string(password)})
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Registered %s (id %d). You can login now.\n", resp.Email, resp.ID)
	return nil
}

// Login prompts for credentials and keeps the returned token.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer clear(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.api.Login(ctx, &gs.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return a.report(err)
	}
	a.token = resp.Token
	a.email = email
	fmt.Fprintln(a.out, "Success!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.email = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Create(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		var err error
		if name, err = getSimpleText(a.reader, "Enter bucketlist name", a.out); err != nil {
			return err
		}
	}

	ctx, cancel, err := a.authCtx(ctx)
	if err != nil {
		return a.report(err)
	}
	defer cancel()

	b, err := a.api.CreateBucketlist(ctx, &gs.CreateBucketlistRequest{Name: name})
	if err != nil {
		return a.reportAuthed(err)
	}
	a.printBucketlist(b)
	return nil
}

func (a *App) List(ctx context.Context) error {
	ctx, cancel, err := a.authCtx(ctx)
	if err != nil {
		return a.report(err)
	}
	defer cancel()

	resp, err := a.api.ListBucketlists(ctx)
	if err != nil {
		return a.reportAuthed(err)
	}
	if len(resp.Bucketlists) == 0 {
		fmt.Fprintln(a.out, "No bucketlists yet")
		return nil
	}
	for _, b := range resp.Bucketlists {
		a.printBucketlist(b)
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.report(err)
	}
	ctx, cancel, err := a.authCtx(ctx)
	if err != nil {
		return a.report(err)
	}
	defer cancel()

	b, err := a.api.GetBucketlist(ctx, &gs.GetBucketlistRequest{ID: id})
	if err != nil {
		return a.reportAuthed(err)
	}
	a.printBucketlist(b)
	return nil
}

func (a *App) Rename(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.report(err)
	}
	name := strings.Join(args[1:], " ")

	ctx, cancel, err := a.authCtx(ctx)
	if err != nil {
		return a.report(err)
	}
	defer cancel()

	b, err := a.api.RenameBucketlist(ctx, &gs.RenameBucketlistRequest{ID: id, Name: name})
	if err != nil {
		return a.reportAuthed(err)
	}
	a.printBucketlist(b)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.report(err)
	}
	ctx, cancel, err := a.authCtx(ctx)
	if err != nil {
		return a.report(err)
	}
	defer cancel()

	if err := a.api.DeleteBucketlist(ctx, &gs.DeleteBucketlistRequest{ID: id}); err != nil {
		return a.reportAuthed(err)
	}
	fmt.Fprintln(a.out, "Deleted", id)
	return nil
}

// Export asks the server for an export link. With a file argument the
// export is downloaded and written there.
func (a *App) Export(ctx context.Context, args []string) error {
	ctx, cancel, err := a.authCtx(ctx)
	if err != nil {
		return a.report(err)
	}
	defer cancel()

	resp, err := a.api.ExportBucketlists(ctx)
	if err != nil {
		return a.reportAuthed(err)
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, resp.URL)
		return nil
	}

	body, err := download(ctx, resp.URL)
	if err != nil {
		return a.report(err)
	}
	if err := os.WriteFile(args[0], body, 0o600); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Saved %d bytes to %s\n", len(body), args[0])
	return nil
}

// DeleteAccount removes the account after a typed confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}
	ok, err := Confirm(a.reader, "Delete your account and all bucketlists?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	ctx, cancel, err := a.authCtx(ctx)
	if err != nil {
		return a.report(err)
	}
	defer cancel()

	if err := a.api.DeleteAccount(ctx); err != nil {
		return a.reportAuthed(err)
	}
	a.token = ""
	a.email = ""
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
