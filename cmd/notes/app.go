package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/dimitrije/notes/pkg/client"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/dimitrije/notes/pkg/items"
	"github.com/dimitrije/notes/pkg/workspaces"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	errNotSignedIn       = errors.New("not signed in, run `notes login` first")
	errNoActiveWorkspace = errors.New("no workspace yet, create one with `notes workspaces new <name>`")
)

// app carries what every command needs. It is filled in by the root command's
// PersistentPreRunE.
type app struct {
	cfgFile   string
	workspace string
	verbose   bool

	out    io.Writer
	v      *viper.Viper
	client *client.Client
	logger *log.Logger
	store  *workspaces.Store
}

func (a *app) setup(cmd *cobra.Command) error {
	v, err := loadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	a.v = v
	a.out = cmd.OutOrStdout()
	a.client = client.New(v.GetString(keyServerURL), client.WithToken(v.GetString(keyAccessToken)))

	a.logger = log.New(io.Discard, "", 0)
	if a.verbose {
		a.logger = log.New(cmd.ErrOrStderr(), "notes: ", log.LstdFlags)
	}
	return nil
}

// authenticate checks the stored access token and trades the refresh token
// for a new pair when the server rejects it.
func (a *app) authenticate(ctx context.Context) error {
	if a.client.Token() == "" && a.v.GetString(keyRefreshToken) == "" {
		return errNotSignedIn
	}

	_, err := a.client.Me(ctx)
	if err == nil {
		return nil
	}
	if !client.IsUnauthorized(err) {
		return err
	}

	refresh := a.v.GetString(keyRefreshToken)
	if refresh == "" {
		return errNotSignedIn
	}
	tokens, err := a.client.Refresh(ctx, refresh)
	if err != nil {
		if client.IsUnauthorized(err) {
			return errNotSignedIn
		}
		return err
	}
	a.logger.Printf("access token refreshed")
	return a.saveTokens(tokens.AccessToken, tokens.RefreshToken)
}

func (a *app) saveTokens(access, refresh string) error {
	a.client.SetToken(access)
	a.v.Set(keyAccessToken, access)
	a.v.Set(keyRefreshToken, refresh)
	return saveConfig(a.v)
}

// open signs in, loads the workspace list and activates the workspace named by
// --workspace, the configured default, or the first one.
func (a *app) open(ctx context.Context) (*workspaces.Store, error) {
	if err := a.authenticate(ctx); err != nil {
		return nil, err
	}

	want := a.workspace
	if want == "" {
		want = a.v.GetString(keyWorkspace)
	}

	store := workspaces.NewStore(a.client, workspaces.WithLogger(a.logger))
	_, err := store.FetchWith(ctx, func(list []dto.Workspace) (string, error) {
		if want == "" {
			return "", nil
		}
		return matchWorkspace(list, want)
	})
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// session returns the items session of the active workspace.
func (a *app) session(ctx context.Context) (*items.Session, error) {
	store, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	session := store.Items()
	if session == nil {
		return nil, errNoActiveWorkspace
	}
	return session, nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
