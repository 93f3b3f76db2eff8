package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/gist"
	"github.com/julianstephens/goaltrack/internal/keyring"
	"github.com/julianstephens/goaltrack/internal/tracker"
)

var errNoToken = errors.New("no GitHub token: set GOALTRACK_GITHUB_TOKEN or run 'goaltrack token set'")

// newSyncer is replaced in tests.
var newSyncer = func(ctx context.Context, token string) tracker.Syncer {
	return gist.New(ctx, token)
}

type SyncCmd struct {
	Token string `env:"GOALTRACK_GITHUB_TOKEN" help:"GitHub token with gist scope. Read from the OS keyring when unset."`
}

func (c *SyncCmd) token() (string, error) {
	if t := strings.TrimSpace(c.Token); t != "" {
		return t, nil
	}
	t, err := keyring.GetToken()
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", errNoToken
	case err != nil:
		return "", err
	}
	return t, nil
}

func (c *SyncCmd) Run(ctx *cli.Context) error {
	token, err := c.token()
	if err != nil {
		return err
	}

	syncCtx, cancel := context.WithTimeout(context.Background(), constants.SyncTimeout)
	defer cancel()

	ctx.PerformAutomaticBackup()
	res, err := ctx.Tracker.Sync(syncCtx, newSyncer(syncCtx, token))
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	switch res.Direction {
	case gist.Pulled:
		ctx.Printf("✓ Pulled newer data from gist %s\n", res.GistID)
	case gist.Pushed:
		ctx.Printf("✓ Pushed local data to gist %s\n", res.GistID)
	default:
		ctx.Printf("✓ Already in sync with gist %s\n", res.GistID)
	}
	return nil
}
