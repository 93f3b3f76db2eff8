package gist

import (
	"context"
	"errors"

	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/models"
)

type Direction string

const (
	Pulled    Direction = "pulled"
	Pushed    Direction = "pushed"
	Unchanged Direction = "unchanged"
)

// Result reports what Sync did. Data is the document both sides now hold.
type Result struct {
	Direction Direction
	Data      models.AppData
	GistID    string
}

// Sync reconciles local with gist id by lastUpdated: the newer side wins
// whole. An empty id, or a gist without data, is seeded from local.
func (c *Client) Sync(ctx context.Context, local models.AppData, id string) (Result, error) {
	if id != "" {
		remote, err := c.Pull(ctx, id)
		switch {
		case errors.Is(err, ErrNoData):
			logger.Debug("Gist empty, seeding from local", "gist", id)
		case err != nil:
			return Result{}, err
		case remote.LastUpdated.After(local.LastUpdated):
			return Result{Direction: Pulled, Data: remote, GistID: id}, nil
		case remote.LastUpdated.Equal(local.LastUpdated):
			return Result{Direction: Unchanged, Data: local, GistID: id}, nil
		}
	}

	newID, err := c.Push(ctx, id, local)
	if err != nil {
		return Result{}, err
	}
	return Result{Direction: Pushed, Data: local, GistID: newID}, nil
}
