package tracker

import (
	"context"
	"time"

	"github.com/julianstephens/goaltrack/internal/gist"
	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/models"
)

// Syncer reconciles a local document with a remote copy.
type Syncer interface {
	Sync(ctx context.Context, local models.AppData, id string) (gist.Result, error)
}

// Sync exchanges the whole document with the remote and stores the winner
// along with the gist id and sync time. The winner's lastUpdated is kept.
func (s *Service) Sync(ctx context.Context, remote Syncer) (gist.Result, error) {
	local, err := s.store.Export()
	if err != nil {
		return gist.Result{}, err
	}
	id := ""
	if local.Settings != nil {
		id = local.Settings.GistID
	}

	res, err := remote.Sync(ctx, local, id)
	if err != nil {
		return gist.Result{}, err
	}

	data := res.Data
	settings := models.DefaultSettings()
	if data.Settings != nil {
		settings = *data.Settings
	}
	settings.GistID = res.GistID
	settings.LastSynced = s.now().UTC().Format(time.RFC3339)
	data.Settings = &settings
	if data.LastUpdated.IsZero() {
		data.LastUpdated = local.LastUpdated
	}

	if err := s.store.Import(data); err != nil {
		return gist.Result{}, err
	}
	logger.Info("Sync complete", "direction", res.Direction, "gist", res.GistID)
	res.Data = data
	return res, nil
}
