// Package gist stores the AppData document in a private GitHub gist and
// reconciles it with the local copy, last writer wins.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/models"
)

// legacyFileName is the data file written by early versions.
const legacyFileName = "habit-tracker-data.json"

var (
	ErrUnauthorized = errors.New("GitHub rejected the token")
	ErrGistNotFound = errors.New("gist not found")
	// ErrNoData means the gist exists but holds no goaltrack document.
	ErrNoData = errors.New("gist has no goaltrack data")
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client that authenticates every request with token.
func New(ctx context.Context, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		BaseURL: constants.GitHubAPIURL,
		HTTP:    oauth2.NewClient(ctx, src),
	}
}

type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated,omitempty"`
	RawURL    string `json:"raw_url,omitempty"`
}

type gistBody struct {
	ID          string              `json:"id,omitempty"`
	Description string              `json:"description,omitempty"`
	Public      *bool               `json:"public,omitempty"`
	Files       map[string]gistFile `json:"files"`
}

func (c *Client) do(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrGistNotFound
	case resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %s: %s", method, url, resp.Status, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if s, ok := out.(*string); ok {
		raw, err := io.ReadAll(resp.Body)
		*s = string(raw)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Pull downloads and decodes the document stored in gist id.
func (c *Client) Pull(ctx context.Context, id string) (models.AppData, error) {
	var g gistBody
	if err := c.do(ctx, http.MethodGet, c.BaseURL+"/gists/"+id, nil, &g); err != nil {
		return models.AppData{}, err
	}

	file, ok := g.Files[constants.GistFileName]
	if !ok {
		file, ok = g.Files[legacyFileName]
	}
	if !ok {
		return models.AppData{}, ErrNoData
	}

	content := file.Content
	if file.Truncated && file.RawURL != "" {
		logger.Debug("Gist file truncated, fetching raw content", "gist", id)
		if err := c.do(ctx, http.MethodGet, file.RawURL, nil, &content); err != nil {
			return models.AppData{}, err
		}
	}
	if strings.TrimSpace(content) == "" {
		return models.AppData{}, ErrNoData
	}

	data, skipped, err := models.DecodeAppData([]byte(content))
	if err != nil {
		return models.AppData{}, fmt.Errorf("gist %s holds invalid data: %w", id, err)
	}
	for _, day := range skipped {
		logger.Warn("Skipping malformed day record in gist", "gist", id, "date", day)
	}
	return data, nil
}

// Push writes data to gist id, creating a private gist when id is empty.
// It returns the gist id written to.
func (c *Client) Push(ctx context.Context, id string, data models.AppData) (string, error) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	files := map[string]gistFile{constants.GistFileName: {Content: string(raw)}}

	var out gistBody
	if id == "" {
		private := false
		body := gistBody{Description: constants.GistDescription, Public: &private, Files: files}
		if err := c.do(ctx, http.MethodPost, c.BaseURL+"/gists", body, &out); err != nil {
			return "", err
		}
		logger.Info("Created gist", "gist", out.ID)
		return out.ID, nil
	}

	if err := c.do(ctx, http.MethodPatch, c.BaseURL+"/gists/"+id, gistBody{Files: files}, &out); err != nil {
		return "", err
	}
	return id, nil
}
