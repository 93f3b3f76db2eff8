package gist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
)

// fakeGitHub serves a minimal in-memory subset of the gists API.
type fakeGitHub struct {
	mu     sync.Mutex
	token  string
	gists  map[string]map[string]gistFile
	nextID int
	pushes int
}

func newFakeGitHub(t *testing.T) (*fakeGitHub, *Client) {
	t.Helper()
	f := &fakeGitHub{token: "tok", gists: map[string]map[string]gistFile{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	c := New(context.Background(), "tok")
	c.BaseURL = srv.URL
	return f, c
}

func (f *fakeGitHub) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+f.token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/gists/")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/gists":
		var body gistBody
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Public == nil || *body.Public {
			http.Error(w, "expected private gist", http.StatusUnprocessableEntity)
			return
		}
		f.nextID++
		newID := fmt.Sprintf("g%d", f.nextID)
		f.gists[newID] = body.Files
		f.pushes++
		_ = json.NewEncoder(w).Encode(gistBody{ID: newID, Files: body.Files})
	case r.Method == http.MethodPatch:
		files, ok := f.gists[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body gistBody
		_ = json.NewDecoder(r.Body).Decode(&body)
		for name, file := range body.Files {
			files[name] = file
		}
		f.pushes++
		_ = json.NewEncoder(w).Encode(gistBody{ID: id, Files: files})
	case r.Method == http.MethodGet:
		files, ok := f.gists[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(gistBody{ID: id, Files: files})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeGitHub) put(t *testing.T, id, name string, data models.AppData) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gists[id] = map[string]gistFile{name: {Content: string(raw)}}
}

func document(updated time.Time, habitName string) models.AppData {
	d := models.NewAppData()
	d.RoutineCategories = []models.RoutineCategory{{
		ID: "r1", Name: "Morning", Type: models.CategoryHealth,
		Habits: []models.Habit{{ID: "h1", Name: habitName}},
	}}
	d.LastUpdated = updated
	return d
}

var (
	older = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	newer = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
)

func TestPushCreatesThenUpdates(t *testing.T) {
	f, c := newFakeGitHub(t)
	ctx := context.Background()

	id, err := c.Push(ctx, "", document(older, "Read"))
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if id == "" {
		t.Fatal("Push() returned empty id for a new gist")
	}

	if _, err := c.Push(ctx, id, document(newer, "Write")); err != nil {
		t.Fatalf("Push(update) error = %v", err)
	}
	got, err := c.Pull(ctx, id)
	if err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
	if got.RoutineCategories[0].Habits[0].Name != "Write" || !got.LastUpdated.Equal(newer) {
		t.Errorf("Pull() = %+v, want updated document", got)
	}
	if f.pushes != 2 {
		t.Errorf("pushes = %d, want 2", f.pushes)
	}
}

func TestPullErrors(t *testing.T) {
	f, c := newFakeGitHub(t)
	ctx := context.Background()

	if _, err := c.Pull(ctx, "missing"); !errors.Is(err, ErrGistNotFound) {
		t.Errorf("Pull(missing) error = %v, want ErrGistNotFound", err)
	}

	f.mu.Lock()
	f.gists["other"] = map[string]gistFile{"notes.md": {Content: "hi"}}
	f.mu.Unlock()
	if _, err := c.Pull(ctx, "other"); !errors.Is(err, ErrNoData) {
		t.Errorf("Pull(other) error = %v, want ErrNoData", err)
	}

	bad := New(ctx, "wrong")
	bad.BaseURL = c.BaseURL
	if _, err := bad.Pull(ctx, "other"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Pull() with bad token error = %v, want ErrUnauthorized", err)
	}
}

func TestPullLegacyFileName(t *testing.T) {
	f, c := newFakeGitHub(t)
	doc := document(older, "Read")
	doc.Version = ""
	f.put(t, "legacy", legacyFileName, doc)

	got, err := c.Pull(context.Background(), "legacy")
	if err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
	if habits := got.Catalog().Habits(); len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("Pull() habits = %+v, want [Read]", habits)
	}
	if got.Version != constants.DataVersion {
		t.Errorf("Version = %q, want defaulted %q", got.Version, constants.DataVersion)
	}
}

func TestPullSkipsMalformedDay(t *testing.T) {
	f, c := newFakeGitHub(t)
	content := `{
  "version": "2.0.0",
  "routineCategories": [{"id": "r1", "name": "Morning", "type": "health",
    "habits": [{"id": "h1", "name": "Read"}]}],
  "plannedCategories": [],
  "days": {
    "2026-03-01": {"routine": {"h1": true}, "planned": {}},
    "2026-03-02": {"routine": {"h1": "yes"}, "planned": {}}
  }
}`
	f.mu.Lock()
	f.gists["mixed"] = map[string]gistFile{constants.GistFileName: {Content: content}}
	f.mu.Unlock()

	got, err := c.Pull(context.Background(), "mixed")
	if err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
	if len(got.Days) != 1 {
		t.Errorf("Pull() days = %d, want 1", len(got.Days))
	}
	if rec, ok := got.Days["2026-03-01"]; !ok || !rec.Routine["h1"].Truthy() {
		t.Errorf("day 2026-03-01 = %+v, %v", rec, ok)
	}
	if habits := got.Catalog().Habits(); len(habits) != 1 {
		t.Errorf("Pull() habits = %d, want 1", len(habits))
	}
}

func TestSync(t *testing.T) {
	tests := []struct {
		name      string
		remote    *models.AppData
		local     models.AppData
		want      Direction
		wantHabit string
	}{
		{"remote newer pulls", ptr(document(newer, "Remote")), document(older, "Local"), Pulled, "Remote"},
		{"local newer pushes", ptr(document(older, "Remote")), document(newer, "Local"), Pushed, "Local"},
		{"same stamp is unchanged", ptr(document(older, "Remote")), document(older, "Local"), Unchanged, "Local"},
		{"no gist yet pushes", nil, document(older, "Local"), Pushed, "Local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, c := newFakeGitHub(t)
			id := ""
			if tt.remote != nil {
				id = "existing"
				f.put(t, id, constants.GistFileName, *tt.remote)
			}

			res, err := c.Sync(context.Background(), tt.local, id)
			if err != nil {
				t.Fatalf("Sync() error = %v", err)
			}
			if res.Direction != tt.want {
				t.Errorf("Sync() direction = %s, want %s", res.Direction, tt.want)
			}
			if got := res.Data.RoutineCategories[0].Habits[0].Name; got != tt.wantHabit {
				t.Errorf("Sync() data habit = %q, want %q", got, tt.wantHabit)
			}
			if res.GistID == "" {
				t.Error("Sync() returned empty gist id")
			}

			stored, err := c.Pull(context.Background(), res.GistID)
			if err != nil {
				t.Fatalf("Pull() after sync error = %v", err)
			}
			if got := stored.RoutineCategories[0].Habits[0].Name; got != tt.wantHabit && tt.want != Unchanged {
				t.Errorf("gist holds %q after sync, want %q", got, tt.wantHabit)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
