package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	loader := NewLoader(time.Second, nil)

	c, err := loader.Load(context.Background(), Sources{})
	require.NoError(t, err)
	assert.Contains(t, c.Verbs(), "Get")
	assert.Contains(t, c.Nouns("Get"), "Process")
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Verbs:      writeFile(t, dir, "verbs.json", testVerbs),
		Parameters: writeFile(t, dir, "parameters.yaml", "cmdlets:\n  Get-Process:\n    parameters:\n      Name:\n        type: String\n"),
	}

	c, err := NewLoader(time.Second, nil).Load(context.Background(), src)
	require.NoError(t, err)

	cmdlet, ok := c.Cmdlet("Get-Process")
	require.True(t, ok)
	require.Len(t, cmdlet.Parameters, 1)
	assert.Equal(t, "Name", cmdlet.Parameters[0].Name)
}

func TestLoadFromHTTP(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/verbs.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testVerbs))
	})
	mux.HandleFunc("/parameters.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testSchemas))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	src := Sources{Verbs: srv.URL + "/verbs.json", Parameters: srv.URL + "/parameters.json"}
	assert.True(t, src.IsRemote())

	loader := NewLoader(5*time.Second, nil)
	loader.Client = srv.Client()
	c, err := loader.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestLoadFailsWholeWhenOneSourceFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/verbs.json" {
			_, _ = w.Write([]byte(testVerbs))
			return
		}
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	loader := NewLoader(5*time.Second, nil)
	loader.Client = srv.Client()
	c, err := loader.Load(context.Background(), Sources{
		Verbs:      srv.URL + "/verbs.json",
		Parameters: srv.URL + "/parameters.json",
	})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "parameter schema")
	assert.Contains(t, err.Error(), "404")
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	c, err := NewLoader(time.Second, nil).Load(context.Background(), Sources{
		Verbs:      filepath.Join(dir, "nope.json"),
		Parameters: writeFile(t, dir, "parameters.json", testSchemas),
	})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsInvalidCatalog(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader(time.Second, nil).Load(context.Background(), Sources{
		Verbs:      writeFile(t, dir, "verbs.json", `{"verbs": {"Get": ["Process", "Process"]}}`),
		Parameters: writeFile(t, dir, "parameters.json", `{"cmdlets": {}}`),
	})
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Len(t, loadErr.Problems, 1)
}

func TestLoadHonorsCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	loader := NewLoader(0, nil)
	loader.Client = srv.Client()

	done := make(chan error, 1)
	go func() {
		_, err := loader.Load(ctx, Sources{Verbs: srv.URL + "/v.json", Parameters: srv.URL + "/p.json"})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("load did not return after cancellation")
	}
}
