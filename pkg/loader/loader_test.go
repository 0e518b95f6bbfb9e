// Test Type: Unit Test
// Description: Tests for the loader package - file, byte, and remote
// collection loading with cache fallback

package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scrub/pkg/loader"
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

const validDoc = `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: Privacy
    children:
      - name: Clear history
        code: rm -f ~/.bash_history
`

func TestFromBytes(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode scruberr.ErrorCode
	}{
		{
			name: "valid_document",
			doc:  validDoc,
		},
		{
			name:     "malformed_yaml_is_a_load_error",
			doc:      "os: [unclosed",
			wantCode: scruberr.ErrLoad,
		},
		{
			name:     "structural_violation_is_a_document_error",
			doc:      "os: linux",
			wantCode: scruberr.ErrDocumentInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll, err := loader.New().FromBytes([]byte(tt.doc))
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, scruberr.IsCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "linux", coll.OS)
		})
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linux.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0644))

	coll, err := loader.New().FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "linux", coll.OS)
}

func TestFromFile_Missing(t *testing.T) {
	_, err := loader.New().FromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, scruberr.IsCode(err, scruberr.ErrLoad))
}

func TestFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(validDoc))
	}))
	defer server.Close()

	coll, err := loader.New().FromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "linux", coll.OS)
}

func TestFromURL_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := loader.New().FromURL(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, scruberr.IsCode(err, scruberr.ErrLoad))
	assert.Equal(t, http.StatusNotFound, scruberr.DetailsOf(err)["status"])
}

func TestFromURL_CacheFallback(t *testing.T) {
	cacheDir := t.TempDir()

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(validDoc))
	}))

	l := loader.New(loader.WithCacheDir(cacheDir))

	// First load populates the cache.
	_, err := l.FromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	// With the remote gone, the cached copy still serves.
	url := server.URL
	server.Close()

	coll, err := l.FromURL(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, "linux", coll.OS)
}

func TestFromURL_NoCacheNoFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(validDoc))
	}))
	url := server.URL
	server.Close()

	_, err := loader.New().FromURL(context.Background(), url)
	require.Error(t, err)
	assert.True(t, scruberr.IsCode(err, scruberr.ErrLoad))
}

func TestFromURL_SizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		huge := make([]byte, (10<<20)+1)
		_, _ = w.Write(huge)
	}))
	defer server.Close()

	_, err := loader.New().FromURL(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, scruberr.IsCode(err, scruberr.ErrLoad))
	assert.Contains(t, err.Error(), "exceeds")
}
