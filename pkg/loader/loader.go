// Package loader turns collection documents into built Collections. It is
// the engine's only I/O boundary: documents come from a local file, raw
// bytes, or a remote URL, and every fetch/parse failure is a LOAD error,
// kept distinct from the structural DOCUMENT_INVALID errors raised by the
// model itself. Loads are one-shot; the loader never retries.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/scrub/pkg/collection"
	"github.com/arthur-debert/scrub/pkg/logging"
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// maxDocumentBytes is the upper bound on a fetched document's size.
// Prevents unbounded memory consumption from a malicious or malformed
// remote.
const maxDocumentBytes = 10 << 20

// Loader fetches and builds collections.
type Loader struct {
	client   *http.Client
	cacheDir string
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client used for remote loads.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) { l.client = client }
}

// WithCacheDir enables caching of downloaded documents in dir. Remote
// loads fall back to the cached copy when the network is unavailable.
func WithCacheDir(dir string) Option {
	return func(l *Loader) { l.cacheDir = dir }
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FromBytes decodes and builds a collection from raw document bytes.
func (l *Loader) FromBytes(data []byte) (*collection.Collection, error) {
	doc, err := collection.Decode(data)
	if err != nil {
		return nil, scruberr.Wrap(err, scruberr.ErrLoad, "failed to parse collection document")
	}
	return collection.Build(doc)
}

// FromFile loads a collection from a local YAML file.
func (l *Loader) FromFile(path string) (*collection.Collection, error) {
	log := logging.GetLogger("loader")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, scruberr.Wrapf(err, scruberr.ErrLoad, "failed to read collection file %s", path).
			WithDetail("path", path)
	}

	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Read collection file")
	return l.FromBytes(data)
}

// FromURL loads a collection from a remote address. On success the raw
// document is cached (best effort) when a cache dir is configured; on a
// network failure the cached copy, if any, is used instead.
func (l *Loader) FromURL(ctx context.Context, url string) (*collection.Collection, error) {
	log := logging.GetLogger("loader")

	data, err := l.fetch(ctx, url)
	if err != nil {
		if cached, cacheErr := l.readCache(url); cacheErr == nil {
			log.Warn().Err(err).Str("url", url).Msg("Fetch failed, using cached collection")
			return l.FromBytes(cached)
		}
		return nil, err
	}

	l.writeCache(url, data)
	log.Debug().Str("url", url).Int("bytes", len(data)).Msg("Fetched collection")
	return l.FromBytes(data)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, scruberr.Wrapf(err, scruberr.ErrLoad, "invalid collection URL %s", url).
			WithDetail("url", url)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, scruberr.Wrapf(err, scruberr.ErrLoad, "failed to fetch collection from %s", url).
			WithDetail("url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, scruberr.Newf(scruberr.ErrLoad, "unexpected status %d fetching %s", resp.StatusCode, url).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, scruberr.Wrapf(err, scruberr.ErrLoad, "failed to read collection body from %s", url).
			WithDetail("url", url)
	}
	if len(data) > maxDocumentBytes {
		return nil, scruberr.Newf(scruberr.ErrLoad, "collection document from %s exceeds %d bytes", url, maxDocumentBytes).
			WithDetail("url", url)
	}

	return data, nil
}

// cachePath keys cached documents by URL hash so unrelated URLs never
// collide.
func (l *Loader) cachePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(l.cacheDir, fmt.Sprintf("%s.yaml", hex.EncodeToString(sum[:8])))
}

func (l *Loader) readCache(url string) ([]byte, error) {
	if l.cacheDir == "" {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(l.cachePath(url))
}

func (l *Loader) writeCache(url string, data []byte) {
	if l.cacheDir == "" {
		return
	}
	log := logging.GetLogger("loader")
	if err := os.MkdirAll(l.cacheDir, 0755); err != nil {
		log.Debug().Err(err).Msg("Failed to create cache dir")
		return
	}
	if err := os.WriteFile(l.cachePath(url), data, 0644); err != nil {
		log.Debug().Err(err).Msg("Failed to write cache file")
	}
}
