// Package paths provides centralized path handling for scrub.
// It implements XDG Base Directory specification compliance and provides a
// consistent API for all path operations in the codebase.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvCollectionsDir overrides where collection documents are looked up
	EnvCollectionsDir = "SCRUB_COLLECTIONS_DIR"

	// EnvConfigDir overrides the XDG config directory for scrub
	EnvConfigDir = "SCRUB_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for scrub
	EnvCacheDir = "SCRUB_CACHE_DIR"
)

// Default directories and files
const (
	// AppDirName is the per-app subdirectory under the XDG base dirs
	AppDirName = "scrub"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// CollectionsDirName is the default directory name for collection
	// documents, resolved relative to the working directory when no
	// override is set
	CollectionsDirName = "collections"

	// RemoteCacheDirName is the cache subdirectory for downloaded
	// collection documents
	RemoteCacheDirName = "remote"
)

// Paths provides centralized path management for scrub.
type Paths struct {
	configDir      string
	cacheDir       string
	collectionsDir string
}

// New creates a Paths instance. collectionsDir may be empty, in which case
// it is resolved from the environment or the default location.
func New(collectionsDir string) *Paths {
	p := &Paths{
		configDir: filepath.Join(xdg.ConfigHome, AppDirName),
		cacheDir:  filepath.Join(xdg.CacheHome, AppDirName),
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	}
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = dir
	}

	switch {
	case collectionsDir != "":
		p.collectionsDir = collectionsDir
	case os.Getenv(EnvCollectionsDir) != "":
		p.collectionsDir = os.Getenv(EnvCollectionsDir)
	default:
		p.collectionsDir = CollectionsDirName
	}

	return p
}

// ConfigDir returns the scrub config directory.
func (p *Paths) ConfigDir() string { return p.configDir }

// CacheDir returns the scrub cache directory.
func (p *Paths) CacheDir() string { return p.cacheDir }

// CollectionsDir returns the directory collection documents are read from.
func (p *Paths) CollectionsDir() string { return p.collectionsDir }

// ConfigFilePath returns the path of the user configuration file.
func (p *Paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// CollectionPath returns the document path for an OS target, e.g.
// collections/linux.yaml.
func (p *Paths) CollectionPath(osName string) string {
	return filepath.Join(p.collectionsDir, fmt.Sprintf("%s.yaml", osName))
}

// RemoteCacheDir returns the cache directory for downloaded collections.
func (p *Paths) RemoteCacheDir() string {
	return filepath.Join(p.cacheDir, RemoteCacheDirName)
}
