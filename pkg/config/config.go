// Package config loads the optional user configuration file. All values
// are defaults for CLI flags; the engine itself takes everything it needs
// as parameters and never reads configuration.
package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/scrub/pkg/logging"
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// Config represents user configuration from config.toml.
type Config struct {
	// CollectionsDir overrides where collection documents are read from.
	CollectionsDir string `toml:"collections_dir"`

	// BaseURL is the remote location collection documents are fetched
	// from when a local file is not present.
	BaseURL string `toml:"base_url"`

	// Level is the default recommendation filter ("", "standard" or
	// "strict").
	Level string `toml:"level"`
}

// Load reads the configuration file at path. A missing file is not an
// error: it yields the zero configuration.
func Load(path string) (Config, error) {
	log := logging.GetLogger("config")

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Trace().Str("path", path).Msg("No config file, using defaults")
			return cfg, nil
		}
		return cfg, scruberr.Wrapf(err, scruberr.ErrLoad, "failed to read config file %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, scruberr.Wrapf(err, scruberr.ErrLoad, "failed to parse config file %s", path)
	}

	log.Debug().Str("path", path).Msg("Loaded config file")
	return cfg, nil
}
