package cli

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/scrub/internal/version"
	"github.com/arthur-debert/scrub/pkg/assembler"
	"github.com/arthur-debert/scrub/pkg/collection"
	"github.com/arthur-debert/scrub/pkg/compiler"
	"github.com/arthur-debert/scrub/pkg/config"
	"github.com/arthur-debert/scrub/pkg/loader"
	"github.com/arthur-debert/scrub/pkg/paths"
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// systemOS maps the running system to a collection OS target.
func systemOS() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	default:
		return runtime.GOOS
	}
}

// loadCollection resolves the collection source from flags and config and
// loads it. Precedence: --file, --url, then <collections-dir>/<os>.yaml,
// with the config file's base_url as a remote fallback location. The loaded
// config is returned alongside so commands can apply its flag defaults.
func loadCollection(ctx context.Context, flags *rootFlags) (*collection.Collection, config.Config, error) {
	p := paths.New(flags.collectionsDir)

	cfg, err := config.Load(p.ConfigFilePath())
	if err != nil {
		return nil, cfg, err
	}
	if flags.collectionsDir == "" && cfg.CollectionsDir != "" {
		p = paths.New(cfg.CollectionsDir)
	}

	l := loader.New(loader.WithCacheDir(p.RemoteCacheDir()))

	switch {
	case flags.file != "":
		coll, err := l.FromFile(flags.file)
		return coll, cfg, err
	case flags.url != "":
		coll, err := l.FromURL(ctx, flags.url)
		return coll, cfg, err
	}

	osName := flags.osName
	if osName == "" {
		osName = systemOS()
		log.Debug().Str("os", osName).Msg("Using system OS target")
	}

	path := p.CollectionPath(osName)
	coll, err := l.FromFile(path)
	if err == nil || cfg.BaseURL == "" || !scruberr.IsCode(err, scruberr.ErrLoad) {
		return coll, cfg, err
	}

	url := cfg.BaseURL + "/" + osName + ".yaml"
	log.Debug().Str("path", path).Str("url", url).Msg("Local collection missing, trying remote")
	coll, err = l.FromURL(ctx, url)
	return coll, cfg, err
}

// selectionFlags holds the flags shared by the script and run commands.
type selectionFlags struct {
	level  string
	revert bool
}

// buildSelection converts command arguments and flags into a compiler
// selection. defaultLevel is the config file's level, applied only when the
// --level flag is unset.
func buildSelection(args []string, flags selectionFlags, defaultLevel string) (compiler.Selection, error) {
	spec := flags.level
	if spec == "" {
		spec = defaultLevel
	}

	level, ok := compiler.ParseLevel(spec)
	if !ok {
		return compiler.Selection{}, scruberr.Newf(scruberr.ErrCompile,
			"invalid level %q: must be standard or strict", spec).
			WithDetail("level", spec)
	}

	direction := compiler.Forward
	if flags.revert {
		direction = compiler.Revert
	}

	return compiler.Selection{
		Names:     args,
		Level:     level,
		Direction: direction,
	}, nil
}

// assembleOptions builds the assembler options for one compilation.
func assembleOptions(revert bool) assembler.Options {
	return assembler.Options{
		Revert: revert,
		Metadata: assembler.Metadata{
			Homepage: Homepage,
			Version:  version.Version,
			Date:     time.Now(),
		},
	}
}
