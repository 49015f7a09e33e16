package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/pipeline"
)

// fileConfig is the layout of the TOML config file.
type fileConfig struct {
	// CacheDir overrides the default cache directory.
	CacheDir string `toml:"cache_dir"`

	// Render holds defaults for the render and layout commands.
	Render pipeline.Options `toml:"render"`

	// Server holds defaults for the serve command. Environment variables
	// take precedence.
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
}

// loadConfig reads the config file at path, or the default file when path
// is empty. A missing default file yields an empty config; a missing
// explicit file is an error. Unknown keys are rejected.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
