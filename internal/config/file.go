package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the CLI config file looked up in the working directory.
const DefaultFileName = "navgest.toml"

// FileConfig holds CLI defaults. Command-line flags override every field.
type FileConfig struct {
	LogoText     string  `toml:"logo_text"`
	Format       string  `toml:"format"`
	TitleCase    bool    `toml:"title_case"`
	Language     string  `toml:"language"`
	RowTolerance float64 `toml:"row_tolerance"`
}

// DefaultFileConfig returns the values used when no file sets them.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Format:   "tree",
		Language: "en",
	}
}

// LoadFile decodes path over the defaults. A missing file is not an error
// unless required is set. Unknown keys are returned so callers can warn.
func LoadFile(path string, required bool) (FileConfig, []string, error) {
	cfg := DefaultFileConfig()
	if path == "" {
		return cfg, nil, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return DefaultFileConfig(), nil, nil
		}
		return DefaultFileConfig(), nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		unknown = append(unknown, key.String())
	}
	if err := cfg.validate(); err != nil {
		return DefaultFileConfig(), unknown, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, unknown, nil
}

func (c FileConfig) validate() error {
	switch c.Format {
	case "tree", "json", "yaml":
	default:
		return fmt.Errorf("format must be tree, json or yaml, got %q", c.Format)
	}
	if c.RowTolerance < 0 {
		return fmt.Errorf("row_tolerance must not be negative")
	}
	return nil
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
