package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "albumq"

// Default library file names, looked up in the XDG data directory.
const (
	defaultDBFile  = "library.db"
	defaultTSVFile = "library.tsv"
)

type Config struct {
	FileType      string `koanf:"file_type"`      // "db" or "tsv" (default: "db")
	DBPath        string `koanf:"db_path"`        // database export used when --file is not given
	TSVPath       string `koanf:"tsv_path"`       // TSV export used when --file is not given
	Sort          string `koanf:"sort"`           // "added", "album", "artists" or "year" (default: "added")
	NoFormat      bool   `koanf:"no_format"`      // print plain text instead of a table
	IncludeHeader bool   `koanf:"include_header"` // TSV exports start with a header row

	Table TableConfig `koanf:"table"`
}

// TableConfig holds table rendering settings.
type TableConfig struct {
	MaxColumnWidth int `koanf:"max_column_width"` // cells are truncated past this width (default: 40)
}

// Load reads the configuration files in order of priority. When explicit
// is set, only that file is read and it must exist.
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		path := expandPath(explicit)
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		return loadFiles([]string{path})
	}
	return loadFiles(getConfigPaths())
}

func loadFiles(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Later files override earlier ones
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		FileType: "db",
		Sort:     "added",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.FileType = strings.ToLower(strings.TrimSpace(cfg.FileType))
	cfg.DBPath = expandPath(cfg.DBPath)
	cfg.TSVPath = expandPath(cfg.TSVPath)

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/albumq/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ResolvePath returns the export file to search: fileName when given,
// otherwise the configured path for fileType, otherwise the default file
// in the XDG data directory.
func (c *Config) ResolvePath(fileName, fileType string) (string, error) {
	if fileName != "" {
		return expandPath(fileName), nil
	}

	var configured, fallback string
	switch strings.ToLower(fileType) {
	case "db":
		configured, fallback = c.DBPath, defaultDBFile
	case "tsv":
		configured, fallback = c.TSVPath, defaultTSVFile
	default:
		return "", fmt.Errorf("unknown file type %q", fileType)
	}
	if configured != "" {
		return configured, nil
	}
	return filepath.Join(xdg.DataHome, appName, fallback), nil
}

// MaxColumnWidth returns the table cell width limit, or 0 for the default.
func (c *Config) MaxColumnWidth() int {
	if c.Table.MaxColumnWidth < 0 {
		return 0
	}
	return c.Table.MaxColumnWidth
}
