package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DatasetEnv overrides the dataset path from any config file.
const DatasetEnv = "ISMISM_DATASET"

// Defaults applied when no layer sets a value.
const (
	DefaultDataset      = "isms.json"
	DefaultRelatedLimit = 4
	DefaultColor        = "auto"
)

// Config holds user settings. Zero values mean "not set by this layer".
type Config struct {
	Dataset      string `yaml:"dataset"       toml:"dataset"`
	RelatedLimit int    `yaml:"related_limit" toml:"related_limit"`
	Color        string `yaml:"color"         toml:"color"`

	// Sources lists the files that contributed, highest priority first.
	Sources []string `yaml:"-" toml:"-"`
}

// fileNames are tried in order within each directory.
var fileNames = []string{"ismism.yaml", "ismism.yml", "ismism.toml"}

// globalFileNames are tried in order within Dir().
var globalFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// Load builds the effective configuration.
//
// Resolution order, first value found wins per key:
//  1. $ISMISM_DATASET (dataset only)
//  2. project file in projectDir: ismism.yaml, ismism.yml or ismism.toml
//  3. global file in Dir(): config.yaml, config.yml or config.toml
//  4. defaults
//
// Missing files are skipped; a file that exists but does not parse is an error.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{}

	if dataset := os.Getenv(DatasetEnv); dataset != "" {
		cfg.Dataset = dataset
		cfg.Sources = append(cfg.Sources, "$"+DatasetEnv)
	}

	layers := []struct {
		dir   string
		names []string
	}{
		{projectDir, fileNames},
		{Dir(), globalFileNames},
	}
	for _, layer := range layers {
		if layer.dir == "" {
			continue
		}
		fileCfg, path, err := loadFirst(layer.dir, layer.names)
		if err != nil {
			return nil, err
		}
		if fileCfg == nil {
			continue
		}
		// A relative dataset path is relative to the file that names it.
		if fileCfg.Dataset != "" && !filepath.IsAbs(fileCfg.Dataset) {
			fileCfg.Dataset = filepath.Join(layer.dir, fileCfg.Dataset)
		}
		cfg.mergeFrom(fileCfg)
		cfg.Sources = append(cfg.Sources, path)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// loadFirst parses the first existing file among names in dir.
// Returns nil without error when none exists.
func loadFirst(dir string, names []string) (*Config, string, error) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("reading config %s: %w", path, err)
		}

		cfg, err := Parse(path, data)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return nil, "", nil
}

// Parse decodes a config file, choosing TOML or YAML by extension.
func Parse(path string, data []byte) (*Config, error) {
	var cfg Config
	var err error
	if filepath.Ext(path) == ".toml" {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.RelatedLimit < 0 {
		return nil, fmt.Errorf("parsing config %s: related_limit must not be negative", path)
	}
	return &cfg, nil
}

// mergeFrom fills keys still unset from a lower-priority layer.
func (c *Config) mergeFrom(lower *Config) {
	if c.Dataset == "" {
		c.Dataset = lower.Dataset
	}
	if c.RelatedLimit == 0 {
		c.RelatedLimit = lower.RelatedLimit
	}
	if c.Color == "" {
		c.Color = lower.Color
	}
}

func (c *Config) applyDefaults() {
	c.mergeFrom(&Config{
		Dataset:      DefaultDataset,
		RelatedLimit: DefaultRelatedLimit,
		Color:        DefaultColor,
	})
}
