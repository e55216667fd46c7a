// Package config handles loading settings from .switchyard.yaml and merging
// with CLI flag values. CLI flags take precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the settings from .switchyard.yaml.
type Config struct {
	Remote  string `yaml:"remote"`
	Backend string `yaml:"backend" validate:"omitempty,oneof=cli native"`
	Color   string `yaml:"color" validate:"omitempty,oneof=auto always never"`
}

// DefaultConfigFile is the name of the config file looked for in the working directory.
const DefaultConfigFile = ".switchyard.yaml"

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Load reads the config file from the given directory. If the file does not
// exist, it returns a zero-value Config and no error.
func Load(dir string) (Config, error) {
	path := filepath.Join(dir, DefaultConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", DefaultConfigFile, err)
	}
	if err := validatorInstance().Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", DefaultConfigFile, err)
	}
	return cfg, nil
}
