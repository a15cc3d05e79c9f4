package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dyluth/lockstep/pkg/lockstep"
)

// DefaultFiles are looked up in order when no --config is given.
var DefaultFiles = []string{"lockstep.yml", "lockstep.yaml", "lockstep.toml"}

// LockstepConfig represents the top-level lockstep.yml configuration
type LockstepConfig struct {
	Version string  `yaml:"version" toml:"version"`
	XML     string  `yaml:"xml,omitempty" toml:"xml,omitempty"` // File or directory; relative to the config file
	Checks  []Check `yaml:"checks" toml:"checks"`
}

// Check declares one local structure and the body signature it decodes
type Check struct {
	Name      string `yaml:"name" toml:"name"`           // Structure identifier, used for implicit matching
	Signature string `yaml:"signature" toml:"signature"` // Signature of the local structure
	Interface string `yaml:"interface,omitempty" toml:"interface,omitempty"`
	Signal    string `yaml:"signal,omitempty" toml:"signal,omitempty"`
}

// Hint returns the resolution hint for this check
func (c Check) Hint() lockstep.Hint {
	var opts []lockstep.HintOption
	if c.Interface != "" {
		opts = append(opts, lockstep.WithInterface(c.Interface))
	}
	if c.Signal != "" {
		opts = append(opts, lockstep.WithSignal(c.Signal))
	}
	return lockstep.NewHint(c.Name, opts...)
}

// Validate performs strict validation on the configuration
func (c *LockstepConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	// Required: at least one check
	if len(c.Checks) == 0 {
		return fmt.Errorf("no checks defined")
	}

	namesSeen := make(map[string]int) // name → index
	for i, check := range c.Checks {
		if err := check.Validate(i); err != nil {
			return err
		}
		if prev, exists := namesSeen[check.Name]; exists {
			return fmt.Errorf("duplicate check name '%s' found (checks %d and %d): names must be unique", check.Name, prev, i)
		}
		namesSeen[check.Name] = i
	}

	return nil
}

// Validate performs validation on a single check
func (c *Check) Validate(index int) error {
	if c.Name == "" {
		return fmt.Errorf("check %d: name is required", index)
	}

	if !lockstep.Signature(c.Signature).Valid() {
		return fmt.Errorf("check '%s': invalid signature: %q", c.Name, c.Signature)
	}

	return nil
}

// Load reads and validates a lockstep config from the specified path.
// Files ending in .toml are parsed as TOML, everything else as YAML.
func Load(path string) (*LockstepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config LockstepConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Relative XML paths are anchored at the config file
	if config.XML != "" && !filepath.IsAbs(config.XML) {
		config.XML = filepath.Join(filepath.Dir(path), config.XML)
	}

	return &config, nil
}

// Find returns the first of DefaultFiles that exists in dir
func Find(dir string) (string, error) {
	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no config file found in %s (looked for %s)", dir, strings.Join(DefaultFiles, ", "))
}
