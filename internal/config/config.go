package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/pagetable/pagetable/internal/config/data"
	"github.com/pagetable/pagetable/internal/source"
)

// ErrNoURL is returned when no endpoint was configured.
var ErrNoURL = errors.New("no table url configured, use --url, --source or the demo command")

// Config is the root configuration for the application.
type Config struct {
	Pagetable *Pagetable `yaml:"pagetable"`

	sources *source.Registry
	mx      sync.RWMutex
}

// NewConfig creates a new Config with the given source registry.
func NewConfig(sources *source.Registry) *Config {
	if sources == nil {
		sources = source.NewRegistry()
	}
	return &Config{
		Pagetable: NewPagetable(),
		sources:   sources,
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}

	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if c.Pagetable == nil {
		c.Pagetable = NewPagetable()
	}
	c.Pagetable.Validate()

	return nil
}

// Save writes the configuration to path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}

	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine resolves the final settings.
// Precedence: CLI flags > named source > config file > defaults.
func (c *Config) Refine(flags *data.Flags) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Pagetable == nil {
		return fmt.Errorf("config.Pagetable is nil")
	}

	if flags != nil && IsStringSet(flags.Source) {
		s, err := c.sources.Get(*flags.Source)
		if err != nil {
			return err
		}
		c.Pagetable.Apply(s)
	}
	c.Pagetable.Override(flags)
	c.Pagetable.Validate()

	t := c.Pagetable.TableSettings()
	if t.URL == "" {
		return ErrNoURL
	}
	if _, err := c.Pagetable.GetAPITimeout(); err != nil {
		return err
	}
	if _, err := c.Pagetable.GetCacheTTL(); err != nil {
		return err
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %q has no columns", t.URL)
	}
	if _, err := ToColumns(t.Columns); err != nil {
		return err
	}

	return nil
}

// Sources returns the source registry.
func (c *Config) Sources() *source.Registry {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.sources
}
