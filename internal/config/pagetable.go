package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/pagetable/pagetable/internal/config/data"
	"github.com/pagetable/pagetable/internal/source"
)

// Default values
const (
	DefaultAPITimeout = 30 * time.Second
	DefaultCacheTTL   = 5 * time.Minute
)

// Pagetable represents the application settings.
type Pagetable struct {
	RefreshRate float32     `yaml:"refreshRate"`
	APITimeout  string      `yaml:"apiTimeout"`
	CacheTTL    string      `yaml:"cacheTTL"`
	UI          data.UI     `yaml:"ui"`
	Logger      data.Logger `yaml:"logger"`
	Table       data.Table  `yaml:"table"`

	mx sync.RWMutex
}

// NewPagetable returns settings with defaults.
func NewPagetable() *Pagetable {
	p := Pagetable{
		APITimeout: DefaultAPITimeout.String(),
		CacheTTL:   DefaultCacheTTL.String(),
		Logger:     data.Logger{Level: DefaultLogLevel},
	}
	p.Table.Validate()

	return &p
}

// Validate fills unset settings with defaults.
func (p *Pagetable) Validate() {
	p.mx.Lock()
	defer p.mx.Unlock()

	if p.RefreshRate < 0 {
		p.RefreshRate = 0
	}
	if p.APITimeout == "" {
		p.APITimeout = DefaultAPITimeout.String()
	}
	if p.CacheTTL == "" {
		p.CacheTTL = DefaultCacheTTL.String()
	}
	if p.Logger.Level == "" {
		p.Logger.Level = DefaultLogLevel
	}
	p.Table.Validate()
}

// Apply layers a named source over the table settings.
func (p *Pagetable) Apply(s source.Source) {
	p.mx.Lock()
	defer p.mx.Unlock()

	t := &p.Table
	t.URL = s.URL
	if s.Key != "" {
		t.Key = s.Key
	} else {
		t.Key = s.Name
	}
	if s.SearchColumn != "" {
		t.SearchColumn = s.SearchColumn
	}
	if s.Placeholder != "" {
		t.Placeholder = s.Placeholder
	}
	if s.PageSize > 0 {
		t.PageSize = s.PageSize
	}
	if s.Debounce != 0 {
		t.Debounce = int(s.Debounce / time.Millisecond)
	}
	if s.DataPath != "" || s.NextPagePath != "" {
		t.DataPath, t.NextPagePath = s.DataPath, s.NextPagePath
	}
	if len(s.Columns) > 0 {
		t.Columns = ColumnsFromIDs(s.Columns)
	}
}

// Override applies CLI flag overrides to the configuration.
func (p *Pagetable) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	p.mx.Lock()
	defer p.mx.Unlock()

	if flags.RefreshRate != nil {
		p.RefreshRate = *flags.RefreshRate
	}
	if IsStringSet(flags.LogLevel) {
		p.Logger.Level = *flags.LogLevel
	}
	if IsStringSet(flags.LogFile) {
		p.Logger.File = *flags.LogFile
	}

	t := &p.Table
	if IsStringSet(flags.URL) {
		t.URL = *flags.URL
	}
	if IsStringSet(flags.Key) {
		t.Key = *flags.Key
	}
	if IsStringSet(flags.SearchColumn) {
		t.SearchColumn = *flags.SearchColumn
	}
	if IsStringSet(flags.Placeholder) {
		t.Placeholder = *flags.Placeholder
	}
	if IsIntSet(flags.Debounce) {
		t.Debounce = *flags.Debounce
	}
	if IsIntSet(flags.PageSize) {
		t.PageSize = *flags.PageSize
	}
	if IsStringSet(flags.Columns) {
		t.Columns = ColumnsFromIDs(splitList(*flags.Columns))
	}
}

// GetAPITimeout returns the parsed API timeout duration.
func (p *Pagetable) GetAPITimeout() (time.Duration, error) {
	p.mx.RLock()
	s := p.APITimeout
	p.mx.RUnlock()

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", s, err)
	}
	return d, nil
}

// GetCacheTTL returns the parsed page cache lifetime.
func (p *Pagetable) GetCacheTTL() (time.Duration, error) {
	p.mx.RLock()
	s := p.CacheTTL
	p.mx.RUnlock()

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid cache TTL %q: %w", s, err)
	}
	return d, nil
}

// GetRefreshRate returns the refresh interval, zero when disabled.
func (p *Pagetable) GetRefreshRate() time.Duration {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return time.Duration(float64(p.RefreshRate) * float64(time.Second))
}

// SetTable replaces the table settings.
func (p *Pagetable) SetTable(t data.Table) {
	p.mx.Lock()
	defer p.mx.Unlock()

	p.Table = t
}

// TableSettings returns a copy of the table settings.
func (p *Pagetable) TableSettings() data.Table {
	p.mx.RLock()
	defer p.mx.RUnlock()

	t := p.Table
	t.Columns = append([]data.Column(nil), p.Table.Columns...)
	return t
}
