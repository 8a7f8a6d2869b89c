package data

// Flags represents the command line flags. A nil field was not set.
type Flags struct {
	URL          *string  // Page endpoint
	Key          *string  // Cache key
	SearchColumn *string  // Query parameter carrying the search text
	Placeholder  *string  // Search input placeholder
	Columns      *string  // Comma separated column ids
	Debounce     *int     // Search debounce in milliseconds
	PageSize     *int     // Rows per page
	Source       *string  // Named source from sources.ini
	RefreshRate  *float32 // Refresh rate in seconds, 0 disables
	LogLevel     *string  // Log level (debug, info, warn, error)
	LogFile      *string  // Path to log file
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool `yaml:"enableMouse"`
	NoHelp      bool `yaml:"noHelp"`
}

// Logger represents logging configuration settings.
type Logger struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	SeqURL string `yaml:"seqURL"`
}

// NewFlags returns flags with every field allocated.
func NewFlags() *Flags {
	return &Flags{
		URL:          new(string),
		Key:          new(string),
		SearchColumn: new(string),
		Placeholder:  new(string),
		Columns:      new(string),
		Debounce:     new(int),
		PageSize:     new(int),
		Source:       new(string),
		RefreshRate:  new(float32),
		LogLevel:     new(string),
		LogFile:      new(string),
	}
}
