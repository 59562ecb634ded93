// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aleontiev/vue-typer/internal/logger"
	"github.com/aleontiev/vue-typer/internal/spool"
	"github.com/aleontiev/vue-typer/internal/typer"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // [logger] table
	Typer  TyperConfig   `toml:"typer"`  // animation settings
	UI     UIConfig      `toml:"ui"`     // presentation settings
}

// TyperConfig holds the animation settings. Delays are in milliseconds.
type TyperConfig struct {
	Text            []string `toml:"text"`
	Repeat          int      `toml:"repeat"` // -1 repeats forever
	Shuffle         bool     `toml:"shuffle"`
	InitialAction   string   `toml:"initial_action"`
	PreTypeDelayMs  int      `toml:"pre_type_delay"`
	TypeDelayMs     int      `toml:"type_delay"`
	PreEraseDelayMs int      `toml:"pre_erase_delay"`
	EraseDelayMs    int      `toml:"erase_delay"`
	EraseStyle      string   `toml:"erase_style"`
	EraseOnComplete bool     `toml:"erase_on_complete"`

	// Fade accepts every shape the engine understands: a boolean, a
	// number, a grammar string like "2ws", an inline table, or an array
	// of those.
	Fade interface{} `toml:"fade"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme         string `toml:"theme"` // named theme, empty for built-in
	HideStatusBar bool   `toml:"hide_status_bar"`
	HideCaret     bool   `toml:"hide_caret"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Empty means default path logic in logger.Init applies
		},
		Typer: TyperConfig{
			Repeat:          spool.Forever,
			PreTypeDelayMs:  int(typer.DefaultPreTypeDelay / time.Millisecond),
			TypeDelayMs:     int(typer.DefaultTypeDelay / time.Millisecond),
			PreEraseDelayMs: int(typer.DefaultPreEraseDelay / time.Millisecond),
			EraseDelayMs:    int(typer.DefaultEraseDelay / time.Millisecond),
			EraseStyle:      "select-all",
		},
	}
}

// loadFromFile decodes a TOML file over cfg, so keys absent from the file
// keep their current (default) values. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config, verbose bool) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Loaded configuration from: %s", filePath)
	}
	return nil
}

// validate resets invalid values to defaults. Semantic validation of the
// animation settings happens later, in typer.Options.Validate.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Typer.Repeat < spool.Forever {
		c.Typer.Repeat = defaults.Typer.Repeat
	}
	for _, d := range []*int{
		&c.Typer.PreTypeDelayMs,
		&c.Typer.TypeDelayMs,
		&c.Typer.PreEraseDelayMs,
		&c.Typer.EraseDelayMs,
	} {
		if *d < 0 {
			*d = 0
		}
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. It is called once from main; tests call it directly with a
// path of their own.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		configDir, err := os.UserConfigDir()
		if err == nil {
			effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
		}
	}

	if effectivePath != "" {
		// The logger is not initialized yet during startup, keep quiet.
		if err := loadFromFile(effectivePath, cfg, false); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg, false)
	}

	cfg.validate()
	return cfg, nil
}

// ToOptions converts the animation section into engine options. String
// enums and fade shapes are checked here; the engine validates the rest.
func (tc TyperConfig) ToOptions() (typer.Options, error) {
	opts := typer.DefaultOptions()
	opts.Text = tc.Text
	opts.Repeat = tc.Repeat
	opts.Shuffle = tc.Shuffle
	opts.EraseOnComplete = tc.EraseOnComplete
	opts.PreTypeDelay = time.Duration(tc.PreTypeDelayMs) * time.Millisecond
	opts.TypeDelay = time.Duration(tc.TypeDelayMs) * time.Millisecond
	opts.PreEraseDelay = time.Duration(tc.PreEraseDelayMs) * time.Millisecond
	opts.EraseDelay = time.Duration(tc.EraseDelayMs) * time.Millisecond
	opts.Fade = tc.Fade

	action, err := typer.ParseAction(tc.InitialAction)
	if err != nil {
		return opts, err
	}
	opts.InitialAction = action

	style, err := typer.ParseEraseStyle(tc.EraseStyle)
	if err != nil {
		return opts, err
	}
	opts.EraseStyle = style

	return opts, nil
}
