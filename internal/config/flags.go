// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	EnableTags     *string
	DisableTags    *string

	Text            *string
	Repeat          *int
	Shuffle         *bool
	InitialAction   *string
	EraseStyle      *string
	EraseOnComplete *bool
	Fade            *string
	TypeDelayMs     *int
	EraseDelayMs    *int

	Theme *string
}

// DefineFlags sets up the command-line flags and associates them with the Flags struct fields.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = flag.Bool("version", false, "Show version information and exit")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = flag.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = flag.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")

	f.Text = flag.String("text", "", "Comma-separated list of items to type - Overrides config file")
	f.Repeat = flag.Int("repeat", -2, "Extra animation cycles, -1 for forever - Overrides config file")
	f.Shuffle = flag.Bool("shuffle", false, "Shuffle item order each cycle")
	f.InitialAction = flag.String("initial-action", "", "Starting phase: typing or erasing - Overrides config file")
	f.EraseStyle = flag.String("erase-style", "", "Erase style: backspace, select-back, select-all, clear - Overrides config file")
	f.EraseOnComplete = flag.Bool("erase-on-complete", false, "Erase the final word before completing")
	f.Fade = flag.String("fade", "", "Fade spec string, e.g. \"2ws\" - Overrides config file")
	f.TypeDelayMs = flag.Int("type-delay", -1, "Milliseconds between typed characters - Overrides config file")
	f.EraseDelayMs = flag.Int("erase-delay", -1, "Milliseconds between erase steps - Overrides config file")

	f.Theme = flag.String("theme", "", "Theme name to load - Overrides config file")
}

// ParseFlags parses the defined command-line flags into the Flags struct.
// It returns the remaining non-flag arguments (extra text items).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	// Visit only processes flags that were actually set
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil { // Empty string is valid ("-")
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "log-tags":
			if f.EnableTags != nil && *f.EnableTags != "" {
				cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
			}
		case "log-disable-tags":
			if f.DisableTags != nil && *f.DisableTags != "" {
				cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
			}
		case "text":
			if f.Text != nil && *f.Text != "" {
				cfg.Typer.Text = splitCommaList(*f.Text)
			}
		case "repeat":
			if f.Repeat != nil && *f.Repeat >= -1 {
				cfg.Typer.Repeat = *f.Repeat
			}
		case "shuffle":
			if f.Shuffle != nil {
				cfg.Typer.Shuffle = *f.Shuffle
			}
		case "initial-action":
			if f.InitialAction != nil && *f.InitialAction != "" {
				cfg.Typer.InitialAction = *f.InitialAction
			}
		case "erase-style":
			if f.EraseStyle != nil && *f.EraseStyle != "" {
				cfg.Typer.EraseStyle = *f.EraseStyle
			}
		case "erase-on-complete":
			if f.EraseOnComplete != nil {
				cfg.Typer.EraseOnComplete = *f.EraseOnComplete
			}
		case "fade":
			if f.Fade != nil && *f.Fade != "" {
				cfg.Typer.Fade = *f.Fade
			}
		case "type-delay":
			if f.TypeDelayMs != nil && *f.TypeDelayMs >= 0 {
				cfg.Typer.TypeDelayMs = *f.TypeDelayMs
			}
		case "erase-delay":
			if f.EraseDelayMs != nil && *f.EraseDelayMs >= 0 {
				cfg.Typer.EraseDelayMs = *f.EraseDelayMs
			}
		case "theme":
			if f.Theme != nil && *f.Theme != "" {
				cfg.UI.Theme = *f.Theme
			}
		}
	})
}

// Helper function to split comma-separated list (can be moved to util)
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
