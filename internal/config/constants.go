package config

import "time"

// Base application details
const AppName = "typer"
const ConfigDirName = "typer"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "typer.log"

// UI layout
const StatusBarHeight = 1

// Status bar
const MessageTimeout = 4 * time.Second

// DefaultText is typed when neither config nor arguments provide items.
const DefaultText = "Hello, World!"
