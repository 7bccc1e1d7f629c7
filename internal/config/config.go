// Package config defines the configuration types and defaults for spfmt.
package config

import (
	"fmt"
	"strings"
)

// Indent styles.
const (
	IndentSpace = "space"
	IndentTab   = "tab"
)

// Config is the top-level configuration.
type Config struct {
	Formatter FormatterConfig `yaml:"formatter"`
	// Exclude lists glob patterns of files the runner leaves untouched.
	Exclude []string `yaml:"exclude"`

	excludes []excludePattern
}

// FormatterConfig holds all formatter settings.
type FormatterConfig struct {
	IndentStyle     string `yaml:"indent_style"`
	IndentWidth     int    `yaml:"indent_width"`
	MaxBlankLines   int    `yaml:"max_blank_lines"`
	UseEditorConfig bool   `yaml:"use_editorconfig"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			IndentStyle:     IndentSpace,
			IndentWidth:     4,
			MaxBlankLines:   1,
			UseEditorConfig: true,
		},
	}
}

// IndentUnit returns the text written for one indent level.
func (f FormatterConfig) IndentUnit() string {
	if f.IndentStyle == IndentTab {
		return "\t"
	}
	return strings.Repeat(" ", f.IndentWidth)
}

// Validate checks the formatter settings for values the writer cannot use.
func (f FormatterConfig) Validate() error {
	switch f.IndentStyle {
	case IndentSpace, IndentTab:
	default:
		return fmt.Errorf("indent_style: want %q or %q, got %q", IndentSpace, IndentTab, f.IndentStyle)
	}
	if f.IndentWidth <= 0 {
		return fmt.Errorf("indent_width: must be positive, got %d", f.IndentWidth)
	}
	if f.MaxBlankLines < 0 {
		return fmt.Errorf("max_blank_lines: must not be negative, got %d", f.MaxBlankLines)
	}
	return nil
}
