package config

import (
	"fmt"
	"strconv"

	"github.com/editorconfig/editorconfig-core-go/v2"
)

// ForFile returns the settings for file with any .editorconfig indent
// properties applied on top. Without UseEditorConfig it returns f as is.
func (f FormatterConfig) ForFile(file string) (FormatterConfig, error) {
	if !f.UseEditorConfig {
		return f, nil
	}

	def, err := editorconfig.GetDefinitionForFilename(file)
	if err != nil {
		return f, fmt.Errorf("reading editorconfig for %s: %w", file, err)
	}

	switch def.IndentStyle {
	case IndentSpace, IndentTab:
		f.IndentStyle = def.IndentStyle
	}

	switch {
	case def.IndentSize == IndentTab && def.TabWidth > 0:
		f.IndentWidth = def.TabWidth
	case def.IndentSize != "":
		if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 {
			f.IndentWidth = n
		}
	}

	return f, nil
}
