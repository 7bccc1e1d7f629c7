package config

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/gobwas/glob"
)

type excludePattern struct {
	pattern string
	g       glob.Glob
}

// compileExcludes compiles the Exclude patterns. "*" stops at "/" while
// "**" crosses it.
func (c *Config) compileExcludes() error {
	c.excludes = c.excludes[:0]
	for _, pattern := range c.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		c.excludes = append(c.excludes, excludePattern{pattern: pattern, g: g})
	}
	return nil
}

// ExcludedBy returns the first exclude pattern matching file, either as a
// cleaned slash path or by its base name.
func (c *Config) ExcludedBy(file string) (string, bool) {
	p := filepath.ToSlash(filepath.Clean(file))
	base := path.Base(p)
	for _, e := range c.excludes {
		if e.g.Match(p) || e.g.Match(base) {
			return e.pattern, true
		}
	}
	return "", false
}

// IsExcluded reports whether file matches an exclude pattern.
func (c *Config) IsExcluded(file string) bool {
	_, ok := c.ExcludedBy(file)
	return ok
}
