package search

import (
	"fmt"

	"github.com/gobwas/glob"
)

// excludeSet prunes directories whose base name matches any pattern.
type excludeSet struct {
	globs []glob.Glob
}

func newExcludeSet(patterns []string) (excludeSet, error) {
	set := excludeSet{globs: make([]glob.Glob, 0, len(patterns))}
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return excludeSet{}, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		set.globs = append(set.globs, g)
	}
	return set, nil
}

func (s excludeSet) matches(name string) bool {
	for _, g := range s.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
