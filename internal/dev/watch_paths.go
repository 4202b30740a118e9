package dev

import (
	"path/filepath"

	"github.com/vango-dev/svgkit/internal/config"
)

// CollectWatchPaths returns the normalized, de-duplicated list of files to
// watch for a preview: the scenes plus the loaded configuration file.
func CollectWatchPaths(cfg *config.Config, scenes ...string) []string {
	paths := make([]string, 0, len(scenes)+1)
	paths = append(paths, scenes...)
	if cfg != nil && cfg.Path() != "" {
		paths = append(paths, cfg.Path())
	}

	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		clean := resolvePath(path)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}

	return unique
}

func resolvePath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
