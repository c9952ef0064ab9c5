package api

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// CollectFiles expands glob patterns (doublestar syntax, so `**/*.pdf`
// works) and reads every matched regular file into an upload payload.
func CollectFiles(patterns ...string) ([]File, error) {
	var out []File
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", m, err)
			}
			out = append(out, File{Name: filepath.Base(m), Data: data})
		}
	}
	return out, nil
}
