package filesystem

import "path/filepath"

func parentOf(path string) string {
	dir := filepath.Dir(path)
	if dir == "." || dir == path {
		return ""
	}
	return dir
}
