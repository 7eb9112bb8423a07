package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jofsarpur/jofsarpur/config"
	"github.com/jofsarpur/jofsarpur/episode"
	"github.com/jofsarpur/jofsarpur/filesystem"
)

// Destination renders the absolute path an episode is stored at, without touching the filesystem.
func Destination(global config.Global, series config.Series, rec episode.Record) (string, error) {
	raw := series.Template(rec.PID)

	tmpl, err := Parse(raw)
	if err != nil {
		return "", err
	}

	rel, err := tmpl.Execute(FieldsOf(series, rec))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(rel) == "" {
		return "", &TemplateError{Template: raw, Reason: "renders to an empty path"}
	}

	root := filepath.Clean(global.DownloadDirectory)
	dest := filepath.Join(root, filepath.FromSlash(rel))

	inside, err := filepath.Rel(root, dest)
	if err != nil || inside == "." || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", &TemplateError{Template: raw, Reason: fmt.Sprintf("%q is not inside %s", rel, root)}
	}

	return dest, nil
}

// RenderPath renders the destination of an episode and creates its missing parent directories.
// Calling it again with the same input yields the same path.
func RenderPath(global config.Global, series config.Series, rec episode.Record) (string, error) {
	dest, err := Destination(global, series, rec)
	if err != nil {
		return "", err
	}

	if err := filesystem.EnsureParent(dest); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", dest, err)
	}
	return dest, nil
}
