// Package download hands resolved streams to an external downloader.
package download

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
)

// Downloader fetches the media behind a stream URL into a file.
type Downloader interface {
	Fetch(ctx context.Context, url, destination string) error
}

// DownloadError reports a failed fetch.
type DownloadError struct {
	URL         string
	Destination string
	// ExitCode is -1 when the process did not exit normally.
	ExitCode int
	// Output is the tail of the downloader's diagnostics.
	Output string
	Err    error
}

func (e *DownloadError) Error() string {
	msg := fmt.Sprintf("download %s: %v", e.Destination, e.Err)
	if e.Output != "" {
		msg += ": " + strings.TrimSpace(e.Output)
	}
	return msg
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// CheckBinary verifies that the downloader binary can be found.
func CheckBinary(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found: %w", name, err)
	}
	return path, nil
}

// sanitizeMediaTarget only lets absolute http(s) URLs through, so a catalog value can never be read as a flag.
func sanitizeMediaTarget(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "-") {
		return "", fmt.Errorf("invalid media target %q", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid media target %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid media target %q: missing host", raw)
	}
	return u.String(), nil
}
