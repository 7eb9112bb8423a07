package download

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/jofsarpur/jofsarpur/filesystem"
	"github.com/jofsarpur/jofsarpur/log"
	"github.com/jofsarpur/jofsarpur/util"
)

const outputTail = 1024

// FFmpeg copies streams into a container without re-encoding.
type FFmpeg struct {
	// Binary is the executable name or path. Empty means "ffmpeg".
	Binary string
}

// NewFFmpeg returns a downloader running binary.
func NewFFmpeg(binary string) *FFmpeg {
	return &FFmpeg{Binary: binary}
}

func (f *FFmpeg) binary() string {
	if f.Binary == "" {
		return "ffmpeg"
	}
	return f.Binary
}

// Args returns the arguments passed to ffmpeg for a fetch.
func (f *FFmpeg) Args(url, destination string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-y",
		"-i", url,
		"-c", "copy",
		"-bsf:a", "aac_adtstoasc",
		destination,
	}
}

// Fetch runs ffmpeg until the stream is copied. The output file is removed when ffmpeg reports a failure.
func (f *FFmpeg) Fetch(ctx context.Context, url, destination string) error {
	target, err := sanitizeMediaTarget(url)
	if err != nil {
		return &DownloadError{URL: url, Destination: destination, ExitCode: -1, Err: err}
	}

	args := f.Args(target, destination)
	log.Debugf("%s %s", f.binary(), strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, f.binary(), args...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Cancel = func() error { return killProcess(cmd) }

	var stderr bytes.Buffer
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if rmErr := filesystem.API().Remove(destination); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warnf("remove partial %s: %v", destination, rmErr)
		}

		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}

		return &DownloadError{
			URL:         target,
			Destination: destination,
			ExitCode:    code,
			Output:      util.Tail(stderr.String(), outputTail),
			Err:         err,
		}
	}

	return nil
}
