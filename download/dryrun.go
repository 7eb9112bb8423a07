package download

import (
	"context"
	"strings"

	"github.com/jofsarpur/jofsarpur/log"
)

// DryRun logs the ffmpeg invocation a fetch would make and reports success.
type DryRun struct {
	FFmpeg *FFmpeg
}

func (d DryRun) Fetch(_ context.Context, url, destination string) error {
	f := d.FFmpeg
	if f == nil {
		f = &FFmpeg{}
	}

	target, err := sanitizeMediaTarget(url)
	if err != nil {
		return &DownloadError{URL: url, Destination: destination, ExitCode: -1, Err: err}
	}

	log.WithFields(log.Fields{"destination": destination}).
		Infof("dry run: %s %s", f.binary(), strings.Join(f.Args(target, destination), " "))
	return nil
}
