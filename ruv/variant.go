package ruv

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/grafov/m3u8"
	"github.com/jofsarpur/jofsarpur/util"
)

const variantOp = "variant"

func isManifest(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".m3u8")
}

// bestVariant returns the highest-bandwidth variant of a master playlist.
// Media playlists are returned unchanged.
func (c *Client) bestVariant(ctx context.Context, manifest string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifest, nil)
	if err != nil {
		return "", &RemoteError{Op: variantOp, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &RemoteError{Op: variantOp, Err: err}
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RemoteError{Op: variantOp, StatusCode: resp.StatusCode}
	}

	playlist, kind, err := m3u8.DecodeFrom(resp.Body, false)
	if err != nil {
		return "", &ParseError{Op: variantOp, Reason: "decode playlist", Err: err}
	}
	if kind != m3u8.MASTER {
		return manifest, nil
	}

	var best *m3u8.Variant
	for _, v := range playlist.(*m3u8.MasterPlaylist).Variants {
		if v == nil || v.Iframe || v.URI == "" {
			continue
		}
		if best == nil || v.Bandwidth > best.Bandwidth {
			best = v
		}
	}
	if best == nil {
		return "", &ParseError{Op: variantOp, Reason: "master playlist has no variants"}
	}

	base, err := url.Parse(manifest)
	if err != nil {
		return "", &ParseError{Op: variantOp, Reason: "parse manifest url", Err: err}
	}
	ref, err := url.Parse(best.URI)
	if err != nil {
		return "", &ParseError{Op: variantOp, Reason: "parse variant uri", Err: err}
	}
	return base.ResolveReference(ref).String(), nil
}
