package ruv

import (
	"context"
	"strings"

	"github.com/jofsarpur/jofsarpur/constant"
	"github.com/jofsarpur/jofsarpur/log"
)

// ResolveStreamURL returns the media or manifest URL of an episode.
// The catalog addresses episodes within their series, so both ids are needed.
func (c *Client) ResolveStreamURL(ctx context.Context, sid, pid string) (string, error) {
	var response programResponse
	err := c.query(ctx, constant.StreamOperation, constant.StreamQueryHash, map[string]any{
		"id":        idValue(sid),
		"episodeId": []string{pid},
	}, &response)
	if err != nil {
		return "", err
	}

	if response.Program == nil || len(response.Program.Episodes) == 0 || response.Program.Episodes[0] == nil {
		return "", &NotFoundError{SID: sid, PID: pid}
	}

	file := strings.TrimSpace(response.Program.Episodes[0].File)
	if file == "" {
		return "", &NotFoundError{SID: sid, PID: pid}
	}

	if c.highestVariant && isManifest(file) {
		variant, err := c.bestVariant(ctx, file)
		if err != nil {
			return "", err
		}
		log.WithFields(log.Fields{"sid": sid, "pid": pid}).Debugf("selected variant %s", variant)
		return variant, nil
	}

	return file, nil
}
