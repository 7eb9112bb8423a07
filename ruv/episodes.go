package ruv

import (
	"context"
	"strconv"
	"time"

	"github.com/jofsarpur/jofsarpur/constant"
	"github.com/jofsarpur/jofsarpur/episode"
	"github.com/jofsarpur/jofsarpur/log"
	"github.com/samber/mo"
)

type programItem struct {
	ID       flexString `json:"id"`
	Title    string     `json:"title"`
	Firstrun string     `json:"firstrun"`
	File     string     `json:"file"`
}

type programResponse struct {
	Program *struct {
		Title    string         `json:"title"`
		Episodes []*programItem `json:"episodes"`
	} `json:"Program"`
}

// FetchEpisodes lists the episodes of a series in the order the catalog reports them.
func (c *Client) FetchEpisodes(ctx context.Context, sid string) ([]episode.Record, error) {
	var response programResponse
	err := c.query(ctx, constant.EpisodesOperation, constant.EpisodesQueryHash, map[string]any{
		"programID": idValue(sid),
	}, &response)
	if err != nil {
		return nil, err
	}

	program := response.Program
	if program == nil {
		return nil, &NotFoundError{SID: sid}
	}
	if program.Title == "" {
		return nil, &ParseError{Op: constant.EpisodesOperation, Reason: "program has no title"}
	}

	log.WithFields(log.Fields{"sid": sid, "episodes": len(program.Episodes)}).
		Infof("Fetched metadata for %s", program.Title)

	records := make([]episode.Record, 0, len(program.Episodes))
	for i, item := range program.Episodes {
		if item == nil || item.ID == "" {
			return nil, &ParseError{Op: constant.EpisodesOperation, Reason: "episode " + strconv.Itoa(i) + " has no id"}
		}
		if item.Title == "" {
			return nil, &ParseError{Op: constant.EpisodesOperation, Reason: "episode " + string(item.ID) + " has no title"}
		}

		number, count := episode.ParseNumbering(item.Title)
		records = append(records, episode.Record{
			SID:          sid,
			PID:          string(item.ID),
			Title:        program.Title,
			EpisodeTitle: item.Title,
			Number:       number,
			Count:        count,
			Airdate:      parseFirstrun(item.Firstrun),
		})
	}

	return records, nil
}

// parseFirstrun treats a missing or malformed first broadcast time as unknown.
func parseFirstrun(s string) mo.Option[time.Time] {
	if s == "" {
		return mo.None[time.Time]()
	}

	t, err := time.Parse(constant.FirstrunLayout, s)
	if err != nil {
		log.Debugf("ignoring firstrun %q: %v", s, err)
		return mo.None[time.Time]()
	}
	return mo.Some(t)
}
