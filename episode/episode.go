// Package episode defines the record the catalog client produces for every episode of a series.
package episode

import (
	"fmt"
	"time"

	"github.com/samber/mo"
)

// Record describes one episode. It is a value: helpers return modified copies.
type Record struct {
	// SID is the series identifier.
	SID string `json:"sid"`
	// PID is the episode identifier.
	PID string `json:"pid"`
	// Title is the series title as reported by the catalog.
	Title string `json:"title"`
	// EpisodeTitle is the episode's own name, e.g. "Þáttur 4 af 10".
	EpisodeTitle string `json:"episode_title"`

	Number  mo.Option[int]       `json:"number"`
	Count   mo.Option[int]       `json:"count"`
	Airdate mo.Option[time.Time] `json:"airdate"`

	// StreamURL is empty until the stream has been resolved.
	StreamURL string `json:"stream_url,omitempty"`
}

// String returns a short identifier for log lines.
func (r Record) String() string {
	return fmt.Sprintf("%s %s:%s", r.Title, r.SID, r.PID)
}

// WithStreamURL returns a copy of the record with the resolved stream attached.
func (r Record) WithStreamURL(url string) Record {
	r.StreamURL = url
	return r
}
