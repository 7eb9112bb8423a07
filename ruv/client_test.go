package ruv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jofsarpur/jofsarpur/constant"
	. "github.com/smartystreets/goconvey/convey"
)

const programJSON = `{"data":{"Program":{"title":"Kúlugúbbarnir","episodes":[
	{"id":"abc123","title":"Þáttur 4 af 10","firstrun":"2022-08-23 18:01:00"},
	{"id":98765,"title":"5. kafli","firstrun":"bogus"},
	{"id":"xyz","title":"Jólaþáttur"}
]}}}`

// fakeAPI answers persisted queries by operation name and records the variables it saw.
type fakeAPI struct {
	responses map[string]string
	status    int
	variables map[string]map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}

	op := r.URL.Query().Get("operationName")
	var vars map[string]any
	_ = json.Unmarshal([]byte(r.URL.Query().Get("variables")), &vars)
	f.variables[op] = vars

	body, ok := f.responses[op]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = fmt.Fprint(w, body)
}

func newFake(responses map[string]string) (*fakeAPI, *httptest.Server, *Client) {
	fake := &fakeAPI{responses: responses, variables: make(map[string]map[string]any)}
	srv := httptest.NewServer(fake)
	client := New(Options{BaseURL: srv.URL + "/gql/", Timeout: time.Second})
	return fake, srv, client
}

func TestFetchEpisodes(t *testing.T) {
	ctx := context.Background()

	Convey("Given a program with three episodes", t, func() {
		fake, srv, client := newFake(map[string]string{constant.EpisodesOperation: programJSON})
		defer srv.Close()

		records, err := client.FetchEpisodes(ctx, "30228")
		So(err, ShouldBeNil)

		Convey("The series id is sent as a number", func() {
			So(fake.variables[constant.EpisodesOperation]["programID"], ShouldEqual, float64(30228))
		})

		Convey("Records keep the API order", func() {
			So(len(records), ShouldEqual, 3)
			So(records[0].PID, ShouldEqual, "abc123")
			So(records[1].PID, ShouldEqual, "98765")
			So(records[2].PID, ShouldEqual, "xyz")
		})

		Convey("Records carry series and episode titles", func() {
			So(records[0].SID, ShouldEqual, "30228")
			So(records[0].Title, ShouldEqual, "Kúlugúbbarnir")
			So(records[0].EpisodeTitle, ShouldEqual, "Þáttur 4 af 10")
		})

		Convey("Numbering is parsed from the episode title", func() {
			So(records[0].Number.MustGet(), ShouldEqual, 4)
			So(records[0].Count.MustGet(), ShouldEqual, 10)
			So(records[1].Number.MustGet(), ShouldEqual, 5)
			So(records[2].Number.IsPresent(), ShouldBeFalse)
		})

		Convey("The first broadcast becomes the airdate", func() {
			So(records[0].Airdate.MustGet(), ShouldEqual, time.Date(2022, 8, 23, 18, 1, 0, 0, time.UTC))
			So(records[1].Airdate.IsPresent(), ShouldBeFalse)
		})
	})

	Convey("Given a failing API", t, func() {
		fake, srv, client := newFake(nil)
		defer srv.Close()
		fake.status = http.StatusServiceUnavailable

		_, err := client.FetchEpisodes(ctx, "30228")

		Convey("A RemoteError carries the status", func() {
			var remote *RemoteError
			So(errors.As(err, &remote), ShouldBeTrue)
			So(remote.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
		})
	})

	Convey("Given an unreachable API", t, func() {
		_, srv, client := newFake(nil)
		srv.Close()

		_, err := client.FetchEpisodes(ctx, "30228")

		var remote *RemoteError
		So(errors.As(err, &remote), ShouldBeTrue)
		So(remote.Err, ShouldNotBeNil)
	})

	Convey("Given GraphQL errors without data", t, func() {
		_, srv, client := newFake(map[string]string{
			constant.EpisodesOperation: `{"errors":[{"message":"PersistedQueryNotFound"}]}`,
		})
		defer srv.Close()

		_, err := client.FetchEpisodes(ctx, "30228")

		var remote *RemoteError
		So(errors.As(err, &remote), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "PersistedQueryNotFound")
	})

	Convey("Given unexpected response shapes", t, func() {
		cases := map[string]string{
			"not json":      `<html>`,
			"no data":       `{}`,
			"missing id":    `{"data":{"Program":{"title":"T","episodes":[{"title":"Þáttur 1 af 2"}]}}}`,
			"missing title": `{"data":{"Program":{"title":"T","episodes":[{"id":"a"}]}}}`,
			"wrong types":   `{"data":{"Program":{"title":"T","episodes":"nope"}}}`,
		}

		for name, body := range cases {
			_, srv, client := newFake(map[string]string{constant.EpisodesOperation: body})
			_, err := client.FetchEpisodes(ctx, "30228")
			srv.Close()

			var parse *ParseError
			So(errors.As(err, &parse), ShouldBeTrue)
			So(name, ShouldNotBeEmpty)
		}
	})

	Convey("Given an unknown program", t, func() {
		_, srv, client := newFake(map[string]string{
			constant.EpisodesOperation: `{"data":{"Program":null}}`,
		})
		defer srv.Close()

		_, err := client.FetchEpisodes(ctx, "1")

		var notFound *NotFoundError
		So(errors.As(err, &notFound), ShouldBeTrue)
		So(notFound.SID, ShouldEqual, "1")
	})
}

func TestResolveStreamURL(t *testing.T) {
	ctx := context.Background()

	Convey("Given an episode with a stream", t, func() {
		fake, srv, client := newFake(map[string]string{
			constant.StreamOperation: `{"data":{"Program":{"episodes":[{"id":"abc123","file":"https://ruv-vod.akamaized.net/abc/master.m3u8"}]}}}`,
		})
		defer srv.Close()

		url, err := client.ResolveStreamURL(ctx, "30228", "abc123")

		Convey("The file is returned as-is", func() {
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "https://ruv-vod.akamaized.net/abc/master.m3u8")
		})

		Convey("Both ids are sent", func() {
			vars := fake.variables[constant.StreamOperation]
			So(vars["id"], ShouldEqual, float64(30228))
			So(vars["episodeId"], ShouldResemble, []any{"abc123"})
		})
	})

	Convey("Given an episode without a stream", t, func() {
		for _, body := range []string{
			`{"data":{"Program":{"episodes":[{"id":"abc123","file":""}]}}}`,
			`{"data":{"Program":{"episodes":[]}}}`,
			`{"data":{"Program":null}}`,
		} {
			_, srv, client := newFake(map[string]string{constant.StreamOperation: body})
			_, err := client.ResolveStreamURL(ctx, "30228", "abc123")
			srv.Close()

			var notFound *NotFoundError
			So(errors.As(err, &notFound), ShouldBeTrue)
			So(notFound.PID, ShouldEqual, "abc123")
		}
	})
}

const masterPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=500000,RESOLUTION=640x360
low/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=3600000,RESOLUTION=1920x1080
high/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=1200000,RESOLUTION=1280x720
mid/index.m3u8
`

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:10.0,
segment0.ts
#EXT-X-ENDLIST
`

func TestHighestVariant(t *testing.T) {
	ctx := context.Background()

	Convey("Given a catalog pointing at a master playlist", t, func() {
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/vod/master.m3u8", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, masterPlaylist)
		})
		mux.HandleFunc("/vod/single.m3u8", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, mediaPlaylist)
		})
		file := "/vod/master.m3u8"
		mux.HandleFunc("/gql/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprintf(w, `{"data":{"Program":{"episodes":[{"id":"p","file":"%s%s"}]}}}`, srv.URL, file)
		})

		Convey("With variant selection the best variant is returned", func() {
			client := New(Options{BaseURL: srv.URL + "/gql/", HighestVariant: true})
			url, err := client.ResolveStreamURL(ctx, "1", "p")
			So(err, ShouldBeNil)
			So(url, ShouldEqual, srv.URL+"/vod/high/index.m3u8")
		})

		Convey("A media playlist is returned unchanged", func() {
			file = "/vod/single.m3u8"
			client := New(Options{BaseURL: srv.URL + "/gql/", HighestVariant: true})
			url, err := client.ResolveStreamURL(ctx, "1", "p")
			So(err, ShouldBeNil)
			So(url, ShouldEqual, srv.URL+"/vod/single.m3u8")
		})

		Convey("Without variant selection the master is returned", func() {
			client := New(Options{BaseURL: srv.URL + "/gql/"})
			url, err := client.ResolveStreamURL(ctx, "1", "p")
			So(err, ShouldBeNil)
			So(url, ShouldEqual, srv.URL+"/vod/master.m3u8")
		})
	})
}
