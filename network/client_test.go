package network

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jofsarpur/jofsarpur/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a server recording request headers", t, func() {
		var got http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer srv.Close()

		client := New(time.Second)

		Convey("Default headers are added", func() {
			resp, err := client.Get(srv.URL)
			So(err, ShouldBeNil)
			resp.Body.Close()

			So(got.Get("User-Agent"), ShouldEqual, constant.UserAgent)
			So(got.Get("Referer"), ShouldEqual, constant.RUVReferer)
			So(got.Get("Origin"), ShouldEqual, constant.RUVOrigin)
		})

		Convey("Headers set by the caller win", func() {
			req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
			req.Header.Set("Referer", "https://example.com")
			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			resp.Body.Close()

			So(got.Get("Referer"), ShouldEqual, "https://example.com")
		})
	})
}
