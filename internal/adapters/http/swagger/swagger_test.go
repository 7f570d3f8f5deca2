package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halleloo/fantasy-league/internal/adapters/http/swagger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegister(t *testing.T) {
	Convey("Given the documentation routes", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)
		ts := httptest.NewServer(mux)
		Reset(ts.Close)

		Convey("When the docs page is requested", func() {
			resp, err := http.Get(ts.URL + "/api-docs")

			Convey("Then it should serve HTML", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldContainSubstring, "text/html")
			})
		})

		Convey("When the OpenAPI document is requested", func() {
			resp, err := http.Get(ts.URL + "/openapi.yaml")

			Convey("Then it should serve the embedded spec", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})

		Convey("Then the embedded document should describe the API", func() {
			doc := string(swagger.OpenAPI)
			So(doc, ShouldContainSubstring, "openapi:")
			So(strings.Contains(doc, "/leaderboard"), ShouldBeTrue)
			So(strings.Contains(doc, "/draft/commit"), ShouldBeTrue)
		})
	})
}
