package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/blackjack/internal/adapters/repository"
	app "github.com/okian/blackjack/internal/app"
	"github.com/okian/blackjack/internal/config"
	"github.com/okian/blackjack/internal/domain/aggregate"
	"github.com/okian/blackjack/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given a data directory without summaries", t, func() {
		t.Setenv("BLACKJACK_DATA_DIR", t.TempDir())
		t.Setenv("BLACKJACK_ADDR", "127.0.0.1:0")

		convey.Convey("When the server starts", func() {
			err := run(context.Background())

			convey.Convey("Then it should refuse to listen", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "failed to load strategy summaries")
			})
		})
	})

	convey.Convey("Given an invalid configuration", t, func() {
		t.Setenv("BLACKJACK_COMPARISON_THRESHOLD", "0")

		convey.Convey("Then run should fail on config", func() {
			err := run(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "failed to load config")
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a service backed by stored summaries", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		store := repository.NewFileStore(dir)
		agg := aggregate.New()
		for _, key := range []string{"basic", "mimic-dealer"} {
			s, err := agg.AggregateNets(ctx, key, []float64{10, -10, 15})
			convey.So(err, convey.ShouldBeNil)
			convey.So(store.Save(ctx, s), convey.ShouldBeNil)
		}

		cfg := config.New(ctx)
		cfg.DataDir = dir
		svc := app.New(app.WithDataDir(dir))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		handler, err := newHandler(ctx, cfg, svc, logger.Get())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then every public route should answer", func() {
			for _, path := range []string{"/", "/api/strategies", "/api/strategy/basic", "/api/comparison", "/api/quick-comparison", "/stats", "/healthz", "/api-docs", "/openapi.yaml"} {
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then CORS headers should be applied", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/strategies", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			convey.So(rec.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "*")
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given a short-lived context", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		convey.Convey("Then the updater should return when it ends", func() {
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}
