package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	repository "github.com/okian/blackjack/internal/adapters/repository"
	service "github.com/okian/blackjack/internal/app"
	"github.com/okian/blackjack/internal/domain/strategy"
	"github.com/okian/blackjack/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func summary(key, name string, avg float64) strategy.Summary {
	return strategy.Summary{
		Key:           key,
		Name:          name,
		Description:   name + " description",
		Simulations:   100,
		TotalWinnings: avg * 100,
		AvgNetPerHand: avg,
		ROI:           avg * 10,
		StdDeviation:  11.5,
		WinRate:       0.43,
	}
}

func newStartedService(opts ...service.Option) *service.Service {
	reg, err := repository.NewRegistry(
		summary("basic", "Basic Strategy", -0.05),
		summary("fixed-threshold-12", "Fixed Threshold (12)", -0.9),
		summary("card-counter", "Card Counter", 0.12),
		summary("fixed-threshold-16", "Fixed Threshold (16)", -0.7),
		summary("martingale", "Martingale + Basic", -0.3),
	)
	if err != nil {
		panic(err)
	}
	svc := service.New(append([]service.Option{service.WithRegistry(reg)}, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should not be ready before Start", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Ready(), ShouldBeFalse)
			So(svc.DataDir(), ShouldEqual, "processed_data")
			So(svc.Count(), ShouldEqual, 0)
		})

		Convey("And lookups should report not ready", func() {
			_, err := svc.GetSummary(context.Background(), "basic")
			So(errors.Is(err, service.ErrNotReady), ShouldBeTrue)
			So(len(svc.GetAllSummaries(context.Background())), ShouldEqual, 0)
			So(len(svc.GetQuickComparison(context.Background()).ComparisonData), ShouldEqual, 0)
		})
	})
}

func TestService_GetSummary(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When asking for a known key", func() {
			s, err := svc.GetSummary(ctx, "card-counter")

			Convey("Then its summary should be returned", func() {
				So(err, ShouldBeNil)
				So(s.Name, ShouldEqual, "Card Counter")
				So(s.AvgNetPerHand, ShouldEqual, 0.12)
			})
		})

		Convey("When asking for an unknown key", func() {
			_, err := svc.GetSummary(ctx, "nonexistent-key")

			Convey("Then it should report an unknown strategy", func() {
				So(errors.Is(err, service.ErrUnknownStrategy), ShouldBeTrue)
				var use *service.UnknownStrategyError
				So(errors.As(err, &use), ShouldBeTrue)
				So(use.Key, ShouldEqual, "nonexistent-key")
			})
		})

		Convey("When asking twice", func() {
			a, _ := svc.GetSummary(ctx, "basic")
			b, _ := svc.GetSummary(ctx, "basic")

			Convey("Then both answers should be identical", func() {
				So(a, ShouldResemble, b)
			})
		})
	})
}

func TestService_GetAllSummaries(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService()
		ctx := context.Background()

		Convey("Then all summaries should come back in registry order", func() {
			all := svc.GetAllSummaries(ctx)
			keys := make([]string, 0, len(all))
			for _, k := range all {
				keys = append(keys, k.Key)
			}
			So(keys, ShouldResemble, []string{"basic", "fixed-threshold-12", "card-counter", "fixed-threshold-16", "martingale"})
			So(svc.GetAllSummaries(ctx), ShouldResemble, all)
		})
	})
}

func TestService_Comparison(t *testing.T) {
	Convey("Given a started service with two fixed-threshold strategies", t, func() {
		ctx := context.Background()

		Convey("When building the full comparison", func() {
			cmp := newStartedService().GetComparison(ctx)

			Convey("Then every summary should be present", func() {
				So(len(cmp.Strategies), ShouldEqual, 5)
			})

			Convey("And chart rows should skip other fixed thresholds", func() {
				names := []string{}
				for _, r := range cmp.ComparisonData {
					names = append(names, r.Name)
				}
				So(names, ShouldResemble, []string{"Basic Strategy", "Card Counter", "Fixed Threshold (16)", "Martingale + Basic"})
				So(cmp.ComparisonData[1].AvgNetWinnings, ShouldEqual, 0.12)
				So(cmp.ComparisonData[1].Volatility, ShouldEqual, 11.5)
			})

			Convey("And rows should use the chart series names", func() {
				data, err := json.Marshal(cmp.ComparisonData[0])
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"Avg Net Winnings":-0.05`)
				So(string(data), ShouldContainSubstring, `"ROI (%)":`)
				So(string(data), ShouldContainSubstring, `"Volatility (Std Dev)":11.5`)
			})
		})

		Convey("When building the quick comparison", func() {
			quick := newStartedService().GetQuickComparison(ctx)

			Convey("Then it should hold the same subset with light rows", func() {
				So(len(quick.ComparisonData), ShouldEqual, 4)
				So(quick.ComparisonData[2].Key, ShouldEqual, "fixed-threshold-16")
				So(quick.ComparisonData[0].WinRate, ShouldEqual, 0.43)
				So(quick.ComparisonData[0].Description, ShouldEqual, "Basic Strategy description")
			})
		})

		Convey("When another representative threshold is configured", func() {
			quick := newStartedService(service.WithComparisonThreshold(12)).GetQuickComparison(ctx)

			Convey("Then that threshold should be compared instead", func() {
				keys := []string{}
				for _, r := range quick.ComparisonData {
					keys = append(keys, r.Key)
				}
				So(keys, ShouldResemble, []string{"basic", "fixed-threshold-12", "card-counter", "martingale"})
			})
		})
	})
}

func TestService_Stats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService(service.WithDataDir("/data/summaries"))
		stats := svc.GetStats()

		Convey("Then stats should describe the registry", func() {
			So(stats.Strategies, ShouldEqual, 5)
			So(stats.DataDir, ShouldEqual, "/data/summaries")
			So(stats.ComparisonThreshold, ShouldEqual, 16)
			So(stats.LoadedAt, ShouldNotBeEmpty)
			So(stats.Keys[0], ShouldEqual, "basic")
		})

		Convey("And stopping should keep data readable", func() {
			svc.Stop()
			So(svc.Ready(), ShouldBeTrue)
			So(svc.Count(), ShouldEqual, 5)
		})
	})
}
