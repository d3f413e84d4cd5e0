package strategy_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/okian/blackjack/internal/domain/strategy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKeys(t *testing.T) {
	Convey("Given strategy key conventions", t, func() {
		Convey("When mapping result files to keys", func() {
			Convey("Then underscores should become dashes", func() {
				key, err := strategy.KeyFromResultFile("card_counter_results.json")
				So(err, ShouldBeNil)
				So(key, ShouldEqual, "card-counter")

				key, err = strategy.KeyFromResultFile("fixed_threshold_16_results.json")
				So(err, ShouldBeNil)
				So(key, ShouldEqual, "fixed-threshold-16")
			})

			Convey("And the mapping should round-trip", func() {
				So(strategy.ResultFileName("dealer-weakness"), ShouldEqual, "dealer_weakness_results.json")
			})

			Convey("And other files should be rejected", func() {
				_, err := strategy.KeyFromResultFile("basic_summary.json")
				So(errors.Is(err, strategy.ErrInvalidKey), ShouldBeTrue)
				_, err = strategy.KeyFromResultFile("_results.json")
				So(errors.Is(err, strategy.ErrInvalidKey), ShouldBeTrue)
			})
		})

		Convey("When mapping summary files to keys", func() {
			key, err := strategy.KeyFromSummaryFile("mimic-dealer_summary.json")
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "mimic-dealer")
			So(strategy.SummaryFileName("mimic-dealer"), ShouldEqual, "mimic-dealer_summary.json")

			_, err = strategy.KeyFromSummaryFile("notes.txt")
			So(err, ShouldNotBeNil)
		})

		Convey("When validating keys", func() {
			for _, ok := range []string{"basic", "card-counter", "fixed-threshold-12", "x1"} {
				So(strategy.ValidateKey(ok), ShouldBeNil)
			}
			for _, bad := range []string{"", "-basic", "basic-", "card--counter", "Basic", "../etc", "a b", "card_counter"} {
				So(errors.Is(strategy.ValidateKey(bad), strategy.ErrInvalidKey), ShouldBeTrue)
			}
		})

		Convey("When reading fixed thresholds", func() {
			n, ok := strategy.FixedThreshold("fixed-threshold-16")
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 16)

			_, ok = strategy.FixedThreshold("fixed-threshold-high")
			So(ok, ShouldBeFalse)
			So(strategy.IsFixedThreshold("fixed-threshold-high"), ShouldBeTrue)

			_, ok = strategy.FixedThreshold("basic")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given the default catalog", t, func() {
		c := strategy.DefaultCatalog()

		Convey("Then known strategies should have fixed names", func() {
			So(c.Keys(), ShouldResemble, []string{"basic", "card-counter", "dealer-weakness", "mimic-dealer", "martingale"})
			So(c.Lookup("basic").Name, ShouldEqual, "Basic Strategy")
			So(c.Lookup("martingale").Name, ShouldEqual, "Martingale + Basic")
			So(c.Lookup("card-counter").Description, ShouldContainSubstring, "count of high vs. low cards")
		})

		Convey("Then fixed-threshold strategies should be described by rule", func() {
			info := c.Lookup("fixed-threshold-14")
			So(info.Name, ShouldEqual, "Fixed Threshold (14)")
			So(info.Description, ShouldEqual, "Player always hits until their hand value is 14 or more.")
		})

		Convey("Then unknown strategies should get a title-cased name", func() {
			info := c.Lookup("always-stand")
			So(info.Name, ShouldEqual, "Always Stand")
			So(info.Description, ShouldEqual, "Strategy simulation results.")
		})
	})

	Convey("Given custom catalogs", t, func() {
		Convey("When a key is duplicated", func() {
			_, err := strategy.ParseCatalog([]byte("strategies:\n  - {key: a, name: A}\n  - {key: a, name: B}\n"))
			So(errors.Is(err, strategy.ErrCatalog), ShouldBeTrue)
		})

		Convey("When a key is invalid", func() {
			_, err := strategy.ParseCatalog([]byte("strategies:\n  - {key: Bad Key, name: A}\n"))
			So(errors.Is(err, strategy.ErrInvalidKey), ShouldBeTrue)
		})

		Convey("When a name is missing", func() {
			_, err := strategy.ParseCatalog([]byte("strategies:\n  - {key: a}\n"))
			So(errors.Is(err, strategy.ErrCatalog), ShouldBeTrue)
		})

		Convey("When the YAML is broken", func() {
			_, err := strategy.ParseCatalog([]byte("strategies: [\n"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSummary(t *testing.T) {
	Convey("Given a summary", t, func() {
		s := strategy.Summary{Key: "basic", Simulations: 5, WinRate: 0.4, StdDeviation: 1.26}

		Convey("Then a well-formed summary should validate", func() {
			So(s.Validate(), ShouldBeNil)
		})

		Convey("Then invariants should be enforced", func() {
			bad := s
			bad.WinRate = 1.2
			So(errors.Is(bad.Validate(), strategy.ErrInvalidSummary), ShouldBeTrue)

			bad = s
			bad.StdDeviation = -0.1
			So(bad.Validate(), ShouldNotBeNil)

			bad = s
			bad.Simulations = 0
			So(bad.Validate(), ShouldNotBeNil)

			bad = s
			bad.Key = ""
			So(bad.Validate(), ShouldNotBeNil)

			bad = s
			bad.ROI = math.Inf(1)
			So(bad.Validate(), ShouldNotBeNil)
		})
	})

	Convey("Given an ordered list of summaries", t, func() {
		list := strategy.Ordered{
			{Key: "mimic-dealer", Summary: strategy.Summary{Key: "mimic-dealer", Name: "Mimic Dealer"}},
			{Key: "basic", Summary: strategy.Summary{Key: "basic", Name: "Basic Strategy"}},
		}

		Convey("When encoding it as JSON", func() {
			data, err := json.Marshal(list)
			So(err, ShouldBeNil)

			Convey("Then keys should keep list order", func() {
				text := string(data)
				So(text[:16], ShouldEqual, `{"mimic-dealer":`)
				So(text, ShouldContainSubstring, `,"basic":{"key":"basic"`)
			})

			Convey("And it should decode as an object", func() {
				var decoded map[string]strategy.Summary
				So(json.Unmarshal(data, &decoded), ShouldBeNil)
				So(decoded["basic"].Name, ShouldEqual, "Basic Strategy")
			})
		})

		Convey("When the list is empty", func() {
			data, err := json.Marshal(strategy.Ordered{})
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "{}")
		})
	})
}
