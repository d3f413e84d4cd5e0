package simulation_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/okian/blackjack/internal/domain/simulation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecode(t *testing.T) {
	Convey("Given a raw simulation result", t, func() {
		ctx := context.Background()

		Convey("When every record carries a net result", func() {
			input := `[
				{"net": 10, "bet": 10, "playerTotal": 20, "dealerTotal": 18, "outcome": "win"},
				{"net": -10, "bet": 10, "outcome": "loss"},
				{"net": 15}
			]`
			hands, err := simulation.Decode(ctx, strings.NewReader(input))

			Convey("Then all records should be decoded in order", func() {
				So(err, ShouldBeNil)
				So(len(hands), ShouldEqual, 3)
				So(hands[0], ShouldResemble, simulation.HandRecord{Net: 10, Bet: 10, PlayerTotal: 20, DealerTotal: 18, Outcome: "win"})
				So(hands[1].Net, ShouldEqual, -10.0)
				So(hands[2].Bet, ShouldEqual, 0.0)
				So(simulation.Nets(hands), ShouldResemble, []float64{10, -10, 15})
			})
		})

		Convey("When records use the legacy profit field", func() {
			hands, err := simulation.Decode(ctx, strings.NewReader(`[{"profit": -5, "bet": 5}, {"profit": 7.5}]`))

			Convey("Then profit should be read as the net result", func() {
				So(err, ShouldBeNil)
				So(simulation.Nets(hands), ShouldResemble, []float64{-5, 7.5})
			})
		})

		Convey("When the array is empty", func() {
			hands, err := simulation.Decode(ctx, strings.NewReader(`[]`))

			Convey("Then no records and no error should be returned", func() {
				So(err, ShouldBeNil)
				So(len(hands), ShouldEqual, 0)
			})
		})

		Convey("When a record has a non-numeric net", func() {
			_, err := simulation.Decode(ctx, strings.NewReader(`[{"net": 1}, {"net": "lots"}]`))

			Convey("Then a malformed record error should point at it", func() {
				So(errors.Is(err, simulation.ErrMalformedRecord), ShouldBeTrue)
				So(errors.Is(err, simulation.ErrNotNumeric), ShouldBeTrue)
				var mre *simulation.MalformedRecordError
				So(errors.As(err, &mre), ShouldBeTrue)
				So(mre.Index, ShouldEqual, 1)
				So(mre.Field, ShouldEqual, "net")
			})
		})

		Convey("When a record has no net at all", func() {
			_, err := simulation.Decode(ctx, strings.NewReader(`[{"bet": 10}]`))

			Convey("Then it should fail as malformed", func() {
				So(errors.Is(err, simulation.ErrMissingNet), ShouldBeTrue)
				So(errors.Is(err, simulation.ErrMalformedRecord), ShouldBeTrue)
			})
		})

		Convey("When a record has a null net", func() {
			_, err := simulation.Decode(ctx, strings.NewReader(`[{"net": null}]`))

			Convey("Then it should fail as missing", func() {
				So(errors.Is(err, simulation.ErrMissingNet), ShouldBeTrue)
			})
		})

		Convey("When a record has a zero bet", func() {
			_, err := simulation.Decode(ctx, strings.NewReader(`[{"net": 1, "bet": 0}]`))

			Convey("Then it should fail as malformed", func() {
				So(errors.Is(err, simulation.ErrNonPositiveBet), ShouldBeTrue)
			})
		})

		Convey("When a record is not an object", func() {
			_, err := simulation.Decode(ctx, strings.NewReader(`[{"net": 1}, 42]`))

			Convey("Then it should fail at that index", func() {
				var mre *simulation.MalformedRecordError
				So(errors.As(err, &mre), ShouldBeTrue)
				So(mre.Index, ShouldEqual, 1)
			})
		})

		Convey("When the document is not an array", func() {
			_, err := simulation.Decode(ctx, strings.NewReader(`{"net": 1}`))

			Convey("Then it should fail as malformed", func() {
				So(errors.Is(err, simulation.ErrNotArray), ShouldBeTrue)
				So(errors.Is(err, simulation.ErrMalformedRecord), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "not a JSON array")
			})
		})

		Convey("When the document is truncated", func() {
			_, err := simulation.Decode(ctx, strings.NewReader(`[{"net": 1},`))

			Convey("Then it should fail as malformed", func() {
				So(errors.Is(err, simulation.ErrMalformedRecord), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := simulation.Decode(cctx, strings.NewReader(`[{"net": 1}]`))

			Convey("Then decoding should stop with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestHandRecordValidate(t *testing.T) {
	Convey("Given hand records built in code", t, func() {
		Convey("Then finite values should pass", func() {
			So(simulation.HandRecord{Net: -1.5, Bet: 10}.Validate(0), ShouldBeNil)
			So(simulation.HandRecord{Net: 0}.Validate(0), ShouldBeNil)
		})

		Convey("Then NaN or infinite nets should fail", func() {
			err := simulation.HandRecord{Net: math.NaN()}.Validate(3)
			So(errors.Is(err, simulation.ErrMalformedRecord), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "index 3 (net)")
			So(simulation.HandRecord{Net: math.Inf(1)}.Validate(0), ShouldNotBeNil)
		})

		Convey("Then negative or non-finite bets should fail", func() {
			So(errors.Is(simulation.HandRecord{Net: 1, Bet: -10}.Validate(0), simulation.ErrNonPositiveBet), ShouldBeTrue)
			So(errors.Is(simulation.HandRecord{Net: 1, Bet: math.Inf(-1)}.Validate(0), simulation.ErrNonFinite), ShouldBeTrue)
		})
	})
}
