package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// readValue returns the current value of a gauge or counter.
func readValue(m prometheus.Metric) float64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		panic(err)
	}
	if out.Gauge != nil {
		return out.GetGauge().GetValue()
	}
	return out.GetCounter().GetValue()
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
			})

			Convey("And metric names should carry the prefix", func() {
				manager.strategiesLoaded.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if strings.HasSuffix(f.GetName(), "test_prefix_loaded") {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When passing empty option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "blackjack")
				So(manager.subsystem, ShouldEqual, "strategies")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		SetEnabled(true)

		Convey("When recording registry metrics", func() {
			UpdateStrategiesLoaded(7)
			before := readValue(globalManager.summaryLookupMisses)
			RecordSummaryLookupMiss()

			Convey("Then gauges and counters should reflect the values", func() {
				So(readValue(globalManager.strategiesLoaded), ShouldEqual, 7.0)
				So(readValue(globalManager.summaryLookupMisses), ShouldEqual, before+1)
			})

			Convey("And the rest should not panic", func() {
				So(func() {
					RecordRegistryLoad(12.5)
					RecordRegistryLoadError()
					RecordSummaryLookup("one")
					RecordSummaryLookup("all")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording aggregation metrics", func() {
			before := readValue(globalManager.handsAggregated)
			RecordAggregation(1000, 3.2)
			RecordAggregationFailure("empty_input")

			Convey("Then the hand counter should grow by the hand count", func() {
				So(readValue(globalManager.handsAggregated), ShouldEqual, before+1000)
				So(readValue(globalManager.aggregationFailures.WithLabelValues("empty_input")), ShouldBeGreaterThanOrEqualTo, 1.0)
			})
		})

		Convey("When recording batch pool metrics", func() {
			active := readValue(globalManager.workerActiveCount)
			failed := readValue(globalManager.jobsProcessed.WithLabelValues("failed"))
			AddWorkerActive(3)
			AddWorkerActive(-1)
			RecordJob("failed")

			Convey("Then the gauge and counter should move", func() {
				So(readValue(globalManager.workerActiveCount), ShouldEqual, active+2)
				So(readValue(globalManager.jobsProcessed.WithLabelValues("failed")), ShouldEqual, failed+1)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("strategies", "GET", "200")
				RecordHTTPRequestDuration("strategies", "GET", "200", 4.0)
				RecordErrorByType("not_found", "medium")
				RecordErrorByEndpoint("strategy", "GET", "not_found")
				RecordHTTPRequest("", "", "")
			}, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			UpdateSystemMemoryUsage(1024 * 1024)
			UpdateSystemGoroutineCount(12)

			Convey("Then the gauges should hold the values", func() {
				So(readValue(globalManager.systemMemoryUsage), ShouldEqual, float64(1024*1024))
				So(readValue(globalManager.systemGoroutineCount), ShouldEqual, 12.0)
			})
		})

		Convey("When metrics are disabled", func() {
			UpdateStrategiesLoaded(2)
			SetEnabled(false)
			UpdateStrategiesLoaded(99)
			SetEnabled(true)

			Convey("Then observations should be dropped", func() {
				So(readValue(globalManager.strategiesLoaded), ShouldEqual, 2.0)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordSummaryLookup("all")
						RecordHTTPRequest("/test", "GET", "200")
						RecordAggregation(j, float64(j))
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		Convey("Then it should gather our metrics", func() {
			UpdateStrategiesLoaded(1)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
