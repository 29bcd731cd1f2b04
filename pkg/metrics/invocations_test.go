package metrics

import (
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewInvocationMetrics(t *testing.T) {
	Convey("When creating a new metrics instance", t, func() {
		m := NewInvocationMetrics()
		Convey("Then it starts empty", func() {
			So(m, ShouldNotBeNil)
			So(m.GetMetrics()["total_invocations"], ShouldEqual, int64(0))
			So(m.GetMetrics()["avg_duration"], ShouldEqual, 0.0)
		})
	})
}

func TestRecordInvocation(t *testing.T) {
	Convey("Given a metrics instance", t, func() {
		m := NewInvocationMetrics()
		m.RecordInvocation("a2a_send", true, "", time.Second)
		m.RecordInvocation("a2a_send", false, "unknown_agent", 3*time.Second)
		m.RecordInvocation("a2a_discover", false, "discovery_failed", 0)

		Convey("Then totals and breakdowns are recorded", func() {
			metrics := m.GetMetrics()

			So(metrics["total_invocations"], ShouldEqual, int64(3))
			So(metrics["failed_invocations"], ShouldEqual, int64(2))
			So(metrics["avg_duration"], ShouldAlmostEqual, 4.0/3.0)
			So(metrics["by_tool"], ShouldResemble, map[string]int64{"a2a_send": 2, "a2a_discover": 1})
			So(metrics["failures_by_kind"], ShouldResemble, map[string]int64{"unknown_agent": 1, "discovery_failed": 1})
		})

		Convey("Then snapshots are detached from later updates", func() {
			snapshot := m.GetMetrics()
			m.RecordInvocation("a2a_send", true, "", 0)

			So(snapshot["by_tool"].(map[string]int64)["a2a_send"], ShouldEqual, int64(2))
		})
	})
}

func TestConcurrentRecording(t *testing.T) {
	Convey("Given many goroutines recording at once", t, func() {
		m := NewInvocationMetrics()

		var wg sync.WaitGroup

		for range 50 {
			wg.Add(1)

			go func() {
				defer wg.Done()
				m.RecordInvocation("a2a_list_agents", true, "", time.Millisecond)
			}()
		}

		wg.Wait()

		Convey("Then no invocation is lost", func() {
			So(m.GetMetrics()["total_invocations"], ShouldEqual, int64(50))
		})
	})
}

func TestConcurrentSnapshots(t *testing.T) {
	Convey("Given snapshots taken while invocations are recorded", t, func() {
		m := NewInvocationMetrics()

		var wg sync.WaitGroup

		for range 20 {
			wg.Add(2)

			go func() {
				defer wg.Done()
				m.RecordInvocation("a2a_send", false, "timeout", time.Millisecond)
			}()

			go func() {
				defer wg.Done()
				_ = m.GetMetrics()
			}()
		}

		wg.Wait()

		Convey("Then every snapshot reads under the lock and the final one is complete", func() {
			metrics := m.GetMetrics()

			So(metrics["total_invocations"], ShouldEqual, int64(20))
			So(metrics["failed_invocations"], ShouldEqual, int64(20))
			So(metrics["failures_by_kind"], ShouldResemble, map[string]int64{"timeout": 20})
		})
	})
}
