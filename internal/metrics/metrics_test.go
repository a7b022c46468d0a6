package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/edge-worker/internal/metrics"
)

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("IncrementRequests", func() {
		It("should track routes separately", func() {
			m.IncrementRequests("/message")
			m.IncrementRequests("/random")
			m.IncrementRequests("/message")

			snap := m.Snapshot()
			Expect(snap.TotalRequests).To(Equal(int64(3)))
			Expect(snap.Routes["/message"].Requests).To(Equal(int64(2)))
			Expect(snap.Routes["/random"].Requests).To(Equal(int64(1)))
		})
	})

	Describe("RecordResponse", func() {
		It("should record response time and status code", func() {
			m.RecordResponse("/message", 100*time.Millisecond, 200)
			m.RecordResponse("/message", 200*time.Millisecond, 200)

			route := m.Snapshot().Routes["/message"]
			Expect(route.AvgResponse).To(Equal(150 * time.Millisecond))
			Expect(route.StatusCodes[200]).To(Equal(int64(2)))
			Expect(route.Responses).To(Equal(int64(2)))
		})

		It("should track different status codes", func() {
			m.RecordResponse("not_found", time.Millisecond, 404)
			m.RecordResponse("not_found", time.Millisecond, 500)

			route := m.Snapshot().Routes["not_found"]
			Expect(route.StatusCodes).To(HaveKeyWithValue(404, int64(1)))
			Expect(route.StatusCodes).To(HaveKeyWithValue(500, int64(1)))
		})

		It("should calculate percentiles", func() {
			for i := 1; i <= 100; i++ {
				m.RecordResponse("/random", time.Duration(i)*time.Millisecond, 200)
			}

			route := m.Snapshot().Routes["/random"]
			Expect(route.P50Response).To(BeNumerically("~", 50*time.Millisecond, time.Millisecond))
			Expect(route.P95Response).To(BeNumerically("~", 95*time.Millisecond, time.Millisecond))
			Expect(route.P99Response).To(BeNumerically("~", 99*time.Millisecond, time.Millisecond))
		})

		It("should keep only the latest 1000 samples", func() {
			for i := 1; i <= 1500; i++ {
				m.RecordResponse("/random", time.Duration(i)*time.Millisecond, 200)
			}

			route := m.Snapshot().Routes["/random"]
			Expect(route.AvgResponse).To(BeNumerically(">", 500*time.Millisecond))
			Expect(route.StatusCodes[200]).To(Equal(int64(1500)))
		})
	})

	Describe("Snapshot", func() {
		It("should handle empty metrics", func() {
			snap := m.Snapshot()
			Expect(snap.TotalRequests).To(BeZero())
			Expect(snap.Routes).To(BeEmpty())
		})

		It("should not share status code maps with later updates", func() {
			m.RecordResponse("/message", time.Millisecond, 200)
			snap := m.Snapshot()
			m.RecordResponse("/message", time.Millisecond, 200)

			Expect(snap.Routes["/message"].StatusCodes[200]).To(Equal(int64(1)))
		})

		It("should include uptime", func() {
			time.Sleep(5 * time.Millisecond)
			Expect(m.Snapshot().Uptime).To(BeNumerically(">", 0))
		})
	})
})
