package listener_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/search"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/search/listener"
)

var _ = Describe("Logging", func() {
	It("should log solutions and a summary", func() {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.TraceLevel)
		dfs := queensSearch(search.WithListener(listener.NewLogging(logger)))

		stats, err := dfs.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())

		messages := map[string]int{}
		for _, e := range hook.AllEntries() {
			messages[e.Message]++
		}
		Expect(messages).To(HaveKeyWithValue("solution", 4))
		Expect(messages).To(HaveKeyWithValue("fail", stats.Failures))
		Expect(messages).To(HaveKeyWithValue("save state", stats.Nodes))
		Expect(messages).To(HaveKeyWithValue("restore state", stats.Nodes))

		last := hook.LastEntry()
		Expect(last.Level).To(Equal(logrus.InfoLevel))
		Expect(last.Message).To(Equal("search done"))
		Expect(last.Data).To(HaveKeyWithValue("solutions", 4))
		Expect(last.Data).To(HaveKeyWithValue("completed", true))
	})

	It("should only log the summary at info level", func() {
		logger, hook := test.NewNullLogger()
		dfs := queensSearch(search.WithListener(listener.NewLogging(logger)))
		_, err := dfs.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(hook.AllEntries()).To(HaveLen(1))
	})
})

var _ = Describe("Metrics", func() {
	var (
		reg *prometheus.Registry
		m   *listener.Metrics
	)

	BeforeEach(func() {
		reg = prometheus.NewRegistry()
		var err error
		m, err = listener.NewMetrics(reg, "maxicp")
		Expect(err).ToNot(HaveOccurred())
	})

	It("should count the search events", func() {
		dfs := queensSearch(search.WithListener(m))
		stats, err := dfs.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())

		nodes, failures, solutions := m.Counters()
		Expect(testutil.ToFloat64(nodes)).To(Equal(float64(stats.Nodes)))
		Expect(testutil.ToFloat64(failures)).To(Equal(float64(stats.Failures)))
		Expect(testutil.ToFloat64(solutions)).To(Equal(4.0))
		Expect(testutil.ToFloat64(m.Depth())).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.Runs(listener.Completed))).To(Equal(1.0))
	})

	It("should accumulate over runs", func() {
		dfs := queensSearch(search.WithListener(m))
		_, err := dfs.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		_, err = dfs.Solve(context.Background(), search.SolutionLimit(1))
		Expect(err).ToNot(HaveOccurred())

		_, _, solutions := m.Counters()
		Expect(testutil.ToFloat64(solutions)).To(Equal(5.0))
		Expect(testutil.ToFloat64(m.Runs(listener.Completed))).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.Runs(listener.Stopped))).To(Equal(1.0))
		n, err := testutil.GatherAndCount(reg, "maxicp_search_runs_total")
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(2))
	})

	It("should refuse to register twice", func() {
		_, err := listener.NewMetrics(reg, "maxicp")
		Expect(err).To(HaveOccurred())
	})
})
