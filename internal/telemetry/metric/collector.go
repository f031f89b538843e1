package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/microspring-go/internal/infra/buildinfo"
)

// Collector reports values read at scrape time.
type Collector struct {
	routes func() int

	buildInfo  *prometheus.Desc
	routesDesc *prometheus.Desc
}

// NewCollector creates a collector. routes reports the number of registered
// routes; it must be safe to call from the scrape goroutine. A nil routes
// omits the route gauge.
func NewCollector(routes func() int) *Collector {
	return &Collector{
		routes: routes,
		buildInfo: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "build_info"),
			"Build information; the value is always 1.",
			[]string{"version", "commit", "go_version"}, nil,
		),
		routesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "routes_registered"),
			"Routes in the route table.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.buildInfo
	if c.routes != nil {
		ch <- c.routesDesc
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	info := buildinfo.Get()
	ch <- prometheus.MustNewConstMetric(c.buildInfo, prometheus.GaugeValue, 1,
		info.Version, info.Commit, info.GoVersion)
	if c.routes != nil {
		ch <- prometheus.MustNewConstMetric(c.routesDesc, prometheus.GaugeValue, float64(c.routes()))
	}
}
