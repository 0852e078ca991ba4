package recsplit

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	records         *prometheus.CounterVec
	remainderBytes  *prometheus.CounterVec
	decodeErrors    *prometheus.CounterVec
	sampleFallbacks *prometheus.CounterVec
}

// NewMetrics builds the split metrics. Names are prefixed with "recsplit_".
// A nil registerer leaves the collectors unregistered.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{}

	m.records = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "records_total",
		Help: "Total number of records decoded by split.",
	}, []string{"kind"})

	m.remainderBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remainder_bytes_total",
		Help: "Total number of leading bytes returned as remainder.",
	}, []string{"kind"})

	m.decodeErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "decode_errors_total",
		Help: "Total number of record slices that failed to decode.",
	}, []string{"kind"})

	m.sampleFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sample_fallbacks_total",
		Help: "Total number of encoded lengths measured from a sample record.",
	}, []string{"kind"})

	if registerer != nil {
		prometheus.WrapRegistererWithPrefix("recsplit_", registerer).MustRegister(
			m.records,
			m.remainderBytes,
			m.decodeErrors,
			m.sampleFallbacks,
		)
	}

	return m
}
